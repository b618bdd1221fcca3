package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mobivas/vas-platform/internal/application"
	"github.com/mobivas/vas-platform/internal/domain"
)

// Handler is the HTTP adapter entrypoint. It depends only on the
// application service so transport concerns stay out of the core.
type Handler struct {
	service *application.Service
}

func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) readyz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ready")
}

func (h *Handler) listServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ListServices(r.Context()))
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	transactions := h.service.ListTransactions(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"transactions": transactions})
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON value")
	}
	return nil
}

// mapDomainError translates sentinel errors into status and user-facing
// message. Billing declines are handled by the subscription handlers
// directly because the 402 body carries the receipt.
func mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidOTP):
		return http.StatusBadRequest, "Invalid OTP"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "Too many OTP requests. Please try again in 15 minutes."
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrAlreadySubscribed):
		return http.StatusBadRequest, "Already subscribed to this service"
	case errors.Is(err, domain.ErrUnknownProvider):
		return http.StatusInternalServerError, "Billing provider not configured"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func writeMappedError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status, msg := mapDomainError(err)
	logHTTPOperationError(r.Context(), operation, status, msg, err)
	writeError(w, status, msg)
}
