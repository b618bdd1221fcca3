package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mobivas/vas-platform/internal/application"
	"github.com/mobivas/vas-platform/internal/domain"
)

func (h *Handler) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	subscriptions := h.service.ListSubscriptions(r.Context(), claims.MSISDN)
	writeJSON(w, http.StatusOK, map[string]any{"subscriptions": subscriptions})
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req application.SubscribeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "serviceId is required")
		return
	}

	res, err := h.service.Subscribe(r.Context(), claims.MSISDN, req)
	if err != nil {
		var declined *domain.BillingDeclinedError
		if errors.As(err, &declined) {
			writeJSON(w, http.StatusPaymentRequired, map[string]any{
				"message": "Subscription failed: Insufficient funds",
				"billing": declined.Receipt,
			})
			return
		}
		writeMappedError(w, r, "subscribe", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Subscribed successfully",
		"subscriptions": res.Subscriptions,
		"billing":       res.Billing,
	})
}

func (h *Handler) unsubscribe(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	serviceID := chi.URLParam(r, "serviceID")
	res, err := h.service.Unsubscribe(r.Context(), claims.MSISDN, serviceID)
	if err != nil {
		writeMappedError(w, r, "unsubscribe", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Unsubscribed successfully",
		"subscriptions": res.Subscriptions,
	})
}
