package http

import (
	"errors"
	"net/http"

	"github.com/mobivas/vas-platform/internal/application"
	"github.com/mobivas/vas-platform/internal/domain"
)

func (h *Handler) listProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"providers": h.service.ListProviders(r.Context()),
	})
}

func (h *Handler) bill(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req application.BillRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "serviceId is required")
		return
	}

	receipt, err := h.service.Bill(r.Context(), claims.MSISDN, req)
	if err != nil {
		var declined *domain.BillingDeclinedError
		if errors.As(err, &declined) {
			writeJSON(w, http.StatusPaymentRequired, map[string]any{
				"message": "Billing failed - insufficient funds",
				"billing": declined.Receipt,
			})
			return
		}
		writeMappedError(w, r, "telco_bill", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Billing successful",
		"billing": receipt,
	})
}
