package http

import (
	"net/http"

	"github.com/mobivas/vas-platform/internal/application"
)

func (h *Handler) sendOTP(w http.ResponseWriter, r *http.Request) {
	var req application.SendOTPRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "MSISDN is required")
		return
	}
	if req.MSISDN == "" {
		writeError(w, http.StatusBadRequest, "MSISDN is required")
		return
	}

	if err := h.service.RequestOTP(r.Context(), req); err != nil {
		writeMappedError(w, r, "send_otp", err)
		return
	}
	writeMessage(w, http.StatusOK, "OTP sent (mocked)")
}

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req application.VerifyOTPRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "MSISDN and OTP are required")
		return
	}
	if req.MSISDN == "" || req.OTP == "" {
		writeError(w, http.StatusBadRequest, "MSISDN and OTP are required")
		return
	}

	res, err := h.service.VerifyOTP(r.Context(), req)
	if err != nil {
		writeMappedError(w, r, "verify_otp", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
