package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter registers routes and the shared middleware stack. The realtime
// handler is passed in so the transport wiring stays in bootstrap.
func NewRouter(handler *Handler, realtime http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Post("/auth/send-otp", handler.sendOTP)
	r.Post("/auth/verify-otp", handler.verifyOTP)

	r.Get("/services", handler.listServices)
	r.Get("/transactions", handler.listTransactions)

	r.Group(func(r chi.Router) {
		r.Use(handler.authMiddleware)
		r.Get("/subscriptions", handler.listSubscriptions)
		r.Post("/subscriptions", handler.subscribe)
		r.Delete("/subscriptions/{serviceID}", handler.unsubscribe)
		r.Get("/telco/providers", handler.listProviders)
		r.Post("/telco/bill", handler.bill)
	})

	if realtime != nil {
		r.Handle("/ws", realtime)
	}

	return r
}
