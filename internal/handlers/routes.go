package handlers

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.With(h.SendOTPRateLimit).Post("/send-otp", h.SendOTP)
		r.Post("/verify-otp", h.VerifyOTP)

		r.Post("/admin/login", h.AdminLogin)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuth)
			r.Get("/user/profile", h.GetProfile)
			r.Put("/user/profile", h.UpdateProfile)
			r.Post("/payment", h.RecordPayment)
			r.Post("/kyc", h.SubmitKYC)
		})
	})

	return r
}
