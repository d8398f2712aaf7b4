package wire

import (
	"net/http"

	"watch-store/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	otpHandler *adaptor.OTPHandler,
	auth func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/refresh", authHandler.Refresh)
	r.Post("/api/auth/logout", authHandler.Logout)

	r.Post("/api/otp/send", otpHandler.Send)
	// Resend is the same operation; the cooldown throttles abuse
	r.Post("/api/otp/resend", otpHandler.Send)
	r.Post("/api/otp/verify", otpHandler.Verify)
	r.Post("/api/otp/cancel", otpHandler.Cancel)

	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Get("/api/auth/me", authHandler.Me)
}
