package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/swagatham/donation-api/internal/domain"
	"github.com/swagatham/donation-api/internal/repo/redisrate"
	"github.com/swagatham/donation-api/internal/service"
	"github.com/swagatham/donation-api/pkg/auth"
	"github.com/swagatham/donation-api/pkg/config"
	"github.com/swagatham/donation-api/pkg/logger"
)

type Handlers struct {
	otpService     service.OTPService
	profileService service.ProfileService
	paymentService service.PaymentService
	kycService     service.KYCService
	adminService   service.AdminService
	limiter        redisrate.Limiter
	cfg            *config.Config
}

func New(
	otpService service.OTPService,
	profileService service.ProfileService,
	paymentService service.PaymentService,
	kycService service.KYCService,
	adminService service.AdminService,
	limiter redisrate.Limiter,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		otpService:     otpService,
		profileService: profileService,
		paymentService: paymentService,
		kycService:     kycService,
		adminService:   adminService,
		limiter:        limiter,
		cfg:            cfg,
	}
}

type ctxKey string

const ctxClaims ctxKey = "claims"

// RequireAuth validates the bearer session credential and puts the verified
// phone number on the request context.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Token is missing", "TOKEN_MISSING")
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header", "INVALID_TOKEN")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.Parse(token, h.cfg.Auth.JWTSecret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				writeError(w, http.StatusUnauthorized, "Token has expired", "EXPIRED_TOKEN")
				return
			}
			writeError(w, http.StatusUnauthorized, "Token is invalid", "INVALID_TOKEN")
			return
		}
		if claims.Phone == "" {
			writeError(w, http.StatusUnauthorized, "Token is invalid", "INVALID_TOKEN")
			return
		}

		ctx := context.WithValue(r.Context(), logger.PhoneKey, claims.Phone)
		ctx = context.WithValue(ctx, ctxClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SendOTPRateLimit caps OTP issuance per client IP. Runs before any code is
// generated or delivered. Fails open on limiter errors.
func (h *Handlers) SendOTPRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := getClientIP(r)
		key := "send_otp:" + clientIP

		allowed, err := h.limiter.Allow(r.Context(), key,
			h.cfg.RateLimit.SendOTPRequests, h.cfg.RateLimit.SendOTPWindow)
		if err != nil {
			logger.ErrorContext(r.Context(), "Rate limit check failed", "error", err)
		} else if !allowed {
			writeError(w, http.StatusTooManyRequests,
				"Too many OTP requests from this IP, please try again later", "RATE_LIMIT_EXCEEDED")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func claimsFrom(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(ctxClaims).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, statusCode int, message, code string) {
	writeJSON(w, statusCode, map[string]interface{}{
		"success": false,
		"error":   message,
		"code":    code,
	})
}

// writeServiceError maps domain errors onto HTTP responses. Unrecognized
// errors become a generic 500; internals only leak in dev mode.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidPhone):
		writeError(w, http.StatusBadRequest, domain.ErrInvalidPhone.Error(), "INVALID_PHONE")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, domain.ErrNoPendingOTP):
		writeError(w, http.StatusBadRequest, domain.ErrNoPendingOTP.Error(), "NO_PENDING_OTP")
	case errors.Is(err, domain.ErrOTPExpired):
		writeError(w, http.StatusBadRequest, domain.ErrOTPExpired.Error(), "OTP_EXPIRED")
	case errors.Is(err, domain.ErrOTPMismatch):
		writeError(w, http.StatusBadRequest, domain.ErrOTPMismatch.Error(), "INVALID_OTP")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found", "NOT_FOUND")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, domain.ErrDeliveryFailed):
		logger.ErrorContext(r.Context(), "OTP delivery failed", "error", err)
		if h.cfg.DevMode {
			writeError(w, http.StatusInternalServerError, err.Error(), "DELIVERY_FAILED")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to send OTP. Please try again.", "DELIVERY_FAILED")
	default:
		logger.ErrorContext(r.Context(), "Internal error", "error", err)
		if h.cfg.DevMode {
			writeError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
	}
}
