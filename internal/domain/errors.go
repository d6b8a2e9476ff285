package domain

import "errors"

// Sentinel errors for the OTP gate and the surrounding API. Handlers map
// these onto HTTP status codes; anything unrecognized is a 500.
var (
	ErrInvalidPhone       = errors.New("invalid Indian phone number (10 digits starting with 6-9)")
	ErrRateLimited        = errors.New("too many OTP requests, please try again later")
	ErrDeliveryFailed     = errors.New("failed to send OTP")
	ErrNoPendingOTP       = errors.New("OTP expired or not requested")
	ErrOTPExpired         = errors.New("OTP expired")
	ErrOTPMismatch        = errors.New("invalid OTP")
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
