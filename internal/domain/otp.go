package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Indian mobile subscriber number: 10 digits, first digit 6-9.
var phoneRegex = regexp.MustCompile(`^[6-9]\d{9}$`)

func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
}

type VerifyOTPResponse struct {
	Token           string `json:"token"`
	ProfileComplete bool   `json:"profileComplete"`
}

func (r *SendOTPRequest) Normalize() {
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
}

func (r *SendOTPRequest) Validate() error {
	if !IsValidPhone(r.PhoneNumber) {
		return ErrInvalidPhone
	}
	return nil
}

func (r *VerifyOTPRequest) Normalize() {
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	// The submitted code is compared exactly as sent, no normalization.
}

func (r *VerifyOTPRequest) Validate() error {
	if !IsValidPhone(r.PhoneNumber) {
		return ErrInvalidPhone
	}
	if r.OTP == "" {
		return fmt.Errorf("%w: otp is required", ErrValidation)
	}
	return nil
}
