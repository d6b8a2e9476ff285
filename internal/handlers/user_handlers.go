package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/swagatham/donation-api/internal/domain"
)

// GetProfile handles GET /api/user/profile
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	profile, err := h.profileService.GetProfile(r.Context(), claims.Phone)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    profile,
	})
}

// UpdateProfile handles PUT /api/user/profile
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var req domain.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	if err := h.profileService.UpdateProfile(r.Context(), claims.Phone, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Profile updated successfully",
	})
}

// RecordPayment handles POST /api/payment
func (h *Handlers) RecordPayment(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var req domain.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	if err := h.paymentService.RecordPayment(r.Context(), claims.Phone, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Payment recorded successfully",
		"paymentId": req.RazorpayPaymentID,
	})
}

// SubmitKYC handles POST /api/kyc
func (h *Handlers) SubmitKYC(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var req domain.KYCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	if err := h.kycService.SubmitKYC(r.Context(), claims.Phone, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "KYC documents saved successfully",
	})
}
