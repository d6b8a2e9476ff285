package domain

import (
	"fmt"
	"strings"
	"time"
)

type User struct {
	ID              int64      `json:"-"`
	Phone           string     `json:"phone"`
	Name            *string    `json:"name"`
	Email           *string    `json:"email"`
	DOB             *time.Time `json:"dob"`
	Gender          *string    `json:"gender"`
	Address         *string    `json:"address"`
	OTPVerified     bool       `json:"-"`
	ProfileComplete bool       `json:"profileComplete"`
	CreatedAt       time.Time  `json:"-"`
	UpdatedAt       time.Time  `json:"-"`
}

type FamilyMember struct {
	Name     string  `json:"name"`
	Relation string  `json:"relation"`
	Gender   *string `json:"gender"`
	DOB      *string `json:"dob"`
}

type Payment struct {
	Amount            string    `json:"amount"`
	RazorpayPaymentID string    `json:"razorpay_payment_id"`
	Status            string    `json:"status"`
	Currency          string    `json:"currency"`
	TaxExemption      bool      `json:"tax_exemption"`
	PaymentDate       time.Time `json:"payment_date"`
}

type KYCDocument struct {
	PANNumber     string  `json:"pan_number"`
	AadhaarNumber string  `json:"aadhaar_number"`
	DateOfBirth   string  `json:"dob"`
	KYCDocPath    *string `json:"kyc_doc_path"`
}

// Profile is the aggregate returned by GET /api/user/profile.
type Profile struct {
	Name            *string        `json:"name"`
	Email           *string        `json:"email"`
	Phone           string         `json:"phone"`
	DOB             *time.Time     `json:"dob"`
	Gender          *string        `json:"gender"`
	Address         *string        `json:"address"`
	FamilyMembers   []FamilyMember `json:"familyMembers"`
	Payments        []Payment      `json:"payments"`
	KYCDocuments    *KYCDocument   `json:"kycDocuments"`
	ProfileComplete bool           `json:"profileComplete"`
}

type ProfileUpdateRequest struct {
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	DOB           string         `json:"dob"`
	Gender        string         `json:"gender"`
	Address       string         `json:"address"`
	FamilyMembers []FamilyMember `json:"familyMembers"`
}

func (r *ProfileUpdateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Gender = strings.TrimSpace(r.Gender)
	r.Address = strings.TrimSpace(r.Address)
}

func (r *ProfileUpdateRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.DOB == "" || r.Gender == "" || r.Address == "" {
		return fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	if len(r.FamilyMembers) == 0 {
		return fmt.Errorf("%w: at least one family member is required", ErrValidation)
	}
	for _, m := range r.FamilyMembers {
		if m.Name == "" || m.Relation == "" {
			return fmt.Errorf("%w: family member name and relation are required", ErrValidation)
		}
	}
	return nil
}

type PaymentRequest struct {
	Amount            string `json:"amount"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	TaxExemption      bool   `json:"tax_exemption"`
}

func (r *PaymentRequest) Validate() error {
	if r.Amount == "" || r.RazorpayPaymentID == "" {
		return fmt.Errorf("%w: amount and payment ID are required", ErrValidation)
	}
	return nil
}

type KYCRequest struct {
	PANNumber     string `json:"pan_number"`
	AadhaarNumber string `json:"aadhaar_number"`
	DOB           string `json:"dob"`
	KYCDocPath    string `json:"kyc_doc_path"`
}

func (r *KYCRequest) Normalize() {
	r.PANNumber = strings.ToUpper(strings.TrimSpace(r.PANNumber))
	r.AadhaarNumber = strings.TrimSpace(r.AadhaarNumber)
}

func (r *KYCRequest) Validate() error {
	if r.PANNumber == "" || r.AadhaarNumber == "" || r.DOB == "" {
		return fmt.Errorf("%w: PAN, Aadhaar numbers and date of birth are required", ErrValidation)
	}
	return nil
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *AdminLoginRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	return nil
}

type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
