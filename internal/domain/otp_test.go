package domain

import (
	"errors"
	"testing"
)

func TestIsValidPhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"9123456789", true},
		{"6000000000", true},
		{"7999999999", true},
		{"8123456780", true},
		{"5123456789", false},
		{"0123456789", false},
		{"912345678", false},
		{"91234567890", false},
		{"+919123456789", false},
		{"91234a6789", false},
		{"", false},
		{" 9123456789", false},
	}

	for _, tc := range cases {
		if got := IsValidPhone(tc.phone); got != tc.want {
			t.Errorf("IsValidPhone(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}

func TestSendOTPRequest_NormalizeTrimsWhitespace(t *testing.T) {
	req := SendOTPRequest{PhoneNumber: "  9123456789 "}
	req.Normalize()
	if err := req.Validate(); err != nil {
		t.Fatalf("trimmed phone should validate: %v", err)
	}
}

func TestVerifyOTPRequest_Validate(t *testing.T) {
	req := VerifyOTPRequest{PhoneNumber: "9123456789", OTP: ""}
	if err := req.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	req.OTP = "482913"
	if err := req.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	req.PhoneNumber = "12345"
	if err := req.Validate(); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("err = %v, want ErrInvalidPhone", err)
	}
}

func TestProfileUpdateRequest_Validate(t *testing.T) {
	valid := ProfileUpdateRequest{
		Name:    "Asha",
		Email:   "asha@example.com",
		DOB:     "1990-01-15",
		Gender:  "female",
		Address: "12 MG Road, Bengaluru",
		FamilyMembers: []FamilyMember{
			{Name: "Ravi", Relation: "spouse"},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	noFamily := valid
	noFamily.FamilyMembers = nil
	if err := noFamily.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for empty family", err)
	}

	missing := valid
	missing.Email = ""
	if err := missing.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for missing email", err)
	}
}
