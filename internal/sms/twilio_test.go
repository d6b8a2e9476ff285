package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestSender(srv *httptest.Server) *TwilioSender {
	return &TwilioSender{
		accountSID: "ACtest",
		authToken:  "secret",
		from:       "+15551230000",
		baseURL:    srv.URL,
		client:     &http.Client{Timeout: 2 * time.Second},
	}
}

func TestTwilioSender_Success(t *testing.T) {
	var gotTo, gotBody, gotPath string
	var gotUser string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, _, _ = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotTo = r.PostFormValue("To")
		gotBody = r.PostFormValue("Body")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM123","status":"queued"}`))
	}))
	defer srv.Close()

	s := newTestSender(srv)
	if err := s.Send(context.Background(), "+919123456789", "Your OTP for Swagatham Foundation is: 482913"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if gotPath != "/Accounts/ACtest/Messages.json" {
		t.Errorf("path = %q", gotPath)
	}
	if gotUser != "ACtest" {
		t.Errorf("basic auth user = %q, want ACtest", gotUser)
	}
	if gotTo != "+919123456789" {
		t.Errorf("To = %q", gotTo)
	}
	if gotBody != "Your OTP for Swagatham Foundation is: 482913" {
		t.Errorf("Body = %q", gotBody)
	}
}

func TestTwilioSender_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":21211,"message":"The 'To' number is not a valid phone number."}`))
	}))
	defer srv.Close()

	s := newTestSender(srv)
	if err := s.Send(context.Background(), "invalid", "body"); err == nil {
		t.Fatal("expected an error for API failure")
	}
}

func TestTwilioSender_DeliveryFailedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM456","status":"failed","error_message":"unreachable destination"}`))
	}))
	defer srv.Close()

	s := newTestSender(srv)
	if err := s.Send(context.Background(), "+919123456789", "body"); err == nil {
		t.Fatal("expected an error for failed delivery status")
	}
}
