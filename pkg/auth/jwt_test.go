package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/swagatham/donation-api/pkg/auth"
)

const testSecret = "test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := auth.NewSessionToken("9123456789", testSecret, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken failed: %v", err)
	}

	claims, err := auth.Parse(token, testSecret)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Phone != "9123456789" {
		t.Errorf("phone = %q, want 9123456789", claims.Phone)
	}
	if claims.Role != auth.RoleDonor {
		t.Errorf("role = %q, want %q", claims.Role, auth.RoleDonor)
	}

	wantExpiry := time.Now().Add(24 * time.Hour)
	if got := claims.ExpiresAt.Time; got.Before(wantExpiry.Add(-time.Minute)) || got.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("expiry = %v, want ~%v", got, wantExpiry)
	}
}

func TestParse_ExpiredToken(t *testing.T) {
	token, err := auth.NewSessionToken("9123456789", testSecret, -time.Second)
	if err != nil {
		t.Fatalf("NewSessionToken failed: %v", err)
	}

	_, err = auth.Parse(token, testSecret)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("err = %v, want jwt.ErrTokenExpired", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := auth.NewSessionToken("9123456789", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken failed: %v", err)
	}

	if _, err := auth.Parse(token, "other-secret"); err == nil {
		t.Fatal("expected signature validation to fail")
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := auth.Parse("not-a-token", testSecret); err == nil {
		t.Fatal("expected parse to fail")
	}
}

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := auth.NewAdminToken(7, "admin", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewAdminToken failed: %v", err)
	}

	claims, err := auth.Parse(token, testSecret)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.AdminID != 7 || claims.Username != "admin" || claims.Role != auth.RoleAdmin {
		t.Errorf("claims = %+v, want admin id 7", claims)
	}
}
