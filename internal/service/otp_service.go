package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/swagatham/donation-api/internal/domain"
	"github.com/swagatham/donation-api/internal/otp"
	"github.com/swagatham/donation-api/internal/repo/postgres"
	"github.com/swagatham/donation-api/internal/sms"
	"github.com/swagatham/donation-api/pkg/auth"
	"github.com/swagatham/donation-api/pkg/config"
	"github.com/swagatham/donation-api/pkg/events"
	"github.com/swagatham/donation-api/pkg/logger"
)

const otpMessageTemplate = "Your OTP for Swagatham Foundation is: %s"

// OTPService owns the OTP lifecycle: issuance, verification, single-use
// invalidation, and the session credential handed out on success.
type OTPService interface {
	RequestOTP(ctx context.Context, req *domain.SendOTPRequest) error
	VerifyOTP(ctx context.Context, req *domain.VerifyOTPRequest) (*domain.VerifyOTPResponse, error)
}

type otpService struct {
	store    otp.Store
	sender   sms.Sender
	users    postgres.UsersRepo
	eventBus events.Publisher
	cfg      *config.Config
	now      func() time.Time
}

func NewOTPService(
	store otp.Store,
	sender sms.Sender,
	users postgres.UsersRepo,
	eventBus events.Publisher,
	cfg *config.Config,
) OTPService {
	return &otpService{
		store:    store,
		sender:   sender,
		users:    users,
		eventBus: eventBus,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *otpService) RequestOTP(ctx context.Context, req *domain.SendOTPRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	issuedAt := s.now()
	rec := otp.Record{
		Phone:     req.PhoneNumber,
		Code:      code,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(s.cfg.Auth.OTPTTL),
	}

	// Replaces any prior unconsumed record for the same number.
	if err := s.store.Put(ctx, rec); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	body := fmt.Sprintf(otpMessageTemplate, code)
	if err := s.sender.Send(ctx, "+91"+req.PhoneNumber, body); err != nil {
		// The record just created must not be usable after a failed send.
		if delErr := s.store.Delete(ctx, req.PhoneNumber); delErr != nil {
			logger.ErrorContext(ctx, "Failed to roll back OTP record after delivery failure",
				"error", delErr, "phone", req.PhoneNumber)
		}
		logger.ErrorContext(ctx, "OTP delivery failed", "error", err, "phone", req.PhoneNumber)
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	if err := s.eventBus.Publish(ctx, events.OTPRequested, events.OTPRequestedEvent{
		Phone:       req.PhoneNumber,
		RequestedAt: issuedAt,
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish OTP requested event", "error", err)
	}

	return nil
}

func (s *otpService) VerifyOTP(ctx context.Context, req *domain.VerifyOTPRequest) (*domain.VerifyOTPResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec, ok, err := s.store.Get(ctx, req.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("read otp: %w", err)
	}
	if !ok {
		return nil, domain.ErrNoPendingOTP
	}

	// Expiry check strictly precedes the code comparison: an expired but
	// matching code must still fail.
	if s.now().After(rec.ExpiresAt) {
		if err := s.store.Delete(ctx, req.PhoneNumber); err != nil {
			logger.ErrorContext(ctx, "Failed to delete expired OTP record", "error", err)
		}
		return nil, domain.ErrOTPExpired
	}

	// Exact string compare. A mismatch leaves the record intact so the user
	// can retry within the window.
	if rec.Code != req.OTP {
		return nil, domain.ErrOTPMismatch
	}

	// Single-use: the record is gone before any side effect happens. The
	// directory upsert below is idempotent, so a crash after this point
	// cannot double-create a user on retry.
	if err := s.store.Delete(ctx, req.PhoneNumber); err != nil {
		return nil, fmt.Errorf("consume otp: %w", err)
	}

	profileComplete, created, err := s.users.UpsertVerified(ctx, req.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	token, err := auth.NewSessionToken(req.PhoneNumber, s.cfg.Auth.JWTSecret, s.cfg.Auth.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	if err := s.eventBus.Publish(ctx, events.UserVerified, events.UserVerifiedEvent{
		Phone:      req.PhoneNumber,
		NewUser:    created,
		VerifiedAt: s.now(),
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish user verified event", "error", err)
	}

	return &domain.VerifyOTPResponse{
		Token:           token,
		ProfileComplete: profileComplete,
	}, nil
}

// generateCode draws a 6-digit code uniformly from [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
