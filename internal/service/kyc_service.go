package service

import (
	"context"
	"time"

	"github.com/swagatham/donation-api/internal/domain"
	"github.com/swagatham/donation-api/internal/repo/postgres"
	"github.com/swagatham/donation-api/pkg/events"
	"github.com/swagatham/donation-api/pkg/logger"
)

type KYCService interface {
	SubmitKYC(ctx context.Context, phone string, req *domain.KYCRequest) error
}

type kycService struct {
	kyc      postgres.KYCRepo
	eventBus events.Publisher
}

func NewKYCService(kyc postgres.KYCRepo, eventBus events.Publisher) KYCService {
	return &kycService{kyc: kyc, eventBus: eventBus}
}

func (s *kycService) SubmitKYC(ctx context.Context, phone string, req *domain.KYCRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.kyc.Upsert(ctx, phone, req); err != nil {
		return err
	}

	if err := s.eventBus.Publish(ctx, events.KYCSubmitted, events.KYCSubmittedEvent{
		Phone:       phone,
		SubmittedAt: time.Now(),
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish KYC submitted event", "error", err)
	}

	return nil
}
