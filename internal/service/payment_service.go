package service

import (
	"context"
	"time"

	"github.com/swagatham/donation-api/internal/domain"
	"github.com/swagatham/donation-api/internal/repo/postgres"
	"github.com/swagatham/donation-api/pkg/events"
	"github.com/swagatham/donation-api/pkg/logger"
)

// PaymentService records completed gateway payments. The gateway itself is
// external; only its payment id is kept.
type PaymentService interface {
	RecordPayment(ctx context.Context, phone string, req *domain.PaymentRequest) error
}

type paymentService struct {
	payments postgres.PaymentsRepo
	eventBus events.Publisher
}

func NewPaymentService(payments postgres.PaymentsRepo, eventBus events.Publisher) PaymentService {
	return &paymentService{payments: payments, eventBus: eventBus}
}

func (s *paymentService) RecordPayment(ctx context.Context, phone string, req *domain.PaymentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.payments.Record(ctx, phone, req); err != nil {
		return err
	}

	if err := s.eventBus.Publish(ctx, events.PaymentRecorded, events.PaymentRecordedEvent{
		Phone:        phone,
		Amount:       req.Amount,
		PaymentID:    req.RazorpayPaymentID,
		TaxExemption: req.TaxExemption,
		RecordedAt:   time.Now(),
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish payment recorded event", "error", err)
	}

	return nil
}
