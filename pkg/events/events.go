package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/swagatham/donation-api/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// NopPublisher discards events; used when no broker is configured and in tests.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, subject string, data interface{}) error { return nil }
func (NopPublisher) Close() error                                                        { return nil }

// Subjects
const (
	OTPRequested    = "auth.otp.requested"
	UserVerified    = "auth.user.verified"
	PaymentRecorded = "payment.recorded"
	KYCSubmitted    = "kyc.submitted"
)

type OTPRequestedEvent struct {
	Phone       string    `json:"phone"`
	RequestedAt time.Time `json:"requested_at"`
}

type UserVerifiedEvent struct {
	Phone      string    `json:"phone"`
	NewUser    bool      `json:"new_user"`
	VerifiedAt time.Time `json:"verified_at"`
}

type PaymentRecordedEvent struct {
	Phone        string    `json:"phone"`
	Amount       string    `json:"amount"`
	PaymentID    string    `json:"payment_id"`
	TaxExemption bool      `json:"tax_exemption"`
	RecordedAt   time.Time `json:"recorded_at"`
}

type KYCSubmittedEvent struct {
	Phone       string    `json:"phone"`
	SubmittedAt time.Time `json:"submitted_at"`
}
