package sms

import (
	"context"

	"github.com/swagatham/donation-api/pkg/logger"
)

// DevSender prints messages to the log instead of sending them.
type DevSender struct{}

func NewDevSender() *DevSender {
	return &DevSender{}
}

func (d *DevSender) Send(ctx context.Context, to, body string) error {
	logger.InfoContext(ctx, "[DEV SMS] message",
		"to", to,
		"body", body,
	)
	return nil
}
