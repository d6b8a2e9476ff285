// Package sms delivers text messages to phone numbers. The gate only
// depends on the Sender interface so tests can capture outgoing codes.
package sms

import "context"

type Sender interface {
	// Send delivers body to the E.164-formatted destination. The call is
	// synchronous and bounded by the implementation's timeout.
	Send(ctx context.Context, to, body string) error
}
