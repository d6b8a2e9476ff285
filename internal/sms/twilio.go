package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/swagatham/donation-api/pkg/config"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioSender sends messages through the Twilio Messages REST API.
type TwilioSender struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	client     *http.Client
}

func NewTwilioSender(cfg config.SMSConfig) *TwilioSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TwilioSender{
		accountSID: cfg.TwilioAccountSID,
		authToken:  cfg.TwilioAuthToken,
		from:       cfg.FromNumber,
		baseURL:    twilioAPIBase,
		client:     &http.Client{Timeout: timeout},
	}
}

type twilioResponse struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    *int   `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	Message      string `json:"message"` // set on API-level errors
}

func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", s.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.baseURL, s.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.accountSID, s.authToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send sms request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read sms response: %w", err)
	}

	var tr twilioResponse
	if err := json.Unmarshal(respBody, &tr); err != nil {
		return fmt.Errorf("parse sms response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if tr.Message != "" {
			return fmt.Errorf("sms api status %d: %s", resp.StatusCode, tr.Message)
		}
		return fmt.Errorf("sms api status %d: %s", resp.StatusCode, string(respBody))
	}

	if tr.Status == "failed" || tr.Status == "undelivered" {
		return fmt.Errorf("sms delivery failed: %s", tr.ErrorMessage)
	}

	return nil
}
