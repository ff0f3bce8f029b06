package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Harshkesharwani789/wave-backend/internal/config"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
)

// HTTPGatewaySender posts messages to an external SMS gateway.
type HTTPGatewaySender struct {
	cfg    config.SMSConfig
	client *http.Client
}

func NewHTTPGatewaySender(cfg config.SMSConfig) *HTTPGatewaySender {
	return &HTTPGatewaySender{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type gatewayRequest struct {
	To       string `json:"to"`
	Message  string `json:"message"`
	SenderID string `json:"senderId,omitempty"`
}

func (s *HTTPGatewaySender) Send(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(gatewayRequest{
		To:       phone,
		Message:  message,
		SenderID: s.cfg.SenderID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.GatewayURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call sms gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	log.Ctx(ctx).Debug().Msg("sms delivered to gateway")
	return nil
}

// LogSender writes messages to the log instead of a gateway. Used in
// development when no gateway is configured.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (LogSender) Send(ctx context.Context, phone, message string) error {
	log.Ctx(ctx).Info().Str("phone", phone).Str("message", message).Msg("sms (log sender)")
	return nil
}
