package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Agent-cat/Midland/utils"
)

// Sender delivers an OTP code to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}

// senderID is the SMS template name registered with the delivery provider.
const senderID = "MIDLAND"

// TwoFactorClient sends codes through the 2factor.in transactional SMS API.
type TwoFactorClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewTwoFactorClient(apiKey string) *TwoFactorClient {
	return &TwoFactorClient{
		apiKey:     apiKey,
		baseURL:    "https://2factor.in/API/V1",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *TwoFactorClient) Send(ctx context.Context, phone, code string) error {
	endpoint := fmt.Sprintf("%s/%s/SMS/%s/%s/%s",
		c.baseURL,
		url.PathEscape(c.apiKey),
		url.PathEscape(phone),
		url.PathEscape(code),
		senderID,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms delivery failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms provider returned status %d", resp.StatusCode)
	}
	return nil
}

// LogSender logs codes instead of delivering them. Used in dev when no
// provider key is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, phone, code string) error {
	utils.Info("otp delivery (dev)", zap.String("phone", phone), zap.String("code", code))
	return nil
}

// SenderFromEnv returns the 2factor client when TWO_FACTOR_API_KEY is set,
// otherwise the dev log sender.
func SenderFromEnv() Sender {
	if key := os.Getenv("TWO_FACTOR_API_KEY"); key != "" {
		return NewTwoFactorClient(key)
	}
	return LogSender{}
}
