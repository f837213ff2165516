package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/Agent-cat/Midland/apperr"
	"github.com/Agent-cat/Midland/sms"
	"github.com/Agent-cat/Midland/utils"
)

const (
	// DefaultTTL is how long an issued code stays valid.
	DefaultTTL = 5 * time.Minute
	// DefaultMaxAttempts is the wrong-guess budget before the challenge is
	// invalidated.
	DefaultMaxAttempts = 3
)

// Gate issues and verifies phone-ownership challenges. Codes are delivered
// out-of-band through the SMS sender and never returned to callers.
type Gate struct {
	store       Store
	sender      sms.Sender
	ttl         time.Duration
	maxAttempts int
	now         func() time.Time
}

func NewGate(store Store, sender sms.Sender) *Gate {
	return &Gate{
		store:       store,
		sender:      sender,
		ttl:         DefaultTTL,
		maxAttempts: DefaultMaxAttempts,
		now:         time.Now,
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue generates a fresh 6-digit code for the phone, overwriting any prior
// challenge, and hands it to the SMS sender.
func (g *Gate) Issue(ctx context.Context, phone string) error {
	if !utils.IsValidPhone(phone) {
		return apperr.Validation("Phone number must be 10 digits")
	}
	code, err := generateCode()
	if err != nil {
		return apperr.Internal("Failed to generate OTP", err)
	}
	rec := Record{Code: code, IssuedAt: g.now()}
	if err := g.store.Put(ctx, phone, rec, g.ttl); err != nil {
		return apperr.Internal("Failed to store OTP", err)
	}
	if err := g.sender.Send(ctx, phone, code); err != nil {
		return apperr.Internal("Failed to send OTP", err)
	}
	return nil
}

// Verify checks a submitted code. The challenge is consumed on success and on
// expiry or attempt exhaustion; a later verify reports no request found.
func (g *Gate) Verify(ctx context.Context, phone, code string) error {
	rec, ok, err := g.store.Get(ctx, phone)
	if err != nil {
		return apperr.Internal("Failed to read OTP", err)
	}
	if !ok {
		return apperr.Auth("No OTP request found")
	}
	if g.now().Sub(rec.IssuedAt) > g.ttl {
		g.discard(ctx, phone)
		return apperr.Auth("OTP expired")
	}
	if rec.Attempts >= g.maxAttempts {
		g.discard(ctx, phone)
		return apperr.Auth("Too many attempts. Please request new OTP")
	}
	if rec.Code != code {
		rec.Attempts++
		// The final wrong guess burns the challenge immediately; a later
		// attempt reports no request found rather than too many attempts.
		if rec.Attempts >= g.maxAttempts {
			g.discard(ctx, phone)
			return &apperr.AuthError{Message: "Too many attempts. Please request new OTP", AttemptsLeft: 0}
		}
		if err := g.store.Put(ctx, phone, rec, g.ttl-g.now().Sub(rec.IssuedAt)); err != nil {
			return apperr.Internal("Failed to update OTP", err)
		}
		return &apperr.AuthError{
			Message:      "Invalid OTP",
			AttemptsLeft: g.maxAttempts - rec.Attempts,
		}
	}
	g.discard(ctx, phone)
	return nil
}

// Confirm checks a code without consuming the challenge. The signup flow uses
// it so the record survives until the account is actually created, then calls
// Clear.
func (g *Gate) Confirm(ctx context.Context, phone, code string) error {
	rec, ok, err := g.store.Get(ctx, phone)
	if err != nil {
		return apperr.Internal("Failed to read OTP", err)
	}
	if !ok {
		return apperr.Auth("Please verify your phone number first")
	}
	if g.now().Sub(rec.IssuedAt) > g.ttl {
		g.discard(ctx, phone)
		return apperr.Auth("OTP expired")
	}
	if rec.Code != code {
		return apperr.Auth("Invalid OTP")
	}
	return nil
}

// Clear drops any live challenge for the phone.
func (g *Gate) Clear(ctx context.Context, phone string) {
	g.discard(ctx, phone)
}

func (g *Gate) discard(ctx context.Context, phone string) {
	if err := g.store.Delete(ctx, phone); err != nil {
		utils.Warn("failed to delete OTP record: " + err.Error())
	}
}
