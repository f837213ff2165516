package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Agent-cat/Midland/apperr"
)

type captureSender struct {
	phone string
	code  string
	sent  int
}

func (s *captureSender) Send(_ context.Context, phone, code string) error {
	s.phone = phone
	s.code = code
	s.sent++
	return nil
}

func newTestGate() (*Gate, *captureSender, *time.Time) {
	sender := &captureSender{}
	gate := NewGate(NewMemoryStore(), sender)
	now := time.Now()
	gate.now = func() time.Time { return now }
	return gate, sender, &now
}

func TestIssueAndVerify(t *testing.T) {
	ctx := context.Background()
	gate, sender, _ := newTestGate()

	require.NoError(t, gate.Issue(ctx, "9876543210"))
	require.Equal(t, "9876543210", sender.phone)
	require.Len(t, sender.code, 6)

	require.NoError(t, gate.Verify(ctx, "9876543210", sender.code))
}

func TestIssueRejectsBadPhone(t *testing.T) {
	ctx := context.Background()
	gate, sender, _ := newTestGate()

	for _, phone := range []string{"", "12345", "98765432101", "98765abcde"} {
		err := gate.Issue(ctx, phone)
		require.Error(t, err)
		_, ok := err.(*apperr.ValidationError)
		require.True(t, ok, "expected ValidationError for %q, got %T", phone, err)
	}
	require.Zero(t, sender.sent)
}

func TestVerifyConsumesChallenge(t *testing.T) {
	ctx := context.Background()
	gate, sender, _ := newTestGate()

	require.NoError(t, gate.Issue(ctx, "9876543210"))
	require.NoError(t, gate.Verify(ctx, "9876543210", sender.code))

	err := gate.Verify(ctx, "9876543210", sender.code)
	require.Error(t, err)
	require.Equal(t, "No OTP request found", err.Error())
}

func TestVerifyExpired(t *testing.T) {
	ctx := context.Background()
	gate, sender, now := newTestGate()

	require.NoError(t, gate.Issue(ctx, "9876543210"))
	*now = now.Add(5*time.Minute + time.Second)

	err := gate.Verify(ctx, "9876543210", sender.code)
	require.Error(t, err)
	require.Equal(t, "OTP expired", err.Error())

	// Expiry deletes the record.
	err = gate.Verify(ctx, "9876543210", sender.code)
	require.Equal(t, "No OTP request found", err.Error())
}

func TestVerifyAttemptBudget(t *testing.T) {
	ctx := context.Background()
	gate, sender, _ := newTestGate()

	require.NoError(t, gate.Issue(ctx, "9876543210"))

	wrong := "000000"
	if wrong == sender.code {
		wrong = "000001"
	}

	for i, remaining := range []int{2, 1} {
		err := gate.Verify(ctx, "9876543210", wrong)
		require.Error(t, err, "attempt %d", i+1)
		authErr, ok := err.(*apperr.AuthError)
		require.True(t, ok)
		require.Equal(t, remaining, authErr.AttemptsLeft)
		require.Equal(t, "Invalid OTP", authErr.Message)
	}

	// The third wrong guess burns the challenge.
	err := gate.Verify(ctx, "9876543210", wrong)
	require.Error(t, err)
	require.Equal(t, "Too many attempts. Please request new OTP", err.Error())

	// A fourth attempt fails even with the right code: the record is gone.
	err = gate.Verify(ctx, "9876543210", sender.code)
	require.Error(t, err)
	require.Equal(t, "No OTP request found", err.Error())
}

func TestReissueOverwrites(t *testing.T) {
	ctx := context.Background()
	gate, sender, _ := newTestGate()

	require.NoError(t, gate.Issue(ctx, "9876543210"))
	firstCode := sender.code
	require.NoError(t, gate.Issue(ctx, "9876543210"))

	if sender.code != firstCode {
		err := gate.Verify(ctx, "9876543210", firstCode)
		require.Error(t, err, "the superseded code must not verify")
	}
	require.NoError(t, gate.Verify(ctx, "9876543210", sender.code))
}

func TestConfirmDoesNotConsume(t *testing.T) {
	ctx := context.Background()
	gate, sender, _ := newTestGate()

	require.NoError(t, gate.Issue(ctx, "9876543210"))
	require.NoError(t, gate.Confirm(ctx, "9876543210", sender.code))
	require.NoError(t, gate.Confirm(ctx, "9876543210", sender.code))

	gate.Clear(ctx, "9876543210")
	err := gate.Confirm(ctx, "9876543210", sender.code)
	require.Error(t, err)
	require.Equal(t, "Please verify your phone number first", err.Error())
}

func TestConfirmRejectsWrongCode(t *testing.T) {
	ctx := context.Background()
	gate, sender, _ := newTestGate()

	require.NoError(t, gate.Issue(ctx, "9876543210"))
	wrong := "000000"
	if wrong == sender.code {
		wrong = "000001"
	}
	err := gate.Confirm(ctx, "9876543210", wrong)
	require.Error(t, err)
	require.Equal(t, "Invalid OTP", err.Error())

	// Confirm failures do not burn the challenge.
	require.NoError(t, gate.Confirm(ctx, "9876543210", sender.code))
}
