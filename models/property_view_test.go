package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestViewDedupWindow(t *testing.T) {
	now := time.Now()
	view := PropertyView{ViewedAt: now}

	require.True(t, view.WithinWindow(now.Add(59*time.Minute)),
		"a reveal 59 minutes later is still the same lead")
	require.False(t, view.WithinWindow(now.Add(61*time.Minute)),
		"a reveal 61 minutes later is a new lead")
}
