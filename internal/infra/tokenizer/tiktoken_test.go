package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounterCountsTokens(t *testing.T) {
	counter, err := NewCounter("")
	if err != nil {
		t.Skipf("encoding unavailable: %v", err)
	}

	n, err := counter.Count("")
	require.NoError(t, err)
	require.Zero(t, n)

	short, err := counter.Count("Hello there.")
	require.NoError(t, err)
	require.Positive(t, short)

	long, err := counter.Count("Hello there. I would like to schedule an appointment for next week.")
	require.NoError(t, err)
	require.Greater(t, long, short)
}
