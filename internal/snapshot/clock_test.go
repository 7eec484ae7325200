package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tilereach/internal/testutil"
)

func TestClockAdvances(t *testing.T) {
	m := NewMemory()
	c := NewClock(m, 5*time.Millisecond)

	ctx, cancel := testutil.ContextWithCancel(t)
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, func() bool { return m.CurrentTick() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("clock did not stop")
	}

	stopped := m.CurrentTick()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, m.CurrentTick())
}

func TestClockDefaultInterval(t *testing.T) {
	c := NewClock(NewMemory(), 0)
	assert.Equal(t, 600*time.Millisecond, c.interval)
}
