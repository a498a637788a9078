package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionManager(t *testing.T) {
	m := NewSessionManager()

	id1, ed1 := m.Open()
	id2, ed2 := m.Open()
	assert.NotEqual(t, id1, id2)
	assert.NotSame(t, ed1, ed2)
	assert.Equal(t, 2, m.Len())

	got, ok := m.Resolve(id1)
	require.True(t, ok)
	assert.Same(t, ed1, got)

	assert.True(t, m.Close(id1))
	assert.False(t, m.Close(id1))
	_, ok = m.Resolve(id1)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestSweep_ClosesIdleSessions(t *testing.T) {
	m := NewSessionManager()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	idle, _ := m.Open()
	active, _ := m.Open()

	now = now.Add(20 * time.Minute)
	_, ok := m.Resolve(active)
	require.True(t, ok)

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, m.Sweep(30*time.Minute))

	_, ok = m.Resolve(idle)
	assert.False(t, ok)
	_, ok = m.Resolve(active)
	assert.True(t, ok)
	assert.Zero(t, m.Sweep(30*time.Minute))
}

func TestReap_StopsWithContext(t *testing.T) {
	m := NewSessionManager()
	m.Open()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Reap(ctx, time.Millisecond, 0, zap.NewNop())
		close(done)
	}()

	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop")
	}
}
