package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_DrainEmpties(t *testing.T) {
	q := NewQueue(0)

	q.Notify(Error("falhou"))
	q.Notify(Success("ok"))

	require.Equal(t, 2, q.Len())

	got := q.Drain()
	assert.Equal(t, []Notification{
		{Level: LevelError, Message: "falhou"},
		{Level: LevelSuccess, Message: "ok"},
	}, got)
	assert.Zero(t, q.Len())
	assert.Empty(t, q.Drain())
}

func TestQueue_LimitDropsOldest(t *testing.T) {
	q := NewQueue(2)

	q.Notify(Warning("1"))
	q.Notify(Warning("2"))
	q.Notify(Warning("3"))

	got := q.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].Message)
	assert.Equal(t, "3", got[1].Message)
}

func TestNotifierFunc(t *testing.T) {
	var got Notification

	var n Notifier = NotifierFunc(func(x Notification) { got = x })
	n.Notify(Error("x"))

	assert.Equal(t, Error("x"), got)
}

func TestGuard_Window(t *testing.T) {
	mock := clock.NewMock()
	g := NewGuard(mock, 3*time.Second)

	assert.True(t, g.Allow(), "first event opens the window")
	assert.False(t, g.Allow(), "burst is suppressed")

	mock.Add(2 * time.Second)
	assert.False(t, g.Allow(), "still inside the window")

	mock.Add(time.Second)
	assert.True(t, g.Allow(), "window elapsed")
	assert.False(t, g.Allow())
}

func TestGuard_ConcurrentBurst(t *testing.T) {
	g := NewGuard(clock.NewMock(), 3*time.Second)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if g.Allow() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, allowed)
}
