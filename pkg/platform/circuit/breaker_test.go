package circuit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBreakerIsClosed(t *testing.T) {
	b := New("notifications")
	assert.Equal(t, "notifications", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.False(t, b.IsOpen())
}

// outcome is one recorded call: true for success.
type outcome bool

const (
	ok   outcome = true
	fail outcome = false
)

func TestBreakerSequences(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		successes int
		outcomes  []outcome
		wantOpen  bool
		wantFlips []StateChange
	}{
		{
			name:     "stays closed below the failure threshold",
			failures: 3,
			outcomes: []outcome{fail, fail},
			wantOpen: false,
		},
		{
			name:      "opens on the threshold failure",
			failures:  3,
			outcomes:  []outcome{fail, fail, fail},
			wantOpen:  true,
			wantFlips: []StateChange{{Opened: true}},
		},
		{
			name:     "a success clears the failure streak",
			failures: 3,
			outcomes: []outcome{fail, fail, ok, fail, fail},
			wantOpen: false,
		},
		{
			name:      "closes after consecutive successes while open",
			failures:  1,
			successes: 2,
			outcomes:  []outcome{fail, ok, ok},
			wantOpen:  false,
			wantFlips: []StateChange{{Opened: true}, {Closed: true}},
		},
		{
			name:      "a failure while open restarts the success streak",
			failures:  1,
			successes: 3,
			outcomes:  []outcome{fail, ok, ok, fail, ok, ok},
			wantOpen:  true,
			wantFlips: []StateChange{{Opened: true}},
		},
		{
			name:      "failures while open do not report another opening",
			failures:  1,
			outcomes:  []outcome{fail, fail, fail},
			wantOpen:  true,
			wantFlips: []StateChange{{Opened: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("transport", WithFailureThreshold(tt.failures), WithSuccessThreshold(tt.successes))
			var flips []StateChange
			for _, o := range tt.outcomes {
				var change StateChange
				if o == ok {
					_, change = b.RecordSuccess()
				} else {
					_, change = b.RecordFailure()
				}
				if change.Opened || change.Closed {
					flips = append(flips, change)
				}
			}
			assert.Equal(t, tt.wantOpen, b.IsOpen())
			assert.Equal(t, tt.wantFlips, flips)
		})
	}
}

func TestBreakerFlags(t *testing.T) {
	b := New("transport", WithFailureThreshold(2), WithSuccessThreshold(1))

	useFallback, _ := b.RecordFailure()
	assert.False(t, useFallback, "one failure keeps the primary path")

	useFallback, _ = b.RecordFailure()
	assert.True(t, useFallback)

	usePrimary, change := b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)

	usePrimary, change = b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.False(t, change.Closed, "already closed")
}

func TestBreakerNonPositiveThresholdsKeepDefaults(t *testing.T) {
	b := New("transport", WithFailureThreshold(0), WithSuccessThreshold(-1))
	for range 4 {
		b.RecordFailure()
	}
	assert.False(t, b.IsOpen())
	b.RecordFailure()
	require.True(t, b.IsOpen())

	b.RecordSuccess()
	assert.True(t, b.IsOpen())
	b.RecordSuccess()
	assert.False(t, b.IsOpen())
}

func TestBreakerReset(t *testing.T) {
	b := New("transport", WithFailureThreshold(1))
	b.RecordFailure()
	require.True(t, b.IsOpen())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())

	useFallback, change := b.RecordFailure()
	assert.True(t, useFallback, "counters were cleared so one failure reopens")
	assert.True(t, change.Opened)
}

func TestBreakerConcurrentUse(t *testing.T) {
	b := New("transport", WithFailureThreshold(50))
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		opened int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, change := b.RecordFailure(); change.Opened {
				mu.Lock()
				opened++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.True(t, b.IsOpen())
	assert.Equal(t, 1, opened)
}
