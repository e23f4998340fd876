package session

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdown(t *testing.T) {
	type events struct {
		ticks   []time.Duration
		hints   int
		expires int
	}

	tests := []struct {
		name     string
		duration time.Duration
		withHint bool
		advance  time.Duration
		cancelAt time.Duration
		want     func(t *testing.T, got events)
	}{
		{
			name:     "expires once after the duration",
			duration: 5 * time.Second,
			advance:  10 * time.Second,
			want: func(t *testing.T, got events) {
				assert.Equal(t, 1, got.expires)
				assert.Zero(t, got.hints)
				assert.Equal(t, 5*time.Second, got.ticks[0])
				require.Len(t, got.ticks, 26, "ticks every 200ms until nothing remains")
				assert.Equal(t, time.Duration(0), got.ticks[25])
			},
		},
		{
			name:     "hint fires before the expiry",
			duration: 15 * time.Second,
			withHint: true,
			advance:  10 * time.Second,
			want: func(t *testing.T, got events) {
				assert.Equal(t, 1, got.hints)
				assert.Zero(t, got.expires)
			},
		},
		{
			name:     "no hint when the duration does not exceed the lead time",
			duration: 5 * time.Second,
			withHint: true,
			advance:  5 * time.Second,
			want: func(t *testing.T, got events) {
				assert.Zero(t, got.hints)
				assert.Equal(t, 1, got.expires)
			},
		},
		{
			name:     "cancel stops every effect",
			duration: 15 * time.Second,
			withHint: true,
			advance:  20 * time.Second,
			cancelAt: time.Second,
			want: func(t *testing.T, got events) {
				assert.Zero(t, got.hints)
				assert.Zero(t, got.expires)
				assert.Len(t, got.ticks, 5)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, fireStopped := range []bool{false, true} {
				clock := NewFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
				clock.FireStopped = fireStopped
				c := countdown{clock: clock}

				var got events
				c.start(tt.duration, tt.withHint, countdownHandlers{
					onTick:   func(remaining time.Duration) { got.ticks = append(got.ticks, remaining) },
					onHint:   func() { got.hints++ },
					onExpire: func() { got.expires++ },
				})
				if tt.cancelAt > 0 {
					clock.Advance(tt.cancelAt - time.Nanosecond)
					c.cancel()
					assert.Zero(t, clock.Pending())
				}
				clock.Advance(tt.advance)
				tt.want(t, got)
			}
		})
	}
}

func TestRemainingSeconds(t *testing.T) {
	assert.Equal(t, 5, remainingSeconds(4800*time.Millisecond))
	assert.Equal(t, 4, remainingSeconds(4*time.Second))
	assert.Equal(t, 0, remainingSeconds(0))
}

func TestHintOptions(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewPCG(seed, 42))
		for _, product := range []int{1, 2, 4, 21, 100} {
			options := HintOptions(rng, product)
			require.Len(t, options, 3)
			assert.Contains(t, options, product)

			seen := make(map[int]struct{})
			for _, o := range options {
				_, dup := seen[o]
				assert.False(t, dup, "options must be distinct: %v", options)
				seen[o] = struct{}{}
				assert.GreaterOrEqual(t, o, 0)
				assert.LessOrEqual(t, o, product+maxDecoyOffset)
				assert.GreaterOrEqual(t, o, product-maxDecoyOffset)
			}
		}
	}
}
