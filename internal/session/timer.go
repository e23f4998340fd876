package session

import (
	"math"
	"time"
)

const (
	TickInterval = 200 * time.Millisecond
	HintLeadTime = 5 * time.Second
)

type countdownHandlers struct {
	onTick   func(remaining time.Duration)
	onHint   func()
	onExpire func()
}

// countdown owns the timers of the presented card. Every cancel invalidates the
// generation captured by pending callbacks, so a callback that was already
// queued when the card moved on does nothing.
type countdown struct {
	clock      Clock
	generation uint64
	tick       Timer
	hint       Timer
	expiry     Timer
}

func (c *countdown) cancel() {
	c.generation++
	for _, t := range []Timer{c.tick, c.hint, c.expiry} {
		if t != nil {
			t.Stop()
		}
	}
	c.tick, c.hint, c.expiry = nil, nil, nil
}

func (c *countdown) active(generation uint64) bool {
	return c.generation == generation
}

func (c *countdown) start(duration time.Duration, withHint bool, handlers countdownHandlers) {
	c.cancel()
	generation := c.generation
	endAt := c.clock.Now().Add(duration)

	var tick func()
	tick = func() {
		if !c.active(generation) {
			return
		}
		remaining := max(0, endAt.Sub(c.clock.Now()))
		handlers.onTick(remaining)
		if remaining > 0 && c.active(generation) {
			c.tick = c.clock.AfterFunc(TickInterval, tick)
		}
	}
	tick()

	if withHint && duration > HintLeadTime {
		c.hint = c.clock.AfterFunc(duration-HintLeadTime, func() {
			if c.active(generation) {
				handlers.onHint()
			}
		})
	}
	c.expiry = c.clock.AfterFunc(duration, func() {
		if c.active(generation) {
			handlers.onExpire()
		}
	})
}

func remainingSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
