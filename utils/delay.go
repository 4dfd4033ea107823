package utils

import (
	"math/rand"
	"time"
)

// randomBetween returns a uniformly random duration in [min, max] inclusive.
func randomBetween(min, max time.Duration) time.Duration {
	if max < min {
		min, max = max, min
	}
	if min == max {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)+1))
}

// Delay sleeps for a uniformly random duration in [min, max] and returns
// the chosen duration. Randomized pauses between page actions break up the
// request regularity that automated traffic is detected by.
func Delay(min, max time.Duration) time.Duration {
	d := randomBetween(min, max)
	time.Sleep(d)
	return d
}

// Pacer inserts a human-like pause between consecutive page actions.
type Pacer struct {
	min time.Duration
	max time.Duration
}

// NewPacer creates a Pacer with bounds given in milliseconds.
func NewPacer(minMs, maxMs int) *Pacer {
	return &Pacer{
		min: time.Duration(minMs) * time.Millisecond,
		max: time.Duration(maxMs) * time.Millisecond,
	}
}

// Wait blocks for a random duration within the pacer's bounds.
func (p *Pacer) Wait() time.Duration {
	return Delay(p.min, p.max)
}
