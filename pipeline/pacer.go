package pipeline

import "time"

// DefaultPublishDelay is the pause between publish attempts. It is a crude
// stand-in for real rate-limit handling: long enough for Discord's limits
// and for the previous call's connection to fully close.
const DefaultPublishDelay = 5 * time.Second

// Pacer spaces out publish attempts with a fixed delay.
type Pacer struct {
	delay time.Duration
}

// NewPacer returns a Pacer with the given fixed delay. A zero or negative
// delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay}
}

// Wait blocks for the configured delay.
func (p *Pacer) Wait() {
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
}
