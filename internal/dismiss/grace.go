package dismiss

import "time"

// DefaultGrace is the delay between losing focus and dismissing, long
// enough for a press on a dropdown row to land first.
const DefaultGrace = 100 * time.Millisecond

// Grace tracks a pending blur dismissal. Arm hands out a token; any later
// Arm or Cancel invalidates it. The zero value is ready to use.
type Grace struct {
	Delay time.Duration
	token uint64
	armed bool
}

// NewGrace returns a Grace with the given delay, or DefaultGrace when delay
// is not positive.
func NewGrace(delay time.Duration) Grace {
	if delay <= 0 {
		delay = DefaultGrace
	}
	return Grace{Delay: delay}
}

// Arm starts a new grace period and returns its token.
func (g *Grace) Arm() uint64 {
	g.token++
	g.armed = true
	return g.token
}

// Cancel invalidates every outstanding token.
func (g *Grace) Cancel() {
	if g.armed {
		g.token++
		g.armed = false
	}
}

// Armed reports whether a grace period is pending.
func (g *Grace) Armed() bool {
	return g.armed
}

// Expired reports whether token is the live one, consuming it.
func (g *Grace) Expired(token uint64) bool {
	if !g.armed || token != g.token {
		return false
	}
	g.armed = false
	return true
}
