package session

import (
	"fmt"
	"time"
)

// Event is something the clock reports on a tick besides the time.
type Event int

const (
	EventNone Event = iota
	EventFiveMinutes
	EventTwoMinutes
	EventExpired
)

func (e Event) String() string {
	switch e {
	case EventFiveMinutes:
		return "five_minutes"
	case EventTwoMinutes:
		return "two_minutes"
	case EventExpired:
		return "expired"
	default:
		return "none"
	}
}

// Warning thresholds in remaining seconds.
const (
	fiveMinutes = 300
	twoMinutes  = 120
)

// Tick is the result of advancing the clock once.
type Tick struct {
	Display string // remaining time before this tick, as mm:ss
	Urgent  bool   // two minutes or less remain
	Event   Event
}

// Clock counts an exam down in whole seconds. The zero value expires on
// its first tick.
type Clock struct {
	remaining int
	expired   bool
}

// NewClock returns a clock with d remaining, truncated to whole seconds.
func NewClock(d time.Duration) Clock {
	return Clock{remaining: int(d / time.Second)}
}

// Remaining returns the remaining whole seconds.
func (c *Clock) Remaining() int { return c.remaining }

// Expired reports whether the countdown has finished.
func (c *Clock) Expired() bool { return c.expired }

// Display formats the remaining time as mm:ss.
func (c *Clock) Display() string {
	return FormatRemaining(c.remaining)
}

// Advance shows the current time, raises a warning when exactly five or two
// minutes remain, and then counts down one second. On reaching zero it
// expires once; later calls return an empty Tick.
func (c *Clock) Advance() Tick {
	if c.expired {
		return Tick{}
	}

	t := Tick{
		Display: c.Display(),
		Urgent:  c.remaining <= twoMinutes,
	}
	switch c.remaining {
	case fiveMinutes:
		t.Event = EventFiveMinutes
	case twoMinutes:
		t.Event = EventTwoMinutes
	}

	if c.remaining <= 0 {
		c.expired = true
		c.remaining = 0
		t.Event = EventExpired
	} else {
		c.remaining--
	}
	return t
}

// FormatRemaining renders seconds as zero-padded mm:ss. Minutes are not
// capped at 59.
func FormatRemaining(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
