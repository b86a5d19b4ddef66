package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Tiliavir/punch/internal/timecalc"
)

// Layout is the timestamp format used in the report file.
const Layout = "2006-01-02 15:04:05 -0700"

// Kind is the direction of a clock event.
type Kind int

const (
	In Kind = iota
	Out
)

// String returns the canonical "IN" or "OUT" form.
func (k Kind) String() string {
	if k == In {
		return "IN"
	}
	return "OUT"
}

// ParseKind parses the canonical form. ok is false for any other input.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "IN":
		return In, true
	case "OUT":
		return Out, true
	}
	return Out, false
}

// KindFromArg resolves a command-line argument: "in" in any case is In,
// everything else is Out.
func KindFromArg(arg string) Kind {
	if strings.EqualFold(arg, "IN") {
		return In
	}
	return Out
}

// Event is a single clock in or clock out.
type Event struct {
	Kind Kind
	Time time.Time
}

// NewEvent returns an event with t normalised to UTC at second precision,
// which is what the file format can round-trip.
func NewEvent(kind Kind, t time.Time) Event {
	return Event{Kind: kind, Time: t.UTC().Truncate(time.Second)}
}

// Now captures the current instant from clock.
func Now(kind Kind, clock timecalc.Clock) Event {
	return NewEvent(kind, clock.Now())
}

// Before orders events by time only.
func (e Event) Before(o Event) bool {
	return e.Time.Before(o.Time)
}

// Lines serializes the event as its two report file lines.
func (e Event) Lines() []string {
	return []string{
		fmt.Sprintf("type: %s", e.Kind),
		fmt.Sprintf("time: %s", e.Time.Format(Layout)),
	}
}

func (e Event) String() string {
	return fmt.Sprintf("%s@%s", e.Kind, e.Time.Format(Layout))
}
