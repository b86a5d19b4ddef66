// Package report aggregates clock events into daily and weekly totals.
package report

import (
	"sort"
	"time"

	"github.com/Tiliavir/punch/internal/model"
	"github.com/Tiliavir/punch/internal/timecalc"
)

// Report owns every known event, kept sorted ascending by time. Events are
// only ever appended.
type Report struct {
	events []model.Event
	clock  timecalc.Clock
}

// DayTotal is the worked time of one calendar day.
type DayTotal struct {
	Date  time.Time
	Total time.Duration
}

// New returns a report over a sorted copy of events. A nil clock means the
// system clock.
func New(events []model.Event, clock timecalc.Clock) *Report {
	if clock == nil {
		clock = timecalc.System
	}
	r := &Report{
		events: append([]model.Event(nil), events...),
		clock:  clock,
	}
	r.sort()
	return r
}

func (r *Report) sort() {
	sort.SliceStable(r.events, func(i, j int) bool {
		return r.events[i].Before(r.events[j])
	})
}

// AddEvent records a new event of kind at the current instant and returns it.
func (r *Report) AddEvent(kind model.Kind) model.Event {
	e := model.Now(kind, r.clock)
	r.events = append(r.events, e)
	r.sort()
	return e
}

// Events returns a copy of all events in order.
func (r *Report) Events() []model.Event {
	return append([]model.Event(nil), r.events...)
}

// Len returns the number of events.
func (r *Report) Len() int {
	return len(r.events)
}

// EventsOn returns the events whose UTC calendar date matches date.
func (r *Report) EventsOn(date time.Time) []model.Event {
	var out []model.Event
	for _, e := range r.events {
		if timecalc.SameDay(e.Time, date) {
			out = append(out, e)
		}
	}
	return out
}

// Today returns the events of the current UTC day.
func (r *Report) Today() []model.Event {
	return r.EventsOn(r.clock.Now())
}

// DaysThisWeek returns Monday through today, ascending.
func (r *Report) DaysThisWeek() []time.Time {
	return timecalc.WeekDays(r.clock.Now())
}

// TotalTime sums the worked time in events, which must be in time order.
//
// Each OUT closes the earliest IN still open; repeated INs keep the first one
// and an OUT without an open IN adds nothing. An IN left open at the end is
// counted up to now.
func (r *Report) TotalTime(events []model.Event) time.Duration {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	open := events[0]
	for _, e := range events {
		switch e.Kind {
		case model.Out:
			if open.Kind == model.In {
				total += e.Time.Sub(open.Time)
			}
			open = e
		case model.In:
			if open.Kind != model.In {
				open = e
			}
		}
	}

	if open.Kind == model.In {
		total += r.clock.Now().Sub(open.Time)
	}
	return total
}

// DayTotals returns the total of each day of the current week so far.
func (r *Report) DayTotals() []DayTotal {
	days := r.DaysThisWeek()
	totals := make([]DayTotal, 0, len(days))
	for _, d := range days {
		totals = append(totals, DayTotal{Date: d, Total: r.TotalTime(r.EventsOn(d))})
	}
	return totals
}

// WeekTotal sums DayTotals.
func (r *Report) WeekTotal() time.Duration {
	var total time.Duration
	for _, d := range r.DayTotals() {
		total += d.Total
	}
	return total
}

// ClockedIn reports whether the latest event is an IN.
func (r *Report) ClockedIn() bool {
	return len(r.events) > 0 && r.events[len(r.events)-1].Kind == model.In
}

// Now returns the report's current instant.
func (r *Report) Now() time.Time {
	return r.clock.Now()
}

// Serialize returns the report file lines for every event in order.
func (r *Report) Serialize() []string {
	lines := make([]string, 0, 2*len(r.events))
	for _, e := range r.events {
		lines = append(lines, e.Lines()...)
	}
	return lines
}
