// Package parser turns report file lines into clock events.
//
// Every event is stored as two "key: value" lines, "type" and "time", in
// either order. Lines are fed one at a time through a small state machine;
// malformed lines are recorded as issues and skipped, never fatal.
package parser

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Tiliavir/punch/internal/model"
)

// State is the progress of the event currently being assembled.
type State int

const (
	Empty State = iota
	HasKind
	HasTime
	Complete
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case HasKind:
		return "has-kind"
	case HasTime:
		return "has-time"
	case Complete:
		return "complete"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// IssueKind distinguishes why a line was not used.
type IssueKind int

const (
	// Discarded lines do not have the "key: value" shape or use an unknown key.
	Discarded IssueKind = iota
	// Failed lines have the "time" key but a value that is not a timestamp.
	Failed
)

func (k IssueKind) String() string {
	if k == Failed {
		return "failed"
	}
	return "discarded"
}

// Issue records a line the parser skipped.
type Issue struct {
	Kind IssueKind
	Line string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s line %q", i.Kind, i.Line)
}

// Result is the outcome of parsing a whole input.
type Result struct {
	// Events holds the completed events, sorted ascending by time.
	Events []model.Event
	// Issues holds every skipped line in input order.
	Issues []Issue
	// Trailing is the state left at end of input. Anything other than Empty
	// means a half-written event was dropped.
	Trailing State
}

const (
	keyTime = "time"
	keyType = "type"
)

// pending is an immutable snapshot of the event being assembled.
type pending struct {
	state State
	kind  model.Kind
	at    time.Time
}

func (p pending) withKind(k model.Kind) pending {
	p.kind = k
	switch p.state {
	case Empty:
		p.state = HasKind
	case HasTime:
		p.state = Complete
	}
	return p
}

func (p pending) withTime(t time.Time) pending {
	p.at = t
	switch p.state {
	case Empty:
		p.state = HasTime
	case HasKind:
		p.state = Complete
	}
	return p
}

// withoutKind forgets a pending kind, as an unrecognized "type" value does.
func (p pending) withoutKind() pending {
	if p.state == HasKind {
		return pending{}
	}
	return p
}

// step applies one line to p.
func step(p pending, line string) (pending, *Issue) {
	parts := strings.Split(line, ": ")
	if len(parts) != 2 {
		return p, &Issue{Kind: Discarded, Line: line}
	}

	key, value := parts[0], parts[1]
	switch key {
	case keyTime:
		t, err := time.Parse(model.Layout, value)
		if err != nil {
			return p, &Issue{Kind: Failed, Line: line}
		}
		return p.withTime(t), nil
	case keyType:
		k, ok := model.ParseKind(value)
		if !ok {
			return p.withoutKind(), nil
		}
		return p.withKind(k), nil
	default:
		return p, &Issue{Kind: Discarded, Line: line}
	}
}

// Parse reads events from lines.
func Parse(lines []string) Result {
	var (
		res Result
		cur pending
	)
	for _, line := range lines {
		var issue *Issue
		cur, issue = step(cur, line)
		if issue != nil {
			res.Issues = append(res.Issues, *issue)
		}
		if cur.state == Complete {
			res.Events = append(res.Events, model.NewEvent(cur.kind, cur.at))
			cur = pending{}
		}
	}
	res.Trailing = cur.state

	sort.SliceStable(res.Events, func(i, j int) bool {
		return res.Events[i].Before(res.Events[j])
	})
	return res
}

// FromList returns the events in lines, sorted ascending. Skipped lines and
// a trailing half-written event are dropped silently; use Parse to see them.
func FromList(lines []string) []model.Event {
	return Parse(lines).Events
}
