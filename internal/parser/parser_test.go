package parser_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/punch/internal/model"
	"github.com/Tiliavir/punch/internal/parser"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 10, day, hour, minute, 0, 0, time.UTC)
}

func TestFromListWellFormed(t *testing.T) {
	lines := []string{
		"type: IN",
		"time: 2026-10-15 09:00:00 +0000",
		"type: OUT",
		"time: 2026-10-15 12:00:00 +0000",
	}
	require.Equal(t, []model.Event{
		model.NewEvent(model.In, at(15, 9, 0)),
		model.NewEvent(model.Out, at(15, 12, 0)),
	}, parser.FromList(lines))
}

func TestFromListFieldOrderIndependent(t *testing.T) {
	lines := []string{
		"time: 2026-10-15 09:00:00 +0000",
		"type: IN",
		"type: OUT",
		"time: 2026-10-15 12:00:00 +0000",
	}
	events := parser.FromList(lines)
	require.Len(t, events, 2)
	require.Equal(t, model.In, events[0].Kind)
	require.Equal(t, model.Out, events[1].Kind)
}

func TestFromListNormalisesOffset(t *testing.T) {
	events := parser.FromList([]string{
		"type: IN",
		"time: 2026-10-15 11:00:00 +0200",
	})
	require.Len(t, events, 1)
	require.Equal(t, at(15, 9, 0), events[0].Time)
	require.Equal(t, time.UTC, events[0].Time.Location())
}

func TestFromListSortsEvents(t *testing.T) {
	lines := []string{
		"type: OUT",
		"time: 2026-10-15 12:00:00 +0000",
		"type: IN",
		"time: 2026-10-15 09:00:00 +0000",
	}
	events := parser.FromList(lines)
	require.Len(t, events, 2)
	require.True(t, events[0].Time.Before(events[1].Time))
	require.Equal(t, model.In, events[0].Kind)
}

func TestMalformedLinesAreTolerated(t *testing.T) {
	tests := []struct {
		name string
		bad  string
	}{
		{"garbage", "garbage"},
		{"invalid type", "type: BREAK"},
		{"unparseable time", "time: not a date"},
		{"unknown key", "note: lunch"},
		{"empty", ""},
		{"extra separator", "type: IN: OUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := []string{
				tt.bad,
				"type: IN",
				"time: 2026-10-15 09:00:00 +0000",
			}
			require.Equal(t, []model.Event{
				model.NewEvent(model.In, at(15, 9, 0)),
			}, parser.FromList(lines))
		})
	}
}

func TestParseRecordsIssues(t *testing.T) {
	lines := []string{
		"time: 2021-03-14 21:29:49 +0000",
		"time: THIS WILL FAIL",
		"type: IN",
		"Discard this line please",
		"type: OUT",
		"time: 2021-03-17 21:29:49 +0000",
	}
	res := parser.Parse(lines)

	require.Equal(t, []model.Event{
		model.NewEvent(model.In, time.Date(2021, 3, 14, 21, 29, 49, 0, time.UTC)),
		model.NewEvent(model.Out, time.Date(2021, 3, 17, 21, 29, 49, 0, time.UTC)),
	}, res.Events)
	require.Equal(t, []parser.Issue{
		{Kind: parser.Failed, Line: "time: THIS WILL FAIL"},
		{Kind: parser.Discarded, Line: "Discard this line please"},
	}, res.Issues)
	require.Equal(t, parser.Empty, res.Trailing)
}

func TestParseReportsTrailingState(t *testing.T) {
	res := parser.Parse([]string{
		"type: IN",
		"time: 2026-10-15 09:00:00 +0000",
		"type: OUT",
	})
	require.Len(t, res.Events, 1)
	require.Equal(t, parser.HasKind, res.Trailing)

	res = parser.Parse([]string{"time: 2026-10-15 09:00:00 +0000"})
	require.Empty(t, res.Events)
	require.Equal(t, parser.HasTime, res.Trailing)
}

func TestInvalidTypeClearsPendingKind(t *testing.T) {
	res := parser.Parse([]string{
		"type: IN",
		"type: BREAK",
		"time: 2026-10-15 09:00:00 +0000",
	})
	require.Empty(t, res.Events)
	require.Empty(t, res.Issues)
	require.Equal(t, parser.HasTime, res.Trailing)
}

func TestLaterTimeOverwritesPendingTime(t *testing.T) {
	events := parser.FromList([]string{
		"time: 2026-10-15 09:00:00 +0000",
		"time: 2026-10-15 10:00:00 +0000",
		"type: IN",
	})
	require.Equal(t, []model.Event{model.NewEvent(model.In, at(15, 10, 0))}, events)
}

func TestIssueError(t *testing.T) {
	issue := parser.Issue{Kind: parser.Failed, Line: "time: x"}
	require.Equal(t, `failed line "time: x"`, issue.Error())
}
