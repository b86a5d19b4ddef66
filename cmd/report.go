package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/punch/internal/report"
	"github.com/Tiliavir/punch/internal/timecalc"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatCSV  = "csv"
)

type eventView struct {
	Kind string    `json:"kind" yaml:"kind"`
	Time time.Time `json:"time" yaml:"time"`
}

type dayView struct {
	Date    string `json:"date" yaml:"date"`
	Weekday string `json:"weekday" yaml:"weekday"`
	Total   string `json:"total" yaml:"total"`
	Minutes int64  `json:"total_minutes" yaml:"total_minutes"`
}

// reportView is what every output format renders.
type reportView struct {
	Date        string      `json:"date" yaml:"date"`
	Week        string      `json:"week" yaml:"week"`
	ClockedIn   bool        `json:"clocked_in" yaml:"clocked_in"`
	Today       []eventView `json:"today" yaml:"today"`
	TodayTotal  string      `json:"today_total" yaml:"today_total"`
	Days        []dayView   `json:"days" yaml:"days"`
	WeekTotal   string      `json:"week_total" yaml:"week_total"`
	WeekMinutes int64       `json:"week_total_minutes" yaml:"week_total_minutes"`
}

type renderFunc func(io.Writer, reportView) error

func rendererFor(format string) (renderFunc, error) {
	switch strings.ToLower(format) {
	case "", formatText:
		return renderText, nil
	case formatJSON:
		return renderJSON, nil
	case formatYAML:
		return renderYAML, nil
	case formatCSV:
		return renderCSV, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func buildView(r *report.Report) reportView {
	now := r.Now().UTC()
	today := r.Today()

	v := reportView{
		Date:       now.Format("2006-01-02"),
		Week:       timecalc.ISOWeekLabel(now),
		ClockedIn:  r.ClockedIn(),
		Today:      make([]eventView, 0, len(today)),
		TodayTotal: timecalc.FormatDuration(r.TotalTime(today)),
	}
	for _, e := range today {
		v.Today = append(v.Today, eventView{Kind: e.Kind.String(), Time: e.Time})
	}

	var week time.Duration
	for _, d := range r.DayTotals() {
		week += d.Total
		v.Days = append(v.Days, dayView{
			Date:    d.Date.Format("2006-01-02"),
			Weekday: d.Date.Weekday().String()[:3],
			Total:   timecalc.FormatDuration(d.Total),
			Minutes: int64(d.Total / time.Minute),
		})
	}
	v.WeekTotal = timecalc.FormatDuration(week)
	v.WeekMinutes = int64(week / time.Minute)
	return v
}

func renderText(w io.Writer, v reportView) error {
	re := lipgloss.NewRenderer(w)
	heading := re.NewStyle().Bold(true)
	muted := re.NewStyle().Faint(true)

	var b strings.Builder
	title := "Today " + v.Date
	if v.ClockedIn {
		title += " (clocked in)"
	}
	fmt.Fprintln(&b, heading.Render(title))
	if len(v.Today) == 0 {
		fmt.Fprintln(&b, "  "+muted.Render("No events."))
	}
	for _, e := range v.Today {
		fmt.Fprintf(&b, "  %-4s %s\n", e.Kind, e.Time.Format("15:04:05"))
	}
	fmt.Fprintf(&b, "  %-14s %6s\n", "Total", v.TodayTotal)

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, heading.Render("Week "+v.Week))
	for _, d := range v.Days {
		fmt.Fprintf(&b, "  %-14s %6s\n", d.Weekday+" "+d.Date, d.Total)
	}
	fmt.Fprintf(&b, "  %-14s %6s\n", "Total", v.WeekTotal)

	_, err := io.WriteString(w, b.String())
	return err
}

func renderJSON(w io.Writer, v reportView) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderYAML(w io.Writer, v reportView) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// renderCSV writes one row per day of the week so far.
func renderCSV(w io.Writer, v reportView) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "weekday", "duration", "duration_minutes"}); err != nil {
		return err
	}
	for _, d := range v.Days {
		if err := cw.Write([]string{d.Date, d.Weekday, d.Total, strconv.FormatInt(d.Minutes, 10)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
