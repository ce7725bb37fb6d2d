// Package rules evaluates task template rules against a planning date.
//
// Rule bodies are Mangle Datalog clause bodies. Every program is prefixed
// with a generated date library describing the target date, so a body such
// as today(/monday) or today(/weekend) needs no date arithmetic of its own.
package rules

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp is the integer form of the target date used inside programs:
// Unix seconds of the date's midnight UTC.
func Timestamp(date time.Time) int64 {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

const dateLibraryRules = `weekend(/saturday).
weekend(/sunday).
weekday(Name, Date) :- day_of_week(Date, N), day_name(Name, N).
today(Name) :- target_date(Date), weekday(Name, Date).
today(/weekend) :- target_date(Date), weekday(Name, Date), weekend(Name).
`

// DateLibrary renders the calendar facts and rules for the given date.
// The output depends only on the calendar date, never on the time of day.
func DateLibrary(date time.Time) string {
	ts := Timestamp(date)
	day := time.Unix(ts, 0).UTC()
	_, week := day.ISOWeek()

	var b strings.Builder
	b.WriteString("# date library\n")
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		fmt.Fprintf(&b, "day_name(/%s, %d).\n", strings.ToLower(wd.String()), int(wd))
	}
	b.WriteString(dateLibraryRules)
	fmt.Fprintf(&b, "target_date(%d).\n", ts)
	fmt.Fprintf(&b, "day_of_week(%d, %d).\n", ts, int(day.Weekday()))
	fmt.Fprintf(&b, "day_of_month(%d).\n", day.Day())
	fmt.Fprintf(&b, "month(%d).\n", int(day.Month()))
	fmt.Fprintf(&b, "year(%d).\n", day.Year())
	fmt.Fprintf(&b, "iso_week(%d).\n", week)
	parity := "odd"
	if week%2 == 0 {
		parity = "even"
	}
	fmt.Fprintf(&b, "week_parity(/%s).\n", parity)
	return b.String()
}
