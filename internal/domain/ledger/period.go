package ledger

import (
	"time"

	"github.com/doug-fsg/controlei/internal/domain/shared"
)

// Granularity is the period size used to bucket cash-flow items
type Granularity string

const (
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// ParseGranularity validates a granularity string, defaulting to month
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "":
		return GranularityMonth, nil
	case string(GranularityWeek), string(GranularityMonth),
		string(GranularityQuarter), string(GranularityYear):
		return Granularity(s), nil
	}
	return "", shared.NewDomainError("INVALID_INPUT", "granularity must be week, month, quarter or year")
}

// PeriodStart returns the first day of the period containing t.
// Weeks are ISO weeks, starting on Monday.
func (g Granularity) PeriodStart(t time.Time) time.Time {
	switch g {
	case GranularityWeek:
		daysSinceMonday := (int(t.Weekday()) + 6) % 7
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		return day.AddDate(0, 0, -daysSinceMonday)
	case GranularityQuarter:
		quarterMonth := time.Month((int(t.Month())-1)/3*3 + 1)
		return time.Date(t.Year(), quarterMonth, 1, 0, 0, 0, 0, t.Location())
	case GranularityYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
}

// MonthBounds returns the inclusive [first, last] day bounds of the month
// containing t.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// inRange reports whether d falls within the inclusive [start, end] range
func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}
