package resample

import (
	"fmt"
	"strings"
	"time"
)

// Frequency is a resampling frequency token. Wire values follow the short
// tokens exposed by the UI ("5S" .. "Y").
type Frequency string

const (
	Freq5Seconds  Frequency = "5S"
	Freq10Seconds Frequency = "10S"
	Freq30Seconds Frequency = "30S"
	FreqMinute    Frequency = "T"
	FreqHour      Frequency = "H"
	FreqDay       Frequency = "D"
	FreqWeek      Frequency = "W"
	FreqMonth     Frequency = "M"
	FreqQuarter   Frequency = "Q"
	FreqYear      Frequency = "Y"
)

// Frequencies lists all supported tokens in ascending bucket width.
func Frequencies() []Frequency {
	return []Frequency{
		Freq5Seconds, Freq10Seconds, Freq30Seconds, FreqMinute, FreqHour,
		FreqDay, FreqWeek, FreqMonth, FreqQuarter, FreqYear,
	}
}

// ParseFrequency parses a frequency token, case-insensitively.
func ParseFrequency(s string) (Frequency, error) {
	token := Frequency(strings.ToUpper(strings.TrimSpace(s)))
	for _, f := range Frequencies() {
		if token == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown frequency %q", s)
}

// Label returns the human-readable name of the frequency.
func (f Frequency) Label() string {
	switch f {
	case Freq5Seconds:
		return "5 Seconds"
	case Freq10Seconds:
		return "10 Seconds"
	case Freq30Seconds:
		return "30 Seconds"
	case FreqMinute:
		return "Minute"
	case FreqHour:
		return "Hourly"
	case FreqDay:
		return "Daily"
	case FreqWeek:
		return "Weekly"
	case FreqMonth:
		return "Monthly"
	case FreqQuarter:
		return "Quarterly"
	default:
		return "Yearly"
	}
}

// BucketStart maps a timestamp to the start of its left-closed bucket.
// Sub-day widths are aligned to the Unix epoch; day buckets start at UTC
// midnight; weeks start Monday 00:00 UTC; month, quarter and year buckets
// are calendar-aligned and labeled at their start (the "M" token always
// means calendar months labeled at the first of the month).
func (f Frequency) BucketStart(t time.Time) time.Time {
	t = t.UTC()
	switch f {
	case Freq5Seconds:
		return epochAlign(t, 5)
	case Freq10Seconds:
		return epochAlign(t, 10)
	case Freq30Seconds:
		return epochAlign(t, 30)
	case FreqMinute:
		return epochAlign(t, 60)
	case FreqHour:
		return epochAlign(t, 3600)
	case FreqDay:
		return epochAlign(t, 86400)
	case FreqWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
	case FreqMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case FreqQuarter:
		qm := time.Month((int(t.Month())-1)/3*3 + 1)
		return time.Date(t.Year(), qm, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

func epochAlign(t time.Time, width int64) time.Time {
	sec := t.Unix()
	rem := sec % width
	if rem < 0 {
		rem += width
	}
	return time.Unix(sec-rem, 0).UTC()
}
