package demand

import (
	"strings"
	"time"
)

// SamplingFrequency is the granularity of a DateAxis.
type SamplingFrequency string

const (
	Daily     SamplingFrequency = "daily"
	Weekly    SamplingFrequency = "weekly" // anchored on Mondays
	Monthly   SamplingFrequency = "monthly"
	Quarterly SamplingFrequency = "quarterly"
)

// frequencyAliases maps accepted spellings, including pandas offset aliases.
var frequencyAliases = map[string]SamplingFrequency{
	"daily": Daily, "d": Daily,
	"weekly": Weekly, "w": Weekly, "w-mon": Weekly,
	"monthly": Monthly, "m": Monthly, "me": Monthly,
	"quarterly": Quarterly, "q": Quarterly, "qe": Quarterly,
}

// samplePeriodDays is the mean calendar length of one sample.
var samplePeriodDays = map[SamplingFrequency]float64{
	Daily:     1,
	Weekly:    7,
	Monthly:   365.25 / 12,
	Quarterly: 365.25 / 4,
}

// ParseSamplingFrequency resolves a frequency name or alias (case-insensitive).
func ParseSamplingFrequency(s string) (SamplingFrequency, error) {
	if f, ok := frequencyAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", configErrorf(ErrUnknownOption, "axis", "frequency",
		"unknown sampling frequency %q; valid: daily, weekly, monthly, quarterly", s)
}

// DateAxis is the shared, inclusive date range all factors of a Row sample on.
type DateAxis struct {
	Start     time.Time
	End       time.Time
	Frequency SamplingFrequency
}

// DefaultDateAxis is one year of Monday-anchored weekly samples.
func DefaultDateAxis() DateAxis {
	return DateAxis{
		Start:     time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Frequency: Weekly,
	}
}

// NewDateAxis validates and normalizes a date axis.
// Fails if end precedes start, the frequency is unknown or the range holds no samples.
func NewDateAxis(start, end time.Time, freq SamplingFrequency) (DateAxis, error) {
	a := DateAxis{Start: truncateDay(start), End: truncateDay(end), Frequency: freq}
	if err := a.Validate(); err != nil {
		return DateAxis{}, err
	}
	return a, nil
}

// Validate checks ordering, frequency and non-emptiness.
func (a DateAxis) Validate() error {
	if _, ok := samplePeriodDays[a.Frequency]; !ok {
		return configErrorf(ErrUnknownOption, "axis", "frequency",
			"unknown sampling frequency %q; valid: daily, weekly, monthly, quarterly", a.Frequency)
	}
	if a.End.Before(a.Start) {
		return configErrorf(ErrOutOfRange, "axis", "end",
			"end %s precedes start %s", a.End.Format(time.DateOnly), a.Start.Format(time.DateOnly))
	}
	if a.NumPoints() == 0 {
		return configErrorf(ErrOutOfRange, "axis", "",
			"no %s samples between %s and %s", a.Frequency, a.Start.Format(time.DateOnly), a.End.Format(time.DateOnly))
	}
	return nil
}

// Dates returns every sample date of the axis in ascending order.
func (a DateAxis) Dates() []time.Time {
	start, end := truncateDay(a.Start), truncateDay(a.End)
	if end.Before(start) {
		return nil
	}
	var dates []time.Time
	switch a.Frequency {
	case Daily:
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
	case Weekly:
		shift := (int(time.Monday) - int(start.Weekday()) + 7) % 7
		for d := start.AddDate(0, 0, shift); !d.After(end); d = d.AddDate(0, 0, 7) {
			dates = append(dates, d)
		}
	case Monthly:
		dates = periodEnds(start, end, 1)
	case Quarterly:
		dates = periodEnds(start, end, 3)
	}
	return dates
}

// NumPoints is len(Dates()).
func (a DateAxis) NumPoints() int {
	return len(a.Dates())
}

// periodEnds lists the last day of every period of stepMonths months
// (periods aligned to January) that falls inside [start, end].
func periodEnds(start, end time.Time, stepMonths int) []time.Time {
	var dates []time.Time
	month := int(start.Month())
	// first period whose end is not before start
	firstEnd := ((month-1)/stepMonths + 1) * stepMonths
	cursor := time.Date(start.Year(), time.Month(firstEnd), 1, 0, 0, 0, 0, time.UTC)
	for {
		last := cursor.AddDate(0, 1, -1)
		if last.After(end) {
			return dates
		}
		if !last.Before(start) {
			dates = append(dates, last)
		}
		cursor = cursor.AddDate(0, stepMonths, 0)
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
