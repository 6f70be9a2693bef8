package demand

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

// peakCategory is the natural period of a named peak.
type peakCategory int

const (
	annualPeak peakCategory = iota
	weeklyPeak
	quarterlyPeak
)

// oscillationFrequencies holds cycles per sample by peak category and
// sampling frequency. Quarterly peaks outside daily sampling are treated as
// annual-scale.
var oscillationFrequencies = map[peakCategory]map[SamplingFrequency]float64{
	annualPeak: {
		Daily:     1.0 / 365.25,
		Weekly:    1.0 / 52.18,
		Monthly:   1.0 / 12.0,
		Quarterly: 1.0 / 4.0,
	},
	weeklyPeak: {
		Daily:     1.0 / 7.0,
		Weekly:    1.0,
		Monthly:   1.0 / 7.0,
		Quarterly: 1.0 / 7.0,
	},
	quarterlyPeak: {
		Daily:     1.0 / 4.0,
		Weekly:    1.0 / 52.18,
		Monthly:   1.0 / 12.0,
		Quarterly: 1.0 / 4.0,
	},
}

// peakTarget describes the calendar feature a peak aligns to.
type peakTarget struct {
	category peakCategory
	matches  func(time.Time) bool
}

var peakTargets = buildPeakTargets()

func buildPeakTargets() map[string]peakTarget {
	targets := make(map[string]peakTarget)
	for m := time.January; m <= time.December; m++ {
		month := m
		targets[strings.ToLower(m.String())] = peakTarget{annualPeak, func(t time.Time) bool { return t.Month() == month }}
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		day := d
		targets[strings.ToLower(d.String())] = peakTarget{weeklyPeak, func(t time.Time) bool { return t.Weekday() == day }}
	}
	for q := 1; q <= 4; q++ {
		quarter := q
		targets["q"+string(rune('0'+q))] = peakTarget{quarterlyPeak, func(t time.Time) bool { return quarterOf(t) == quarter }}
	}
	targets["year_start"] = peakTarget{annualPeak, func(t time.Time) bool { return t.Month() == time.January }}
	targets["mid_year"] = peakTarget{annualPeak, func(t time.Time) bool { return t.Month() == time.July }}
	return targets
}

func quarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// DefaultPeak is used when a Seasonality is built without peaks.
const DefaultPeak = "july"

// PeakInfo exposes the numbers a Seasonality uses for one peak.
type PeakInfo struct {
	Offset    float64 `yaml:"offset"`    // samples from axis start to the first matching feature
	Frequency float64 `yaml:"frequency"` // cycles per sample
	Phase     float64 `yaml:"phase"`     // radians, aligns the sinusoid maximum with Offset
}

// Seasonality is a periodic multiplicative modifier centered at 1.0:
//
//	1 + Amplitude * Σ_p sin(2π·f_p·i + phase_p + PhaseShift) / len(Peaks)
type Seasonality struct {
	Peaks      []string
	Amplitude  float64
	PhaseShift float64
}

// NewSeasonality normalizes peak names (lower case, duplicates dropped,
// empty defaults to july) and validates amplitude in [0, 1].
func NewSeasonality(peaks []string, amplitude, phaseShift float64) (*Seasonality, error) {
	if !(amplitude >= 0 && amplitude <= 1) {
		return nil, configErrorf(ErrOutOfRange, string(KindSeasonality), "amplitude",
			"must be in [0, 1], got %v", amplitude)
	}
	if err := requireFinite(string(KindSeasonality), "phase_shift", phaseShift); err != nil {
		return nil, err
	}

	normalized := make([]string, 0, len(peaks))
	seen := make(map[string]bool, len(peaks))
	for _, p := range peaks {
		name := strings.ToLower(strings.TrimSpace(p))
		if _, ok := peakTargets[name]; !ok {
			return nil, configErrorf(ErrUnknownOption, string(KindSeasonality), "peaks",
				"unknown peak %q; valid: month names, weekday names, q1-q4, year_start, mid_year", p)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		normalized = append(normalized, name)
	}
	if len(normalized) == 0 {
		normalized = append(normalized, DefaultPeak)
	}
	return &Seasonality{Peaks: normalized, Amplitude: amplitude, PhaseShift: phaseShift}, nil
}

func (s *Seasonality) Kind() Kind   { return KindSeasonality }
func (s *Seasonality) Name() string { return string(KindSeasonality) }

// OscillationFrequency returns the cycles per sample of peak under freq.
func OscillationFrequency(peak string, freq SamplingFrequency) (float64, error) {
	target, ok := peakTargets[strings.ToLower(strings.TrimSpace(peak))]
	if !ok {
		return 0, configErrorf(ErrUnknownOption, string(KindSeasonality), "peaks", "unknown peak %q", peak)
	}
	f, ok := oscillationFrequencies[target.category][freq]
	if !ok {
		return 0, configErrorf(ErrUnknownOption, string(KindSeasonality), "frequency",
			"unknown sampling frequency %q", freq)
	}
	return f, nil
}

// PeakInfo computes offset, frequency and phase for every peak over axis.
func (s *Seasonality) PeakInfo(axis DateAxis) (map[string]PeakInfo, error) {
	dates := axis.Dates()
	if len(dates) == 0 {
		return nil, configErrorf(ErrOutOfRange, s.Name(), "", "empty date axis")
	}
	peaks := s.peaks()
	info := make(map[string]PeakInfo, len(peaks))
	for _, p := range peaks {
		f, err := OscillationFrequency(p, axis.Frequency)
		if err != nil {
			return nil, err
		}
		offset := peakOffset(peakTargets[p], dates, axis.Frequency)
		info[p] = PeakInfo{
			Offset:    offset,
			Frequency: f,
			Phase:     math.Pi/2 - 2*math.Pi*f*offset,
		}
	}
	return info, nil
}

// peakOffset is the index of the first sample matching target. Without a
// matching sample it projects the calendar distance to the next matching day
// into sample units.
func peakOffset(target peakTarget, dates []time.Time, freq SamplingFrequency) float64 {
	for i, d := range dates {
		if target.matches(d) {
			return float64(i)
		}
	}
	first := dates[0]
	for days := 1; days <= 366; days++ {
		if target.matches(first.AddDate(0, 0, days)) {
			return float64(days) / samplePeriodDays[freq]
		}
	}
	return 0
}

func (s *Seasonality) BuildOwnValues(axis DateAxis, _ *rand.Rand) ([]float64, error) {
	info, err := s.PeakInfo(axis)
	if err != nil {
		return nil, err
	}
	peaks := s.peaks()
	values := make([]float64, axis.NumPoints())
	for i := range values {
		sum := 0.0
		for _, p := range peaks {
			pi := info[p]
			sum += math.Sin(2*math.Pi*pi.Frequency*float64(i) + pi.Phase + s.PhaseShift)
		}
		values[i] = 1 + s.Amplitude*sum/float64(len(peaks))
	}
	return values, nil
}

// peaks returns the normalized peak names, defaulting to july.
func (s *Seasonality) peaks() []string {
	out := make([]string, 0, len(s.Peaks))
	for _, p := range s.Peaks {
		out = append(out, strings.ToLower(strings.TrimSpace(p)))
	}
	if len(out) == 0 {
		out = append(out, DefaultPeak)
	}
	return out
}
