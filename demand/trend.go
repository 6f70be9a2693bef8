package demand

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// TrendDirection is the slope sign of a Trend.
type TrendDirection string

const (
	Ascending  TrendDirection = "ascending"
	Descending TrendDirection = "descending"
)

// Trend is a linear ramp centered at 1.0 spanning 2*Delta over the axis.
type Trend struct {
	Direction TrendDirection
	Delta     float64
}

// NewTrend validates direction and delta; delta must lie in (0, 1) exclusive.
func NewTrend(direction TrendDirection, delta float64) (*Trend, error) {
	if direction != Ascending && direction != Descending {
		return nil, configErrorf(ErrUnknownOption, string(KindTrend), "direction",
			"unknown direction %q; valid: ascending, descending", direction)
	}
	if !(delta > 0 && delta < 1) {
		return nil, configErrorf(ErrOutOfRange, string(KindTrend), "delta",
			"delta must be in (0, 1), got %v", delta)
	}
	return &Trend{Direction: direction, Delta: delta}, nil
}

func (t *Trend) Kind() Kind   { return KindTrend }
func (t *Trend) Name() string { return string(KindTrend) }

func (t *Trend) BuildOwnValues(axis DateAxis, _ *rand.Rand) ([]float64, error) {
	n := axis.NumPoints()
	if n == 1 {
		return []float64{1}, nil
	}
	lo, hi := 1-t.Delta, 1+t.Delta
	if t.Direction == Descending {
		lo, hi = hi, lo
	}
	return floats.Span(make([]float64, n), lo, hi), nil
}
