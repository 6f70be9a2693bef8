package demand

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sales is the composed demand signal. Its own values are N(Level, Scale);
// applied values multiply in every modifier listed in the Sales rules.
type Sales struct {
	Level float64
	Scale float64
}

// NewSales requires a finite level and a non-negative scale.
func NewSales(level, scale float64) (*Sales, error) {
	if err := requireFinite(string(KindSales), "level", level); err != nil {
		return nil, err
	}
	if err := requireFinite(string(KindSales), "scale", scale); err != nil {
		return nil, err
	}
	if scale < 0 {
		return nil, configErrorf(ErrOutOfRange, string(KindSales), "scale",
			"must be non-negative, got %v", scale)
	}
	return &Sales{Level: level, Scale: scale}, nil
}

func (s *Sales) Kind() Kind   { return KindSales }
func (s *Sales) Name() string { return string(KindSales) }

// BuildOwnValues draws nothing when Scale is zero.
func (s *Sales) BuildOwnValues(axis DateAxis, rng *rand.Rand) ([]float64, error) {
	n := axis.NumPoints()
	if s.Scale == 0 {
		return repeat(s.Level, n), nil
	}
	draw := distuv.Normal{Mu: s.Level, Sigma: s.Scale, Src: rng}
	values := make([]float64, n)
	for i := range values {
		values[i] = draw.Rand()
	}
	return values, nil
}

func requireFinite(factor, param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return configErrorf(ErrOutOfRange, factor, param, "must be a finite number, got %v", v)
	}
	return nil
}
