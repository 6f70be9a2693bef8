package demand

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// NoiseType selects the disturbance distribution.
type NoiseType string

const (
	NoiseNormal  NoiseType = "normal"
	NoiseUniform NoiseType = "uniform"
	NoisePoisson NoiseType = "poisson"
)

var validNoiseTypes = map[NoiseType]bool{
	NoiseNormal: true, NoiseUniform: true, NoisePoisson: true,
}

// Noise is a zero-centered (normal, uniform) or non-negative (poisson)
// disturbance. No combination rule references it: its values are reported
// as a separate column and never enter sales.
type Noise struct {
	Level float64
	Type  NoiseType
}

// NewNoise validates the level (>= 0) and the noise type.
func NewNoise(level float64, noiseType NoiseType) (*Noise, error) {
	if !validNoiseTypes[noiseType] {
		return nil, configErrorf(ErrUnknownOption, string(KindNoise), "noise_type",
			"unknown noise type %q; valid: normal, uniform, poisson", noiseType)
	}
	if err := requireFinite(string(KindNoise), "noise_level", level); err != nil {
		return nil, err
	}
	if level < 0 {
		return nil, configErrorf(ErrOutOfRange, string(KindNoise), "noise_level",
			"must be non-negative, got %v", level)
	}
	return &Noise{Level: level, Type: noiseType}, nil
}

func (n *Noise) Kind() Kind   { return KindNoise }
func (n *Noise) Name() string { return string(KindNoise) }

func (n *Noise) BuildOwnValues(axis DateAxis, rng *rand.Rand) ([]float64, error) {
	count := axis.NumPoints()
	if n.Level == 0 {
		return make([]float64, count), nil
	}

	var draw func() float64
	switch n.Type {
	case NoiseNormal:
		draw = distuv.Normal{Mu: 0, Sigma: n.Level, Src: rng}.Rand
	case NoiseUniform:
		draw = distuv.Uniform{Min: -n.Level, Max: n.Level, Src: rng}.Rand
	case NoisePoisson:
		draw = distuv.Poisson{Lambda: n.Level, Src: rng}.Rand
	default:
		return nil, configErrorf(ErrUnknownOption, n.Name(), "noise_type",
			"unknown noise type %q; valid: normal, uniform, poisson", n.Type)
	}

	values := make([]float64, count)
	for i := range values {
		values[i] = draw()
	}
	return values, nil
}
