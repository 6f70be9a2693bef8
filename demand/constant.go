package demand

import "math/rand/v2"

// Constant repeats Value over the axis and ignores every dependency.
type Constant struct {
	Value float64
}

func NewConstant(value float64) (*Constant, error) {
	if err := requireFinite(string(KindConstant), "value", value); err != nil {
		return nil, err
	}
	return &Constant{Value: value}, nil
}

func (c *Constant) Kind() Kind   { return KindConstant }
func (c *Constant) Name() string { return string(KindConstant) }

func (c *Constant) BuildOwnValues(axis DateAxis, _ *rand.Rand) ([]float64, error) {
	return repeat(c.Value, axis.NumPoints()), nil
}

// Multiplier is a Constant that Sales consumes multiplicatively.
type Multiplier struct {
	Constant
}

func NewMultiplier(value float64) (*Multiplier, error) {
	if err := requireFinite(string(KindMultiplier), "value", value); err != nil {
		return nil, err
	}
	return &Multiplier{Constant{Value: value}}, nil
}

func (m *Multiplier) Kind() Kind   { return KindMultiplier }
func (m *Multiplier) Name() string { return string(KindMultiplier) }
