package demand

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// ChangePoints is a piecewise-constant level series. The axis is split into
// NumChangePoints contiguous segments of randomly permuted length, each held
// at an independent uniform level in [MinLevel, MaxLevel].
type ChangePoints struct {
	NumChangePoints int
	MinLevel        float64
	MaxLevel        float64
}

// NewChangePoints requires at least one segment and MinLevel <= MaxLevel.
func NewChangePoints(numChangePoints int, minLevel, maxLevel float64) (*ChangePoints, error) {
	if numChangePoints < 1 {
		return nil, configErrorf(ErrOutOfRange, string(KindChangePoints), "num_change_points",
			"must be at least 1, got %d", numChangePoints)
	}
	if minLevel > maxLevel {
		return nil, configErrorf(ErrOutOfRange, string(KindChangePoints), "min_level",
			"min_level %v exceeds max_level %v", minLevel, maxLevel)
	}
	return &ChangePoints{NumChangePoints: numChangePoints, MinLevel: minLevel, MaxLevel: maxLevel}, nil
}

func (c *ChangePoints) Kind() Kind   { return KindChangePoints }
func (c *ChangePoints) Name() string { return string(KindChangePoints) }

// SegmentLengths returns the permuted segment lengths for an axis of n samples.
// k-1 segments get floor(n/k) samples, the remaining one absorbs the rest.
// With fewer samples than segments the k-1 short segments are empty.
func (c *ChangePoints) SegmentLengths(n int, rng *rand.Rand) []int {
	k := c.NumChangePoints
	quotient := n / k
	lengths := make([]int, k)
	for i := 0; i < k-1; i++ {
		lengths[i] = quotient
	}
	lengths[k-1] = n - quotient*(k-1)
	rng.Shuffle(len(lengths), func(i, j int) {
		lengths[i], lengths[j] = lengths[j], lengths[i]
	})
	return lengths
}

func (c *ChangePoints) BuildOwnValues(axis DateAxis, rng *rand.Rand) ([]float64, error) {
	n := axis.NumPoints()
	level := distuv.Uniform{Min: c.MinLevel, Max: c.MaxLevel, Src: rng}

	values := make([]float64, 0, n)
	for _, length := range c.SegmentLengths(n, rng) {
		v := level.Rand()
		for i := 0; i < length; i++ {
			values = append(values, v)
		}
	}
	return values, nil
}
