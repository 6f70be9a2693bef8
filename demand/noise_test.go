package demand

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestNoise_NormalMoments(t *testing.T) {
	axis := mustAxis(t, "2022-01-01", "2022-12-31", Daily)
	n := must(NewNoise(0.1, NoiseNormal))
	values := must(n.BuildOwnValues(axis, testRNG(42)))
	require.Len(t, values, axis.NumPoints())

	mean, std := stat.MeanStdDev(values, nil)
	assert.InDelta(t, 0, mean, 0.1)
	assert.InDelta(t, 0.1, std, 0.05)
}

func TestNoise_UniformBounds(t *testing.T) {
	axis := DefaultDateAxis()
	values := must(must(NewNoise(0.5, NoiseUniform)).BuildOwnValues(axis, testRNG(1)))
	for i, v := range values {
		if v < -0.5 || v > 0.5 {
			t.Fatalf("uniform noise[%d] = %v outside [-0.5, 0.5]", i, v)
		}
	}
}

func TestNoise_PoissonNonNegativeIntegers(t *testing.T) {
	axis := DefaultDateAxis()
	values := must(must(NewNoise(3, NoisePoisson)).BuildOwnValues(axis, testRNG(1)))
	for i, v := range values {
		if v < 0 || v != math.Trunc(v) {
			t.Fatalf("poisson noise[%d] = %v is not a non-negative integer", i, v)
		}
	}
}

func TestNoise_ZeroLevelIsSilent(t *testing.T) {
	axis := DefaultDateAxis()
	for _, nt := range []NoiseType{NoiseNormal, NoiseUniform, NoisePoisson} {
		values := must(must(NewNoise(0, nt)).BuildOwnValues(axis, testRNG(1)))
		for _, v := range values {
			if v != 0 {
				t.Fatalf("%s noise at level 0 produced %v", nt, v)
			}
		}
	}
}

func TestNoise_LevelScalesSpread(t *testing.T) {
	axis := mustAxis(t, "2022-01-01", "2022-12-31", Daily)
	low := must(must(NewNoise(0.05, NoiseNormal)).BuildOwnValues(axis, testRNG(7)))
	high := must(must(NewNoise(0.5, NoiseNormal)).BuildOwnValues(axis, testRNG(7)))
	assert.Greater(t, stat.StdDev(high, nil), stat.StdDev(low, nil))
}

func TestNoise_SameSeedSameValues(t *testing.T) {
	axis := DefaultDateAxis()
	n := must(NewNoise(0.2, NoiseNormal))
	a := must(n.BuildOwnValues(axis, testRNG(99)))
	b := must(n.BuildOwnValues(axis, testRNG(99)))
	assert.Equal(t, a, b)
}

func TestNewNoise_Validation(t *testing.T) {
	_, err := NewNoise(0.1, NoiseType("pink"))
	require.ErrorIs(t, err, ErrUnknownOption)
	assert.Contains(t, err.Error(), "pink")

	_, err = NewNoise(-0.1, NoiseNormal)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
