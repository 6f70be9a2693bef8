package demand

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// === Trend ===

func TestTrend_Endpoints(t *testing.T) {
	axis := DefaultDateAxis()
	n := axis.NumPoints()

	up := must(NewTrend(Ascending, 0.1))
	values := must(up.BuildOwnValues(axis, nil))
	require.Len(t, values, n)
	assert.InDelta(t, 0.9, values[0], 1e-12)
	assert.InDelta(t, 1.1, values[n-1], 1e-12)
	assert.InDelta(t, 0.2, values[n-1]-values[0], 1e-9)

	down := must(NewTrend(Descending, 0.5))
	values = must(down.BuildOwnValues(axis, nil))
	assert.InDelta(t, 1.5, values[0], 1e-12)
	assert.InDelta(t, 0.5, values[n-1], 1e-12)
	for i := 1; i < n; i++ {
		if values[i] > values[i-1] {
			t.Fatalf("descending trend increased at %d: %v -> %v", i, values[i-1], values[i])
		}
	}
}

func TestTrend_SingleSample(t *testing.T) {
	axis := mustAxis(t, "2022-01-01", "2022-01-01", Daily)
	values := must(must(NewTrend(Ascending, 0.3)).BuildOwnValues(axis, nil))
	assert.Equal(t, []float64{1}, values)
}

func TestNewTrend_Validation(t *testing.T) {
	for _, delta := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
		_, err := NewTrend(Ascending, delta)
		assert.ErrorIs(t, err, ErrOutOfRange, "delta %v", delta)
	}
	_, err := NewTrend(TrendDirection("sideways"), 0.2)
	assert.ErrorIs(t, err, ErrUnknownOption)
}

// === ChangePoints ===

func TestChangePoints_SegmentLengths(t *testing.T) {
	cp := must(NewChangePoints(3, 0.5, 2))
	lengths := cp.SegmentLengths(10, testRNG(3))
	require.Len(t, lengths, 3)
	total := 0
	threes, fours := 0, 0
	for _, l := range lengths {
		total += l
		switch l {
		case 3:
			threes++
		case 4:
			fours++
		}
	}
	assert.Equal(t, 10, total)
	assert.Equal(t, 2, threes)
	assert.Equal(t, 1, fours)
}

func TestChangePoints_PiecewiseConstantWithinBounds(t *testing.T) {
	axis := DefaultDateAxis()
	cp := must(NewChangePoints(4, 0.5, 2))
	values := must(cp.BuildOwnValues(axis, testRNG(11)))
	require.Len(t, values, axis.NumPoints())

	distinct := map[float64]bool{}
	for _, v := range values {
		assert.GreaterOrEqual(t, v, 0.5)
		assert.LessOrEqual(t, v, 2.0)
		distinct[v] = true
	}
	assert.Len(t, distinct, 4)

	jumps := 0
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1] {
			jumps++
		}
	}
	assert.Equal(t, 3, jumps)
}

func TestChangePoints_MoreSegmentsThanSamples(t *testing.T) {
	// GIVEN 5 segments over a 2-sample axis
	axis := mustAxis(t, "2022-01-01", "2022-01-02", Daily)
	cp := must(NewChangePoints(5, 0.5, 2))

	// THEN four segments are empty and one level covers the whole axis
	lengths := cp.SegmentLengths(axis.NumPoints(), testRNG(1))
	assert.Equal(t, 2, sumInts(lengths))
	assert.Len(t, lengths, 5)

	values, err := cp.BuildOwnValues(axis, testRNG(1))
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, values[0], values[1])
}

func sumInts(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func TestNewChangePoints_Validation(t *testing.T) {
	_, err := NewChangePoints(0, 0.5, 2)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewChangePoints(2, 3, 2)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

// === StockOut ===

func TestStockOut_Extremes(t *testing.T) {
	axis := DefaultDateAxis()
	never := must(must(NewStockOut(0, 2)).BuildOwnValues(axis, testRNG(1)))
	assert.Equal(t, float64(axis.NumPoints()), floats.Sum(never))

	always := must(must(NewStockOut(1, 2)).BuildOwnValues(axis, testRNG(1)))
	assert.Equal(t, 0.0, floats.Sum(always))
}

func TestStockOut_ValuesInUnitInterval(t *testing.T) {
	axis := mustAxis(t, "2022-01-01", "2022-12-31", Daily)
	so := must(NewStockOut(0.3, 2))
	values := must(so.BuildOwnValues(axis, testRNG(5)))
	for i, v := range values {
		if v < 0 || v > 1 {
			t.Fatalf("mask[%d] = %v outside [0, 1]", i, v)
		}
		if v != 1 && v > 0.7 {
			t.Fatalf("mask[%d] = %v exceeds in-stock probability without clamping", i, v)
		}
	}
}

func TestNewStockOut_Validation(t *testing.T) {
	_, err := NewStockOut(1.2, 2)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewStockOut(0.5, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewStockOut(0.5, 10)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

// === Constant / Multiplier ===

func TestConstantAndMultiplier(t *testing.T) {
	axis := mustAxis(t, "2022-01-01", "2022-01-04", Daily)
	c := must(NewConstant(2.5))
	assert.Equal(t, []float64{2.5, 2.5, 2.5, 2.5}, must(c.BuildOwnValues(axis, nil)))

	m := must(NewMultiplier(3))
	assert.Equal(t, KindMultiplier, m.Kind())
	assert.Equal(t, "multiplier", m.Name())
	assert.Equal(t, []float64{3, 3, 3, 3}, must(m.BuildOwnValues(axis, nil)))

	_, err := NewConstant(math.Inf(1))
	assert.ErrorIs(t, err, ErrOutOfRange)
}

// === Promo ===

func TestPromo_Lifts(t *testing.T) {
	axis := mustAxis(t, "2022-01-01", "2022-03-31", Daily)
	p := must(NewPromo(1.5, 3, 4))
	values := must(p.BuildOwnValues(axis, testRNG(9)))
	require.Len(t, values, axis.NumPoints())

	lifted := 0
	for _, v := range values {
		switch v {
		case 1:
		case 1.5:
			lifted++
		default:
			t.Fatalf("unexpected promo value %v", v)
		}
	}
	assert.GreaterOrEqual(t, lifted, 1)
	assert.LessOrEqual(t, lifted, 12)
}

func TestPromo_NoPromosIsBaseline(t *testing.T) {
	axis := DefaultDateAxis()
	values := must(must(NewPromo(2, 0, 1)).BuildOwnValues(axis, testRNG(1)))
	assert.Equal(t, float64(axis.NumPoints()), floats.Sum(values))
}

func TestNewPromo_Validation(t *testing.T) {
	_, err := NewPromo(0, 1, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewPromo(1.2, -1, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewPromo(1.2, 1, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

// === Sales ===

func TestSales_ZeroScaleIsFlat(t *testing.T) {
	axis := DefaultDateAxis()
	values := must(must(NewSales(120, 0)).BuildOwnValues(axis, nil))
	for _, v := range values {
		if v != 120 {
			t.Fatalf("flat sales value %v, want 120", v)
		}
	}
}

func TestSales_ScaleAddsSpread(t *testing.T) {
	axis := mustAxis(t, "2022-01-01", "2022-12-31", Daily)
	values := must(must(NewSales(100, 5)).BuildOwnValues(axis, testRNG(2)))
	assert.Greater(t, floats.Max(values), floats.Min(values))
	assert.InDelta(t, 100, floats.Sum(values)/float64(len(values)), 2)
}

func TestNewSales_Validation(t *testing.T) {
	_, err := NewSales(100, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewSales(math.NaN(), 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
