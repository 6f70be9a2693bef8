package demand

import (
	"math/rand/v2"
	"testing"
	"time"
)

// testRNG returns a deterministic stream for tests.
func testRNG(seed int64) *rand.Rand {
	return NewPartitionedRNG(NewSeedKey(seed)).ForSubsystem(SubsystemRow)
}

func mustAxis(t *testing.T, start, end string, freq SamplingFrequency) DateAxis {
	t.Helper()
	s, err := time.Parse(time.DateOnly, start)
	if err != nil {
		t.Fatal(err)
	}
	e, err := time.Parse(time.DateOnly, end)
	if err != nil {
		t.Fatal(err)
	}
	axis, err := NewDateAxis(s, e, freq)
	if err != nil {
		t.Fatalf("NewDateAxis(%s, %s, %s): %v", start, end, freq, err)
	}
	return axis
}

// stubFactor returns fixed own values.
type stubFactor struct {
	kind   Kind
	name   string
	values []float64
}

func (s *stubFactor) Kind() Kind   { return s.kind }
func (s *stubFactor) Name() string { return s.name }

func (s *stubFactor) BuildOwnValues(DateAxis, *rand.Rand) ([]float64, error) {
	return append([]float64(nil), s.values...), nil
}

// must panics on err; for constructors whose arguments are known good.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func localMaxima(values []float64) int {
	count := 0
	for i := 1; i < len(values)-1; i++ {
		if values[i] > values[i-1] && values[i] > values[i+1] {
			count++
		}
	}
	return count
}
