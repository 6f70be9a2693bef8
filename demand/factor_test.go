package demand

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidKind(t *testing.T) {
	for _, k := range []Kind{KindTrend, KindChangePoints, KindSeasonality, KindStockOut,
		KindConstant, KindMultiplier, KindPromo, KindNoise, KindSales} {
		assert.True(t, IsValidKind(k), "kind %q", k)
	}
	assert.False(t, IsValidKind("holiday"))
}

func TestCombinationRule_SalesOnly(t *testing.T) {
	multiplied := []Kind{KindStockOut, KindTrend, KindChangePoints, KindSeasonality, KindPromo, KindMultiplier}
	for _, dep := range multiplied {
		_, ok := CombinationRule(KindSales, dep)
		assert.True(t, ok, "sales should consume %q", dep)
	}
	for _, dep := range []Kind{KindNoise, KindConstant, KindSales} {
		_, ok := CombinationRule(KindSales, dep)
		assert.False(t, ok, "sales should ignore %q", dep)
	}
	for _, consumer := range []Kind{KindTrend, KindConstant, KindNoise, KindSeasonality} {
		_, ok := CombinationRule(consumer, KindTrend)
		assert.False(t, ok, "%q should not consume dependencies", consumer)
	}
}

func TestApply_MultipliesDeclaredDependencies(t *testing.T) {
	axis := mustAxis(t, "2022-01-01", "2022-01-03", Daily)
	sales := must(NewSales(10, 0))
	trend := &stubFactor{kind: KindTrend, name: "trend", values: []float64{1, 2, 3}}
	noise := &stubFactor{kind: KindNoise, name: "noise", values: []float64{5, 5, 5}}

	got, err := Apply(sales, []Dependency{
		{Factor: trend, Values: trend.values},
		{Factor: noise, Values: noise.values},
	}, axis, testRNG(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, got)
}

func TestApply_ConstantIgnoresDependencies(t *testing.T) {
	axis := mustAxis(t, "2022-01-01", "2022-01-03", Daily)
	c := must(NewConstant(4))
	trend := &stubFactor{kind: KindTrend, name: "trend", values: []float64{1, 2, 3}}

	got, err := Apply(c, []Dependency{{Factor: trend, Values: trend.values}}, axis, testRNG(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 4, 4}, got)
}

func TestApply_RejectsBadDependencies(t *testing.T) {
	axis := mustAxis(t, "2022-01-01", "2022-01-03", Daily)
	sales := must(NewSales(1, 0))
	trend := &stubFactor{kind: KindTrend, name: "trend", values: []float64{1, 1, 1}}

	tests := []struct {
		name string
		deps []Dependency
		want error
	}{
		{"duplicate instance", []Dependency{{trend, trend.values}, {trend, trend.values}}, ErrDuplicate},
		{"not applied", []Dependency{{Factor: trend}}, ErrNotApplied},
		{"nil factor", []Dependency{{Values: trend.values}}, ErrNotApplied},
		{"wrong length", []Dependency{{trend, []float64{1, 1}}}, ErrShape},
		{"self", []Dependency{{sales, []float64{1, 1, 1}}}, ErrForwardReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(sales, tt.deps, axis, testRNG(1))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
			assert.True(t, IsConfigError(err))
		})
	}
}

func TestApply_RejectsWrongOwnLength(t *testing.T) {
	axis := mustAxis(t, "2022-01-01", "2022-01-03", Daily)
	bad := &stubFactor{kind: KindConstant, name: "bad", values: []float64{1}}
	_, err := Apply(bad, nil, axis, testRNG(1))
	assert.ErrorIs(t, err, ErrShape)
}

func TestConfigError_Format(t *testing.T) {
	err := configErrorf(ErrOutOfRange, "trend", "delta", "must be in (0, 1), got %v", 2.0)
	assert.Equal(t, "trend.delta: must be in (0, 1), got 2", err.Error())
	assert.ErrorIs(t, err, ErrOutOfRange)

	bare := &ConfigError{Msg: "boom"}
	assert.Equal(t, "config: boom", bare.Error())
}
