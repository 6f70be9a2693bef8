package demand

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// Kind tags a factor variant. The kind string doubles as the default column name.
type Kind string

const (
	KindTrend        Kind = "trend"
	KindChangePoints Kind = "changepoints"
	KindSeasonality  Kind = "seasonality"
	KindStockOut     Kind = "oos"
	KindConstant     Kind = "constant"
	KindMultiplier   Kind = "multiplier"
	KindPromo        Kind = "promo"
	KindNoise        Kind = "noise"
	KindSales        Kind = "sales"
)

// validKinds lists every registered factor variant.
var validKinds = map[Kind]bool{
	KindTrend: true, KindChangePoints: true, KindSeasonality: true, KindStockOut: true,
	KindConstant: true, KindMultiplier: true, KindPromo: true, KindNoise: true, KindSales: true,
}

// IsValidKind reports whether k names a known factor variant.
func IsValidKind(k Kind) bool {
	return validKinds[k]
}

// Factor is an independently parameterized generator of one named series.
// Implementations must be pointer types: dependency validation compares
// factors by identity.
type Factor interface {
	// Kind returns the variant tag used to resolve combination rules.
	Kind() Kind
	// Name returns the output column key.
	Name() string
	// BuildOwnValues returns exactly axis.NumPoints() values derived from the
	// factor's own parameters and rng only.
	BuildOwnValues(axis DateAxis, rng *rand.Rand) ([]float64, error)
}

// Combinator folds a dependency's applied values into a consumer's own values.
type Combinator func(dep, own []float64) []float64

// Multiply is the element-wise product combinator.
func Multiply(dep, own []float64) []float64 {
	out := make([]float64, len(own))
	return floats.MulTo(out, dep, own)
}

// combinationRules is declared per consumer kind: consumer -> dependency -> rule.
// Dependencies without an entry are ignored by that consumer.
var combinationRules = map[Kind]map[Kind]Combinator{
	KindSales: {
		KindStockOut:     Multiply,
		KindTrend:        Multiply,
		KindChangePoints: Multiply,
		KindSeasonality:  Multiply,
		KindPromo:        Multiply,
		KindMultiplier:   Multiply,
	},
}

// CombinationRule returns the rule consumer applies to a dependency of kind dep.
func CombinationRule(consumer, dep Kind) (Combinator, bool) {
	rule, ok := combinationRules[consumer][dep]
	return rule, ok
}

// Dependency is an already-applied factor handed to Apply.
type Dependency struct {
	Factor Factor
	Values []float64 // nil if the factor has not been applied
}

// Apply runs the application protocol for f:
//  1. validate deps (no duplicate instances, all applied, all axis-length);
//  2. build f's own values;
//  3. fold in every dependency, in order, whose kind f declares a rule for.
//
// The returned slice is owned by the caller.
func Apply(f Factor, deps []Dependency, axis DateAxis, rng *rand.Rand) ([]float64, error) {
	n := axis.NumPoints()
	if err := validateDependencies(f, deps, n); err != nil {
		return nil, err
	}

	own, err := f.BuildOwnValues(axis, rng)
	if err != nil {
		return nil, err
	}
	if len(own) != n {
		return nil, configErrorf(ErrShape, f.Name(), "",
			"built %d values for an axis of %d samples", len(own), n)
	}

	for _, dep := range deps {
		if rule, ok := CombinationRule(f.Kind(), dep.Factor.Kind()); ok {
			own = rule(dep.Values, own)
		}
	}
	return own, nil
}

func validateDependencies(f Factor, deps []Dependency, n int) error {
	seen := make(map[Factor]bool, len(deps))
	for _, dep := range deps {
		if dep.Factor == nil {
			return configErrorf(ErrNotApplied, f.Name(), "", "nil dependency")
		}
		if seen[dep.Factor] {
			return configErrorf(ErrDuplicate, f.Name(), "",
				"dependency %q listed more than once", dep.Factor.Name())
		}
		seen[dep.Factor] = true
		if dep.Factor == f {
			return configErrorf(ErrForwardReference, f.Name(), "", "factor depends on itself")
		}
		if dep.Values == nil {
			return configErrorf(ErrNotApplied, f.Name(), "",
				"dependency %q has not been applied", dep.Factor.Name())
		}
		if len(dep.Values) != n {
			return configErrorf(ErrShape, f.Name(), "",
				"dependency %q has %d values, axis has %d", dep.Factor.Name(), len(dep.Values), n)
		}
	}
	return nil
}

// repeat returns n copies of v.
func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
