package dataset

import "math"

// Default dataset shape.
const (
	DefaultNumGroups    = 3
	DefaultRowsPerGroup = 5
)

// DefaultAxisSpec is one year of weekly samples starting 2022-01-01.
func DefaultAxisSpec() AxisSpec {
	return AxisSpec{Start: "2022-01-01", End: "2023-01-01", Frequency: "weekly"}
}

// DefaultFactorConfigs returns the stock template set: seasonality, trend,
// promo and noise with their selection weights.
func DefaultFactorConfigs() []FactorConfig {
	return []FactorConfig{
		{
			Kind:   "seasonality",
			Weight: 0.4,
			Params: []ParamSpec{
				choices("peaks", List("july"), List("december"), List("saturday"), List("july", "december")),
				floatRange("amplitude", 0.1, 0.5),
				floatRange("phase_shift", 0, 2*math.Pi),
			},
		},
		{
			Kind:   "trend",
			Weight: 0.3,
			Params: []ParamSpec{
				choices("descend", Bool(true), Bool(false)),
				floatRange("delta", 0.1, 0.8),
			},
		},
		{
			Kind:   "promo",
			Weight: 0.2,
			Params: []ParamSpec{
				floatRange("promo_value", 1.5, 3.0),
				{Name: "num_random_promos", Range: []float64{2, 6}, Integer: true},
			},
		},
		{
			Kind:   "noise",
			Weight: 0.1,
			Params: []ParamSpec{
				floatRange("noise_level", 0.05, 0.2),
				choices("noise_type", Text("normal"), Text("uniform")),
			},
		},
	}
}

// DefaultDatasetSpec is the spec used when no file is given. The seed is
// left unset.
func DefaultDatasetSpec() DatasetSpec {
	return DatasetSpec{
		NumGroups:    DefaultNumGroups,
		RowsPerGroup: DefaultRowsPerGroup,
		Axis:         DefaultAxisSpec(),
		Factors:      DefaultFactorConfigs(),
	}
}

func floatRange(name string, lo, hi float64) ParamSpec {
	return ParamSpec{Name: name, Range: []float64{lo, hi}}
}

func choices(name string, values ...ParamValue) ParamSpec {
	return ParamSpec{Name: name, Choices: values}
}
