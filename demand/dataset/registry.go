package dataset

import (
	"strings"

	"github.com/rvtsukanov/fakedemand/demand"
)

// Param is one named constructor argument.
type Param struct {
	Name  string
	Value ParamValue
}

// Params is an ordered parameter list; order is the sampling and jitter order.
type Params []Param

// Get returns the value of the parameter named name.
func (p Params) Get(name string) (ParamValue, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return ParamValue{}, false
}

func (p Params) String() string {
	parts := make([]string, len(p))
	for i, param := range p {
		parts[i] = param.Name + "=" + param.Value.String()
	}
	return strings.Join(parts, " ")
}

// NewFactor builds a factor of kind from named parameters.
// Missing optional parameters take their defaults; unknown names, mistyped
// values and missing required parameters fail with demand.ErrParamType.
func NewFactor(kind demand.Kind, params Params) (demand.Factor, error) {
	r := &paramReader{factor: string(kind), params: params, used: make(map[string]bool, len(params))}
	var (
		f   demand.Factor
		err error
	)
	switch kind {
	case demand.KindTrend:
		direction := demand.Descending
		if _, ok := params.Get("direction"); ok {
			if _, both := params.Get("descend"); both {
				return nil, demand.NewConfigError(demand.ErrParamType, r.factor, "direction",
					"descend and direction are mutually exclusive")
			}
			direction = demand.TrendDirection(strings.ToLower(r.text("direction", string(demand.Descending))))
		} else if !r.boolean("descend", true) {
			direction = demand.Ascending
		}
		delta := r.float("delta", 0.5)
		if r.err == nil {
			f, err = demand.NewTrend(direction, delta)
		}

	case demand.KindChangePoints:
		k := r.integer("num_change_points", 3)
		lo := r.float("min_level", 0.5)
		hi := r.float("max_level", 2)
		if r.err == nil {
			f, err = demand.NewChangePoints(k, lo, hi)
		}

	case demand.KindSeasonality:
		peaks := r.strings("peaks", []string{demand.DefaultPeak})
		amplitude := r.float("amplitude", 0.2)
		phase := r.float("phase_shift", 0)
		if r.err == nil {
			f, err = demand.NewSeasonality(peaks, amplitude, phase)
		}

	case demand.KindStockOut:
		p := r.requiredFloat("proba_oos")
		precision := r.integer("precision", 2)
		if r.err == nil {
			f, err = demand.NewStockOut(p, precision)
		}

	case demand.KindConstant:
		v := r.requiredFloat("value")
		if r.err == nil {
			f, err = demand.NewConstant(v)
		}

	case demand.KindMultiplier:
		v := r.requiredFloat("value")
		if r.err == nil {
			f, err = demand.NewMultiplier(v)
		}

	case demand.KindPromo:
		v := r.requiredFloat("promo_value")
		count := r.integer("num_random_promos", 1)
		duration := r.integer("duration", 1)
		if r.err == nil {
			f, err = demand.NewPromo(v, count, duration)
		}

	case demand.KindNoise:
		level := r.float("noise_level", 0.1)
		noiseType := r.text("noise_type", string(demand.NoiseNormal))
		if r.err == nil {
			f, err = demand.NewNoise(level, demand.NoiseType(strings.ToLower(noiseType)))
		}

	case demand.KindSales:
		level := r.float("level", 100)
		scale := r.float("scale", 0)
		if r.err == nil {
			f, err = demand.NewSales(level, scale)
		}

	default:
		return nil, demand.NewConfigError(demand.ErrUnknownOption, string(kind), "kind",
			"unknown factor kind %q", kind)
	}

	if err := r.finish(); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// paramReader pulls typed values out of Params and records the first failure.
type paramReader struct {
	factor string
	params Params
	used   map[string]bool
	err    error
}

func (r *paramReader) lookup(name string) (ParamValue, bool) {
	r.used[name] = true
	return r.params.Get(name)
}

func (r *paramReader) fail(name, format string, args ...any) {
	if r.err == nil {
		r.err = demand.NewConfigError(demand.ErrParamType, r.factor, name, format, args...)
	}
}

func (r *paramReader) float(name string, def float64) float64 {
	v, ok := r.lookup(name)
	if !ok {
		return def
	}
	f, ok := v.AsFloat()
	if !ok {
		r.fail(name, "want a number, got %q", v)
	}
	return f
}

func (r *paramReader) requiredFloat(name string) float64 {
	if _, ok := r.params.Get(name); !ok {
		r.used[name] = true
		r.fail(name, "required parameter missing")
		return 0
	}
	return r.float(name, 0)
}

func (r *paramReader) integer(name string, def int) int {
	v, ok := r.lookup(name)
	if !ok {
		return def
	}
	n, ok := v.AsInt()
	if !ok {
		r.fail(name, "want an integer, got %q", v)
	}
	return n
}

func (r *paramReader) boolean(name string, def bool) bool {
	v, ok := r.lookup(name)
	if !ok {
		return def
	}
	b, ok := v.AsBool()
	if !ok {
		r.fail(name, "want true or false, got %q", v)
	}
	return b
}

func (r *paramReader) text(name, def string) string {
	v, ok := r.lookup(name)
	if !ok {
		return def
	}
	s, ok := v.AsText()
	if !ok {
		r.fail(name, "want a string, got %q", v)
	}
	return s
}

func (r *paramReader) strings(name string, def []string) []string {
	v, ok := r.lookup(name)
	if !ok {
		return def
	}
	list, ok := v.AsStrings()
	if !ok {
		r.fail(name, "want a list of strings, got %q", v)
	}
	return list
}

// finish reports the first read failure, then any parameter nobody read.
func (r *paramReader) finish() error {
	if r.err != nil {
		return r.err
	}
	for _, p := range r.params {
		if !r.used[p.Name] {
			return demand.NewConfigError(demand.ErrParamType, r.factor, p.Name, "unknown parameter")
		}
	}
	return nil
}
