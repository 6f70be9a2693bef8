// Package dataset samples grouped collections of demand Rows from weighted
// factor templates. A DatasetSpec is loaded from YAML (or built from
// DefaultDatasetSpec), turned into a RowSet, and generated deterministically
// from its seed.
package dataset

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rvtsukanov/fakedemand/demand"
)

// DatasetSpec is the top-level dataset configuration.
// Loaded from YAML via LoadDatasetSpec(path).
type DatasetSpec struct {
	NumGroups    int            `yaml:"num_groups"`
	RowsPerGroup int            `yaml:"rows_per_group"`
	Seed         *int64         `yaml:"seed,omitempty"` // nil = derive from the clock
	Axis         AxisSpec       `yaml:"axis"`
	Factors      []FactorConfig `yaml:"factors,omitempty"` // nil = DefaultFactorConfigs()
}

// AxisSpec is the YAML form of a demand.DateAxis. Dates use YYYY-MM-DD.
type AxisSpec struct {
	Start     string `yaml:"start"`
	End       string `yaml:"end"`
	Frequency string `yaml:"frequency"`
}

// FactorConfig is a weighted template for one factor kind.
type FactorConfig struct {
	Kind   demand.Kind `yaml:"kind"`
	Weight float64     `yaml:"weight"` // per-group selection probability
	Params []ParamSpec `yaml:"params,omitempty"`
}

// ParamSpec describes how one constructor parameter is drawn for a group.
// Exactly one of Range, Choices or Value is set.
type ParamSpec struct {
	Name    string       `yaml:"name"`
	Range   []float64    `yaml:"range,omitempty,flow"` // [lo, hi], sampled uniformly
	Integer bool         `yaml:"integer,omitempty"`    // round range samples
	Choices []ParamValue `yaml:"choices,omitempty"`    // one picked uniformly
	Value   *ParamValue  `yaml:"value,omitempty"`      // fixed, no draw
}

// LoadDatasetSpec reads and parses a YAML dataset specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadDatasetSpec(path string) (*DatasetSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset spec: %w", err)
	}
	return ParseDatasetSpec(data)
}

// ParseDatasetSpec strictly decodes a YAML dataset specification.
func ParseDatasetSpec(data []byte) (*DatasetSpec, error) {
	var spec DatasetSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing dataset spec: %w", err)
	}
	return &spec, nil
}

// WithDefaults returns a copy with the default axis and templates filled in
// where the spec leaves them empty.
func (s DatasetSpec) WithDefaults() DatasetSpec {
	def := DefaultAxisSpec()
	if s.Axis.Start == "" {
		s.Axis.Start = def.Start
	}
	if s.Axis.End == "" {
		s.Axis.End = def.End
	}
	if s.Axis.Frequency == "" {
		s.Axis.Frequency = def.Frequency
	}
	if s.Factors == nil {
		s.Factors = DefaultFactorConfigs()
	}
	return s
}

// Validate checks counts, the axis and every factor template.
func (s *DatasetSpec) Validate() error {
	if s.NumGroups < 1 {
		return demand.NewConfigError(demand.ErrOutOfRange, "dataset", "num_groups",
			"must be at least 1, got %d", s.NumGroups)
	}
	if s.RowsPerGroup < 1 {
		return demand.NewConfigError(demand.ErrOutOfRange, "dataset", "rows_per_group",
			"must be at least 1, got %d", s.RowsPerGroup)
	}
	if _, err := s.Axis.DateAxis(); err != nil {
		return err
	}
	kinds := make(map[demand.Kind]int, len(s.Factors))
	for i := range s.Factors {
		if err := s.Factors[i].Validate(); err != nil {
			return fmt.Errorf("factors[%d]: %w", i, err)
		}
		if j, ok := kinds[s.Factors[i].Kind]; ok {
			return demand.NewConfigError(demand.ErrDuplicate, string(s.Factors[i].Kind), "",
				"template kind used by factors[%d] and factors[%d]", j, i)
		}
		kinds[s.Factors[i].Kind] = i
	}
	return nil
}

// DateAxis parses the axis into a validated demand.DateAxis.
func (a AxisSpec) DateAxis() (demand.DateAxis, error) {
	start, err := parseDate("start", a.Start)
	if err != nil {
		return demand.DateAxis{}, err
	}
	end, err := parseDate("end", a.End)
	if err != nil {
		return demand.DateAxis{}, err
	}
	freq, err := demand.ParseSamplingFrequency(a.Frequency)
	if err != nil {
		return demand.DateAxis{}, err
	}
	return demand.NewDateAxis(start, end, freq)
}

// AxisSpecOf renders a demand.DateAxis back into its YAML form.
func AxisSpecOf(a demand.DateAxis) AxisSpec {
	return AxisSpec{
		Start:     a.Start.Format(time.DateOnly),
		End:       a.End.Format(time.DateOnly),
		Frequency: string(a.Frequency),
	}
}

func parseDate(param, s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &demand.ConfigError{
			Factor: "axis", Param: param,
			Msg: fmt.Sprintf("invalid date %q, want YYYY-MM-DD", s),
			Err: fmt.Errorf("%w: %w", demand.ErrParamType, err),
		}
	}
	return t, nil
}

// Validate checks the kind, the weight and every parameter spec.
// Sales is not a template kind: every row gets one appended.
func (c *FactorConfig) Validate() error {
	if !demand.IsValidKind(c.Kind) || c.Kind == demand.KindSales {
		return demand.NewConfigError(demand.ErrUnknownOption, string(c.Kind), "kind",
			"unknown template kind %q; valid: trend, changepoints, seasonality, oos, constant, multiplier, promo, noise", c.Kind)
	}
	if !(c.Weight >= 0 && c.Weight <= 1) {
		return demand.NewConfigError(demand.ErrOutOfRange, string(c.Kind), "weight",
			"must be in [0, 1], got %v", c.Weight)
	}
	seen := make(map[string]bool, len(c.Params))
	for i := range c.Params {
		p := &c.Params[i]
		if seen[p.Name] {
			return demand.NewConfigError(demand.ErrDuplicate, string(c.Kind), p.Name, "parameter listed twice")
		}
		seen[p.Name] = true
		if err := p.Validate(string(c.Kind)); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that exactly one of range, choices or value is set.
func (p *ParamSpec) Validate(factor string) error {
	if p.Name == "" {
		return demand.NewConfigError(demand.ErrParamType, factor, "", "parameter without a name")
	}
	set := 0
	if p.Range != nil {
		set++
	}
	if p.Choices != nil {
		set++
	}
	if p.Value != nil {
		set++
	}
	if set != 1 {
		return demand.NewConfigError(demand.ErrParamType, factor, p.Name,
			"exactly one of range, choices or value is required, got %d", set)
	}
	switch {
	case p.Range != nil:
		if len(p.Range) != 2 {
			return demand.NewConfigError(demand.ErrParamType, factor, p.Name,
				"range needs [lo, hi], got %d values", len(p.Range))
		}
		lo, hi := p.Range[0], p.Range[1]
		if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) || lo > hi {
			return demand.NewConfigError(demand.ErrOutOfRange, factor, p.Name,
				"range [%v, %v] must be finite with lo <= hi", lo, hi)
		}
	case p.Choices != nil:
		if len(p.Choices) == 0 {
			return demand.NewConfigError(demand.ErrParamType, factor, p.Name, "choices must not be empty")
		}
	}
	if p.Integer && p.Range == nil {
		return demand.NewConfigError(demand.ErrParamType, factor, p.Name, "integer applies to ranges only")
	}
	return nil
}

// === ParamValue ===

// ValueKind tags the concrete type held by a ParamValue.
type ValueKind int

const (
	NumberValue ValueKind = iota
	IntegerValue
	BoolValue
	StringValue
	StringListValue
)

// ParamValue is one scalar or string-list parameter value.
type ParamValue struct {
	kind ValueKind
	num  float64
	flag bool
	text string
	list []string
}

func Number(v float64) ParamValue { return ParamValue{kind: NumberValue, num: v} }
func Integer(v int) ParamValue    { return ParamValue{kind: IntegerValue, num: float64(v)} }
func Bool(v bool) ParamValue      { return ParamValue{kind: BoolValue, flag: v} }
func Text(v string) ParamValue    { return ParamValue{kind: StringValue, text: v} }
func List(v ...string) ParamValue {
	return ParamValue{kind: StringListValue, list: append([]string{}, v...)}
}

func (v ParamValue) Kind() ValueKind { return v.kind }

// AsFloat returns the numeric value of a number or integer.
func (v ParamValue) AsFloat() (float64, bool) {
	return v.num, v.kind == NumberValue || v.kind == IntegerValue
}

// AsInt returns the value of an integer, or of a number with no fractional part.
func (v ParamValue) AsInt() (int, bool) {
	switch v.kind {
	case IntegerValue:
		return int(v.num), true
	case NumberValue:
		if v.num == math.Trunc(v.num) && !math.IsInf(v.num, 0) {
			return int(v.num), true
		}
	}
	return 0, false
}

func (v ParamValue) AsBool() (bool, bool)   { return v.flag, v.kind == BoolValue }
func (v ParamValue) AsText() (string, bool) { return v.text, v.kind == StringValue }

// AsStrings returns a copy of a string list; a single string is a one-element list.
func (v ParamValue) AsStrings() ([]string, bool) {
	switch v.kind {
	case StringListValue:
		return append([]string{}, v.list...), true
	case StringValue:
		return []string{v.text}, true
	}
	return nil, false
}

func (v ParamValue) String() string {
	switch v.kind {
	case NumberValue:
		return formatFloat(v.num)
	case IntegerValue:
		return strconv.Itoa(int(v.num))
	case BoolValue:
		return strconv.FormatBool(v.flag)
	case StringValue:
		return v.text
	default:
		return "[" + strings.Join(v.list, ", ") + "]"
	}
}

// UnmarshalYAML decodes a scalar by its resolved tag, or a sequence of strings.
func (v *ParamValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!int":
			var n int
			if err := node.Decode(&n); err != nil {
				return err
			}
			*v = Integer(n)
		case "!!float":
			var f float64
			if err := node.Decode(&f); err != nil {
				return err
			}
			*v = Number(f)
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return err
			}
			*v = Bool(b)
		case "!!str":
			*v = Text(node.Value)
		default:
			return fmt.Errorf("line %d: unsupported parameter value %q (%s)", node.Line, node.Value, node.ShortTag())
		}
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("line %d: parameter lists must hold strings: %w", node.Line, err)
		}
		*v = List(items...)
	default:
		return fmt.Errorf("line %d: parameter value must be a scalar or a list of strings", node.Line)
	}
	return nil
}

// MarshalYAML keeps numbers distinguishable from integers on re-load.
func (v ParamValue) MarshalYAML() (interface{}, error) {
	switch v.kind {
	case NumberValue:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(v.num)}, nil
	case IntegerValue:
		return int(v.num), nil
	case BoolValue:
		return v.flag, nil
	case StringValue:
		return v.text, nil
	default:
		return &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle, Content: stringNodes(v.list)}, nil
	}
}

func stringNodes(items []string) []*yaml.Node {
	nodes := make([]*yaml.Node, len(items))
	for i, s := range items {
		nodes[i] = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	}
	return nodes
}

// formatFloat always carries a decimal point or exponent.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
