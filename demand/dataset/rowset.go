package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rvtsukanov/fakedemand/demand"
)

// Sampling constants for group rows.
const (
	jitterFraction = 0.1 // numeric params vary by ±10% of |value|
	shuffleProb    = 0.3 // chance of shuffling a string-list param
	minSalesLevel  = 50.0
	maxSalesLevel  = 200.0
)

// GroupFactor is one selected template with its sampled base parameters.
type GroupFactor struct {
	Kind   demand.Kind
	Params Params
}

// GroupConfig records the base configuration shared by a group's rows.
type GroupConfig struct {
	ID      int
	Factors []GroupFactor
}

func (g GroupConfig) String() string {
	parts := make([]string, len(g.Factors))
	for i, f := range g.Factors {
		parts[i] = fmt.Sprintf("%s{%s}", f.Kind, f.Params)
	}
	return strings.Join(parts, "; ")
}

// Statistics summarizes a RowSet. TotalRows, NumGroups and RowsPerGroup
// describe the configured shape and are set before generation; the other
// fields stay empty until GenerateGroups succeeds.
type Statistics struct {
	TotalRows    int                 `yaml:"total_rows"`
	NumGroups    int                 `yaml:"num_groups"`
	RowsPerGroup int                 `yaml:"rows_per_group"`
	GroupSizes   map[int]int         `yaml:"group_sizes"`
	FactorUsage  map[demand.Kind]int `yaml:"factor_usage"` // groups selecting each kind
	SalesMean    float64             `yaml:"sales_mean"`
	SalesStdDev  float64             `yaml:"sales_std_dev"`
}

// GroupSummary is one line of RowSet.Summary.
type GroupSummary struct {
	GroupID int    `yaml:"group_id"`
	NumRows int    `yaml:"num_rows"`
	Factors string `yaml:"factors"`
}

// RowSet is a dataset of Rows organized into groups whose rows share a
// sampled factor configuration with small per-row variations.
type RowSet struct {
	numGroups    int
	rowsPerGroup int
	seed         int64
	axis         demand.DateAxis
	templates    []FactorConfig

	groups  [][]*demand.Row
	configs []GroupConfig
}

// NewRowSet validates spec (after filling defaults) and prepares a RowSet.
// Without a seed one is taken from the clock; Seed() reports it.
func NewRowSet(spec DatasetSpec) (*RowSet, error) {
	spec = spec.WithDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	axis, err := spec.Axis.DateAxis()
	if err != nil {
		return nil, err
	}
	seed := time.Now().UnixNano()
	if spec.Seed != nil {
		seed = *spec.Seed
	} else {
		logrus.Infof("no seed given, using %d", seed)
	}
	return &RowSet{
		numGroups:    spec.NumGroups,
		rowsPerGroup: spec.RowsPerGroup,
		seed:         seed,
		axis:         axis,
		templates:    append([]FactorConfig(nil), spec.Factors...),
	}, nil
}

// Seed returns the seed that drives GenerateGroups.
func (rs *RowSet) Seed() int64 { return rs.seed }

// Axis returns the date axis shared by every row.
func (rs *RowSet) Axis() demand.DateAxis { return rs.axis }

// FactorConfigs returns the template list.
func (rs *RowSet) FactorConfigs() []FactorConfig {
	return append([]FactorConfig(nil), rs.templates...)
}

// AddFactorConfig appends a validated template. Kinds must stay unique.
func (rs *RowSet) AddFactorConfig(cfg FactorConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	for _, t := range rs.templates {
		if t.Kind == cfg.Kind {
			return demand.NewConfigError(demand.ErrDuplicate, string(cfg.Kind), "", "template kind already registered")
		}
	}
	rs.templates = append(rs.templates, cfg)
	return nil
}

// GenerateGroups samples every group and builds its rows. Template selection
// draws from the dataset stream; each group's rows draw from their own group
// stream. Streams are re-derived from the seed on every call, so repeated
// calls reproduce the same dataset. Previous results are replaced only on
// success.
func (rs *RowSet) GenerateGroups() error {
	streams := demand.NewPartitionedRNG(demand.NewSeedKey(rs.seed))
	rng := streams.ForSubsystem(demand.SubsystemDataset)

	groups := make([][]*demand.Row, rs.numGroups)
	configs := make([]GroupConfig, rs.numGroups)
	for gid := 0; gid < rs.numGroups; gid++ {
		cfg := rs.sampleGroupConfig(gid, rng)
		logrus.Debugf("group %d: %s", gid, cfg)

		groupRNG := streams.ForSubsystem(demand.SubsystemGroup(gid))
		rows := make([]*demand.Row, 0, rs.rowsPerGroup)
		for i := 0; i < rs.rowsPerGroup; i++ {
			row, err := rs.buildRow(gid*rs.rowsPerGroup+i, cfg, groupRNG)
			if err != nil {
				return fmt.Errorf("group %d row %d: %w", gid, i, err)
			}
			rows = append(rows, row)
		}
		groups[gid] = rows
		configs[gid] = cfg
	}
	rs.groups, rs.configs = groups, configs
	return nil
}

// sampleGroupConfig selects templates by weight, then samples their params.
func (rs *RowSet) sampleGroupConfig(gid int, rng *rand.Rand) GroupConfig {
	var selected []int
	for i, t := range rs.templates {
		if rng.Float64() < t.Weight {
			selected = append(selected, i)
		}
	}
	if len(selected) == 0 && len(rs.templates) > 0 {
		fallback := rs.fallbackTemplate()
		logrus.Debugf("group %d selected no factors, forcing %s", gid, rs.templates[fallback].Kind)
		selected = append(selected, fallback)
	}

	cfg := GroupConfig{ID: gid, Factors: make([]GroupFactor, 0, len(selected))}
	for _, i := range selected {
		t := rs.templates[i]
		params := make(Params, 0, len(t.Params))
		for _, p := range t.Params {
			params = append(params, Param{Name: p.Name, Value: p.sample(rng)})
		}
		cfg.Factors = append(cfg.Factors, GroupFactor{Kind: t.Kind, Params: params})
	}
	return cfg
}

// fallbackTemplate is the first seasonality template, else the first one.
func (rs *RowSet) fallbackTemplate() int {
	for i, t := range rs.templates {
		if t.Kind == demand.KindSeasonality {
			return i
		}
	}
	return 0
}

// buildRow jitters the group's params, builds its factors and appends Sales.
func (rs *RowSet) buildRow(id int, cfg GroupConfig, rng *rand.Rand) (*demand.Row, error) {
	factors := make([]demand.Factor, 0, len(cfg.Factors)+1)
	for _, gf := range cfg.Factors {
		f, err := NewFactor(gf.Kind, jitter(gf.Params, rng))
		if err != nil {
			if !demand.IsConfigError(err) {
				return nil, err
			}
			logrus.Warnf("row %d: %s with varied params rejected (%v), using group params", id, gf.Kind, err)
			f, err = NewFactor(gf.Kind, gf.Params)
			if err != nil {
				if !demand.IsConfigError(err) {
					return nil, err
				}
				logrus.Warnf("row %d: could not create %s factor: %v", id, gf.Kind, err)
				continue
			}
		}
		factors = append(factors, f)
	}

	level := distuv.Uniform{Min: minSalesLevel, Max: maxSalesLevel, Src: rng}.Rand()
	sales, err := demand.NewSales(level, 0)
	if err != nil {
		return nil, err
	}
	factors = append(factors, sales)
	return demand.NewRow(id, rs.axis, factors, rng)
}

// sample draws one value: range -> uniform (rounded if integer),
// choices -> uniform index, value -> no draw.
func (p ParamSpec) sample(rng *rand.Rand) ParamValue {
	switch {
	case p.Range != nil:
		v := distuv.Uniform{Min: p.Range[0], Max: p.Range[1], Src: rng}.Rand()
		if p.Integer {
			return Integer(int(math.RoundToEven(v)))
		}
		return Number(v)
	case p.Choices != nil:
		return copyValue(p.Choices[rng.IntN(len(p.Choices))])
	default:
		return copyValue(*p.Value)
	}
}

// jitter returns a varied copy of params: numbers move by up to ±10% of
// their magnitude, integers are re-rounded, string lists are shuffled with
// probability 0.3. Strings and booleans are kept.
func jitter(params Params, rng *rand.Rand) Params {
	out := make(Params, len(params))
	for i, p := range params {
		v := copyValue(p.Value)
		switch v.kind {
		case NumberValue, IntegerValue:
			spread := math.Abs(v.num) * jitterFraction
			varied := distuv.Uniform{Min: v.num - spread, Max: v.num + spread, Src: rng}.Rand()
			if v.kind == IntegerValue {
				v = Integer(int(math.RoundToEven(varied)))
			} else {
				v = Number(varied)
			}
		case StringListValue:
			if rng.Float64() < shuffleProb {
				rng.Shuffle(len(v.list), func(a, b int) { v.list[a], v.list[b] = v.list[b], v.list[a] })
			}
		}
		out[i] = Param{Name: p.Name, Value: v}
	}
	return out
}

func copyValue(v ParamValue) ParamValue {
	if v.list != nil {
		v.list = append([]string{}, v.list...)
	}
	return v
}

// NumGroups returns the configured group count.
func (rs *RowSet) NumGroups() int { return rs.numGroups }

// RowsPerGroup returns the configured rows per group.
func (rs *RowSet) RowsPerGroup() int { return rs.rowsPerGroup }

// Groups returns the generated rows grouped by group id.
func (rs *RowSet) Groups() [][]*demand.Row {
	out := make([][]*demand.Row, len(rs.groups))
	for i, g := range rs.groups {
		out[i] = append([]*demand.Row(nil), g...)
	}
	return out
}

// GroupRows returns the rows of group id, or nil for an unknown id.
func (rs *RowSet) GroupRows(id int) []*demand.Row {
	if id < 0 || id >= len(rs.groups) {
		return nil
	}
	return append([]*demand.Row(nil), rs.groups[id]...)
}

// GroupConfig returns the base configuration of group id.
func (rs *RowSet) GroupConfig(id int) (GroupConfig, bool) {
	if id < 0 || id >= len(rs.configs) {
		return GroupConfig{}, false
	}
	return rs.configs[id], true
}

// AllRows returns every row, group by group.
func (rs *RowSet) AllRows() []*demand.Row {
	var rows []*demand.Row
	for _, g := range rs.groups {
		rows = append(rows, g...)
	}
	return rows
}

// Statistics reports dataset shape, factor usage and sales moments.
func (rs *RowSet) Statistics() Statistics {
	s := Statistics{
		TotalRows:    rs.numGroups * rs.rowsPerGroup,
		NumGroups:    rs.numGroups,
		RowsPerGroup: rs.rowsPerGroup,
		GroupSizes:   make(map[int]int, len(rs.groups)),
		FactorUsage:  make(map[demand.Kind]int),
	}
	for gid, g := range rs.groups {
		s.GroupSizes[gid] = len(g)
	}
	for _, cfg := range rs.configs {
		for _, f := range cfg.Factors {
			s.FactorUsage[f.Kind]++
		}
	}

	var sales []float64
	for _, row := range rs.AllRows() {
		if v, ok := row.Values(string(demand.KindSales)); ok {
			sales = append(sales, v...)
		}
	}
	if len(sales) > 1 {
		s.SalesMean, s.SalesStdDev = stat.MeanStdDev(sales, nil)
	}
	return s
}

// Summary lists every group with its row count and factor configuration.
func (rs *RowSet) Summary() []GroupSummary {
	out := make([]GroupSummary, len(rs.configs))
	for i, cfg := range rs.configs {
		out[i] = GroupSummary{GroupID: cfg.ID, NumRows: len(rs.groups[i]), Factors: cfg.String()}
	}
	return out
}

// ErrNotGenerated is returned by collaborators that need generated rows.
var ErrNotGenerated = errors.New("dataset: GenerateGroups has not been called")

// Generated returns ErrNotGenerated until GenerateGroups has succeeded.
func (rs *RowSet) Generated() error {
	if rs.groups == nil {
		return ErrNotGenerated
	}
	return nil
}
