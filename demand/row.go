package demand

import (
	"math/rand/v2"
	"time"
)

// Column is one named output series of a Row.
type Column struct {
	Name   string
	Values []float64
}

// node holds a factor's applied values; nil means not applied.
type node struct {
	values []float64
}

// Row is one composed time series: a dependency graph of factors sharing a
// date axis and an integer id. Rows own their factors.
type Row struct {
	id    int
	axis  DateAxis
	dates []time.Time
	graph *Graph
	nodes []node
}

// NewRow builds a prefix graph over factors (each factor depends on every
// earlier one) and activates it immediately.
func NewRow(id int, axis DateAxis, factors []Factor, rng *rand.Rand) (*Row, error) {
	g, err := PrefixGraph(factors)
	if err != nil {
		return nil, err
	}
	return NewRowFromGraph(id, axis, g, rng)
}

// NewRowFromGraph activates an explicit dependency graph over axis.
func NewRowFromGraph(id int, axis DateAxis, g *Graph, rng *rand.Rand) (*Row, error) {
	if err := axis.Validate(); err != nil {
		return nil, err
	}
	r := &Row{
		id:    id,
		axis:  axis,
		dates: axis.Dates(),
		graph: g,
		nodes: make([]node, g.Len()),
	}
	if err := r.Activate(rng); err != nil {
		return nil, err
	}
	return r, nil
}

// Activate applies every factor in list order. It fails if any factor
// still holds values from a previous activation; call Reset first.
func (r *Row) Activate(rng *rand.Rand) error {
	for i := range r.nodes {
		if r.nodes[i].values != nil {
			return configErrorf(ErrNotApplied, r.graph.Factor(i).Name(), "",
				"row %d already activated; reset before re-activation", r.id)
		}
	}
	for i := range r.nodes {
		f := r.graph.Factor(i)
		deps := make([]Dependency, 0, len(r.graph.deps[i]))
		for _, j := range r.graph.deps[i] {
			deps = append(deps, Dependency{Factor: r.graph.Factor(j), Values: r.nodes[j].values})
		}
		values, err := Apply(f, deps, r.axis, rng)
		if err != nil {
			r.Reset()
			return err
		}
		r.nodes[i].values = values
	}
	return nil
}

// Reset clears every applied value so the row can be activated again.
func (r *Row) Reset() {
	for i := range r.nodes {
		r.nodes[i].values = nil
	}
}

// ID returns the row identifier.
func (r *Row) ID() int { return r.id }

// Axis returns the shared date axis.
func (r *Row) Axis() DateAxis { return r.axis }

// Dates returns the date index, one entry per sample.
func (r *Row) Dates() []time.Time {
	return append([]time.Time(nil), r.dates...)
}

// Factors returns the factors in list order.
func (r *Row) Factors() []Factor {
	return append([]Factor(nil), r.graph.factors...)
}

// Dependencies returns the factors node pos depends on, in application order.
func (r *Row) Dependencies(pos int) []Factor {
	deps := make([]Factor, 0, len(r.graph.deps[pos]))
	for _, j := range r.graph.deps[pos] {
		deps = append(deps, r.graph.Factor(j))
	}
	return deps
}

// Columns returns one column per factor in list order.
// Columns of an unactivated row have nil values.
func (r *Row) Columns() []Column {
	cols := make([]Column, len(r.nodes))
	for i, n := range r.nodes {
		cols[i] = Column{Name: r.graph.Factor(i).Name(), Values: n.values}
	}
	return cols
}

// Values returns the applied series of the factor named name.
func (r *Row) Values(name string) ([]float64, bool) {
	for i, n := range r.nodes {
		if r.graph.Factor(i).Name() == name {
			return n.values, n.values != nil
		}
	}
	return nil, false
}
