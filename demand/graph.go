package demand

// Graph is an arena of factors with index-based dependency edges.
// Every edge points from a consumer to a strictly earlier node, so list
// order is a valid evaluation order and cycles cannot be expressed.
type Graph struct {
	factors []Factor
	deps    [][]int
}

// NewGraph creates an edgeless graph over factors.
// Rejects nil factors, the same instance listed twice and duplicate names.
func NewGraph(factors ...Factor) (*Graph, error) {
	seen := make(map[Factor]bool, len(factors))
	names := make(map[string]int, len(factors))
	for i, f := range factors {
		if f == nil {
			return nil, configErrorf(ErrParamType, "graph", "", "factor at position %d is nil", i)
		}
		if seen[f] {
			return nil, configErrorf(ErrDuplicate, f.Name(), "",
				"factor instance listed twice (position %d)", i)
		}
		seen[f] = true
		if j, ok := names[f.Name()]; ok {
			return nil, configErrorf(ErrDuplicate, f.Name(), "",
				"column name used by positions %d and %d", j, i)
		}
		names[f.Name()] = i
	}
	return &Graph{
		factors: append([]Factor(nil), factors...),
		deps:    make([][]int, len(factors)),
	}, nil
}

// PrefixGraph connects every node to all nodes before it, in order.
func PrefixGraph(factors []Factor) (*Graph, error) {
	g, err := NewGraph(factors...)
	if err != nil {
		return nil, err
	}
	for consumer := range g.factors {
		for dep := 0; dep < consumer; dep++ {
			g.deps[consumer] = append(g.deps[consumer], dep)
		}
	}
	return g, nil
}

// Connect adds an edge consumer -> dependency. The dependency must be
// strictly earlier than the consumer. Repeated edges are accepted here and
// rejected when the row applies the consumer.
func (g *Graph) Connect(consumer, dependency int) error {
	if consumer < 0 || consumer >= len(g.factors) {
		return configErrorf(ErrOutOfRange, "graph", "", "consumer %d out of range [0, %d)", consumer, len(g.factors))
	}
	if dependency < 0 || dependency >= consumer {
		return configErrorf(ErrForwardReference, g.factors[consumer].Name(), "",
			"dependency %d is not strictly before consumer %d", dependency, consumer)
	}
	g.deps[consumer] = append(g.deps[consumer], dependency)
	return nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.factors)
}

// Factor returns the factor at position i.
func (g *Graph) Factor(i int) Factor {
	return g.factors[i]
}

// Dependencies returns the dependency positions of node i in edge order.
func (g *Graph) Dependencies(i int) []int {
	return append([]int(nil), g.deps[i]...)
}
