package demand

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// === SeedKey ===

// SeedKey uniquely identifies a reproducible generation run.
// Two runs with the same SeedKey and identical configuration
// MUST produce bit-for-bit identical series.
type SeedKey int64

// NewSeedKey creates a SeedKey from a seed value.
func NewSeedKey(seed int64) SeedKey {
	return SeedKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemDataset is the stream for group template selection.
	// Uses the master seed directly so that a bare seed reproduces a dataset.
	SubsystemDataset = "dataset"

	// SubsystemRow is the stream used for one-off rows built outside a RowSet.
	SubsystemRow = "row"
)

// SubsystemGroup returns the subsystem name for the rows of group N.
func SubsystemGroup(id int) string {
	return fmt.Sprintf("group_%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated random streams per subsystem.
//
// Derivation formula:
//   - For SubsystemDataset: PCG(masterSeed, masterSeed)
//   - For all other subsystems: PCG(masterSeed ^ fnv1a64(name), masterSeed)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SeedKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SeedKey.
func NewPartitionedRNG(key SeedKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded stream for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	seq := uint64(p.key)
	var state uint64
	if name == SubsystemDataset {
		state = uint64(p.key)
	} else {
		state = uint64(int64(p.key) ^ fnv1a64(name))
	}

	rng := NewRand(state, seq)
	p.subsystems[name] = rng
	return rng
}

// Key returns the SeedKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SeedKey {
	return p.key
}

// NewRand returns a PCG-backed *rand.Rand. The result also satisfies
// rand.Source, so it can feed gonum distuv distributions directly.
func NewRand(state, seq uint64) *rand.Rand {
	return rand.New(rand.NewPCG(state, seq))
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
