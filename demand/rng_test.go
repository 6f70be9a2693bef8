package demand

import (
	"math"
	"testing"
)

// === SeedKey Tests ===

func TestSeedKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSeedKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSeedKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	rng1 := NewPartitionedRNG(NewSeedKey(42))
	rng2 := NewPartitionedRNG(NewSeedKey(42))

	for i := 0; i < 5; i++ {
		a := rng1.ForSubsystem(SubsystemDataset).Float64()
		b := rng2.ForSubsystem(SubsystemDataset).Float64()
		if a != b {
			t.Errorf("value %d: got %v and %v, want identical", i, a, b)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	rngA := NewPartitionedRNG(NewSeedKey(42))
	rngB := NewPartitionedRNG(NewSeedKey(42))

	// Draining A's dataset stream must not move A's row stream.
	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemDataset).Float64()
	}
	for i := 0; i < 5; i++ {
		rngB.ForSubsystem(SubsystemRow).Float64()
	}

	aRowFirst := rngA.ForSubsystem(SubsystemRow).Float64()
	bRowSixth := rngB.ForSubsystem(SubsystemRow).Float64()

	expectedFirst := NewPartitionedRNG(NewSeedKey(42)).ForSubsystem(SubsystemRow).Float64()
	if aRowFirst != expectedFirst {
		t.Errorf("A's row first value = %v, want %v (isolation broken)", aRowFirst, expectedFirst)
	}
	if bRowSixth == expectedFirst {
		t.Error("B's 6th row value equals 1st value - unexpected")
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	rng := NewPartitionedRNG(NewSeedKey(42))
	if rng.ForSubsystem(SubsystemDataset) != rng.ForSubsystem(SubsystemDataset) {
		t.Error("ForSubsystem returned different instances for the same name")
	}
	if rng.ForSubsystem(SubsystemGroup(0)) == rng.ForSubsystem(SubsystemGroup(1)) {
		t.Error("different group subsystems share one instance")
	}
}

func TestPartitionedRNG_DifferentSeedsDiffer(t *testing.T) {
	a := NewPartitionedRNG(NewSeedKey(1)).ForSubsystem(SubsystemDataset).Uint64()
	b := NewPartitionedRNG(NewSeedKey(2)).ForSubsystem(SubsystemDataset).Uint64()
	if a == b {
		t.Errorf("seeds 1 and 2 produced the same first draw %d", a)
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	if got := NewPartitionedRNG(NewSeedKey(7)).Key(); got != 7 {
		t.Errorf("Key() = %d, want 7", got)
	}
}

func TestSubsystemGroup_Format(t *testing.T) {
	if got := SubsystemGroup(3); got != "group_3" {
		t.Errorf("SubsystemGroup(3) = %q, want group_3", got)
	}
}
