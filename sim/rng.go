package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Stream name helpers ===

// sourceStream returns the RNG subsystem name for source i's arrival stream.
func sourceStream(id int) string {
	return fmt.Sprintf("source:%d", id)
}

// serverStream returns the RNG subsystem name for server j's service stream.
func serverStream(id int) string {
	return fmt.Sprintf("server:%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per stream
// name, so that adding or removing one Source or Server perturbs only its
// own stream (testable property 6 in spec.md).
//
// Derivation formula: masterSeed XOR fnv1a64(streamName). Every stream is
// derived the same way; there is no backward-compatible "direct seed"
// special case, since this kernel has no legacy callers to preserve.
//
// Thread-safety: NOT thread-safe. Each Kernel owns exactly one
// PartitionedRNG and is used from a single goroutine.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:     key,
		streams: make(map[string]*rand.Rand),
	}
}

// ForStream returns a deterministically-seeded RNG for the named stream.
// The same stream name always returns the same *rand.Rand instance
// (cached). Never returns nil.
func (p *PartitionedRNG) ForStream(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	derivedSeed := int64(p.key) ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(derivedSeed))
	p.streams[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
