package sim

import (
	"math"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
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
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// BDD: Same key+name produces same sequence
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	vals1 := make([]float64, 3)
	vals2 := make([]float64, 3)

	for i := 0; i < 3; i++ {
		vals1[i] = rng1.ForStream(sourceStream(0)).Float64()
	}
	for i := 0; i < 3; i++ {
		vals2[i] = rng2.ForStream(sourceStream(0)).Float64()
	}

	for i := 0; i < 3; i++ {
		if vals1[i] != vals2[i] {
			t.Errorf("Value %d: got %v and %v, want identical", i, vals1[i], vals2[i])
		}
	}
}

func TestPartitionedRNG_StreamIsolation(t *testing.T) {
	// BDD: Drawing from source 0's stream doesn't affect source 1's
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	rngB := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 10; i++ {
		rngA.ForStream(sourceStream(0)).Float64()
	}
	for i := 0; i < 5; i++ {
		rngB.ForStream(sourceStream(1)).Float64()
	}

	aSource1First := rngA.ForStream(sourceStream(1)).Float64()
	bSource1Sixth := rngB.ForStream(sourceStream(1)).Float64()

	fresh := NewPartitionedRNG(NewSimulationKey(42))
	expectedFirst := fresh.ForStream(sourceStream(1)).Float64()

	if aSource1First != expectedFirst {
		t.Errorf("A's source-1 first value = %v, want %v (isolation broken)", aSource1First, expectedFirst)
	}
	if bSource1Sixth == expectedFirst {
		t.Error("B's 6th source-1 value equals 1st value - unexpected")
	}
}

// TestPartitionedRNG_AddingSourceDoesNotPerturbOthers exercises testable
// property 6: the presence of an unrelated source id must not alter
// another source's derived stream.
func TestPartitionedRNG_AddingSourceDoesNotPerturbOthers(t *testing.T) {
	base := NewPartitionedRNG(NewSimulationKey(7))
	want0 := base.ForStream(sourceStream(0)).Float64()

	withExtra := NewPartitionedRNG(NewSimulationKey(7))
	_ = withExtra.ForStream(sourceStream(5)) // simulate an extra source existing
	got0 := withExtra.ForStream(sourceStream(0)).Float64()

	if want0 != got0 {
		t.Errorf("source 0 stream perturbed by presence of source 5: got %v, want %v", got0, want0)
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	rng1 := rng.ForStream(sourceStream(0))
	rng2 := rng.ForStream(sourceStream(0))

	if rng1 != rng2 {
		t.Error("ForStream returned different instances for same name")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	if rng.Key() != SimulationKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestPartitionedRNG_ZeroSeed(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(0))

	s0 := rng.ForStream(sourceStream(0))
	s1 := rng.ForStream(sourceStream(1))

	if s0 == nil || s1 == nil {
		t.Error("ForStream returned nil with zero seed")
	}
	if s0.Float64() == s1.Float64() {
		t.Error("distinct streams from zero seed unexpectedly produced the same first value")
	}
}

func TestPartitionedRNG_LazyInitialization(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if len(rng.streams) != 0 {
		t.Errorf("New PartitionedRNG has %d streams, want 0", len(rng.streams))
	}

	rng.ForStream(sourceStream(0))

	if len(rng.streams) != 1 {
		t.Errorf("After one ForStream call, have %d streams, want 1", len(rng.streams))
	}
}

// === fnv1a64 / stream-name Tests ===

func TestFnv1a64_Deterministic(t *testing.T) {
	input := "source:3"
	hash1 := fnv1a64(input)
	hash2 := fnv1a64(input)

	if hash1 != hash2 {
		t.Errorf("fnv1a64(%q) not deterministic: %v != %v", input, hash1, hash2)
	}
}

func TestFnv1a64_Collision(t *testing.T) {
	names := []string{
		sourceStream(0), sourceStream(1), sourceStream(100),
		serverStream(0), serverStream(1), serverStream(100),
	}

	hashes := make(map[int64]string)
	for _, name := range names {
		h := fnv1a64(name)
		if existing, ok := hashes[h]; ok {
			t.Errorf("Hash collision: %q and %q both hash to %d", name, existing, h)
		}
		hashes[h] = name
	}
}

func TestSourceServerStream_Disjoint(t *testing.T) {
	// A source and a server with the same numeric id must not collide.
	if sourceStream(3) == serverStream(3) {
		t.Error("sourceStream and serverStream produced identical names for the same id")
	}
}

// === Benchmark ===

func BenchmarkPartitionedRNG_ForStream_CacheHit(b *testing.B) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	rng.ForStream(sourceStream(0))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rng.ForStream(sourceStream(0))
	}
}
