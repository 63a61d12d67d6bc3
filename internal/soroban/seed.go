package soroban

import (
	"math"
	"strings"
)

// Algorithm names the pseudo-random function behind a Stream.
type Algorithm string

const (
	// AlgorithmSplitMix hashes (seed, counter) with the splitmix64 finalizer.
	AlgorithmSplitMix Algorithm = "splitmix"

	// AlgorithmSine reproduces the legacy frac(sin(seed+counter)*10000)
	// formula used by sheets generated before splitmix became the default.
	AlgorithmSine Algorithm = "sine"
)

// DefaultAlgorithm is used when a configuration leaves the algorithm empty.
const DefaultAlgorithm = AlgorithmSplitMix

// ParseAlgorithm normalizes an algorithm name. The empty string selects
// DefaultAlgorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return DefaultAlgorithm, nil
	case AlgorithmSplitMix:
		return AlgorithmSplitMix, nil
	case AlgorithmSine:
		return AlgorithmSine, nil
	default:
		return "", configError("algorithm", "%q is not supported", name)
	}
}

// SeedState is the complete state of a Stream. It is a plain value: callers
// that need a sequence to continue across calls keep the state returned by
// the previous call and pass it into the next one.
type SeedState struct {
	Seed    int64  `json:"seed"`
	Counter uint64 `json:"counter"`
}

// Stream yields uniform values in [0,1) for successive counters of one seed.
// A Stream is owned by a single generation call and is not safe for
// concurrent use.
type Stream struct {
	state     SeedState
	algorithm Algorithm
}

// NewStream returns a Stream positioned at state. An empty algorithm selects
// DefaultAlgorithm.
func NewStream(state SeedState, algorithm Algorithm) *Stream {
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	return &Stream{state: state, algorithm: algorithm}
}

// Draw returns the value for the current counter and advances the counter.
func (s *Stream) Draw() float64 {
	v := Draw(s.algorithm, s.state.Seed, s.state.Counter)
	s.state.Counter++
	return v
}

// IntN returns a uniform integer in [0,n). It consumes one draw for every
// n >= 1 and none for n <= 0.
func (s *Stream) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s.Draw() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// IntRange returns a uniform integer in [lo,hi].
func (s *Stream) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + s.IntN(hi-lo+1)
}

// State returns the position of the stream after all draws so far.
func (s *Stream) State() SeedState {
	return s.state
}

// Algorithm reports which function the stream draws from.
func (s *Stream) Algorithm() Algorithm {
	return s.algorithm
}

// Draw is the stateless form of Stream.Draw: the value for one (seed,
// counter) pair.
func Draw(algorithm Algorithm, seed int64, counter uint64) float64 {
	if algorithm == AlgorithmSine {
		return sineDraw(seed, counter)
	}
	return splitMixDraw(seed, counter)
}

const (
	splitMixGamma = 0x9E3779B97F4A7C15
	splitMixMul1  = 0xBF58476D1CE4E5B9
	splitMixMul2  = 0x94D049BB133111EB
)

func splitMixDraw(seed int64, counter uint64) float64 {
	z := uint64(seed) + (counter+1)*splitMixGamma
	z = (z ^ (z >> 30)) * splitMixMul1
	z = (z ^ (z >> 27)) * splitMixMul2
	z ^= z >> 31
	// top 53 bits fill the float64 mantissa exactly
	return float64(z>>11) / (1 << 53)
}

func sineDraw(seed int64, counter uint64) float64 {
	x := math.Sin(float64(seed)+float64(counter)) * 10000
	f := x - math.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}
