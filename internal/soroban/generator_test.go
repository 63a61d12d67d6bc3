package soroban

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioA() Config {
	return Config{
		FormulaType:          "no-formula",
		DigitCount:           1,
		OperationCount:       5,
		Seed:                 42,
		EnsurePositiveResult: true,
	}
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// requireInvariants checks the properties every Problem must satisfy.
func requireInvariants(t *testing.T, cfg Config, p *Problem) {
	t.Helper()

	require.Len(t, p.Sequence, cfg.OperationCount)
	require.Len(t, p.Steps, cfg.OperationCount)
	assert.Equal(t, p.StartValue+sum(p.Sequence), p.FinalAnswer)

	total := p.StartValue
	for i, op := range p.Sequence {
		step := p.Steps[i]
		assert.Equal(t, floorMod(total, 10), step.OnesDigit)
		assert.Equal(t, op, step.Operand)
		total += op
		assert.Equal(t, total, step.Total)
		if cfg.EnsurePositiveResult {
			assert.GreaterOrEqual(t, total, 0, "prefix %d of %v", i, p.Sequence)
		}
	}
}

func TestGenerate_NoFormulaScenario(t *testing.T) {
	t.Parallel()
	cfg := scenarioA()

	p, err := Generate(cfg)
	require.NoError(t, err)
	requireInvariants(t, cfg, p)

	assert.GreaterOrEqual(t, p.StartValue, 1)
	assert.LessOrEqual(t, p.StartValue, 9)

	total := p.StartValue
	for _, op := range p.Sequence {
		d := total % 10
		if op > 0 {
			assert.LessOrEqual(t, d+op, 9, "add %d at ones digit %d", op, d)
		} else {
			assert.LessOrEqual(t, -op, d, "subtract %d at ones digit %d", -op, d)
		}
		total += op
	}
	assert.Equal(t, total, p.FinalAnswer)
}

func TestGenerate_PinnedSequence(t *testing.T) {
	t.Parallel()

	// Guards the splitmix stream and candidate ordering against accidental
	// changes that would alter already-published challenge sets.
	p, err := Generate(scenarioA())
	require.NoError(t, err)
	assert.Equal(t, 7, p.StartValue)
	assert.Equal(t, []int{2, -3, 3, -1, -7}, p.Sequence)
	assert.Equal(t, 1, p.FinalAnswer)

	mixed := scenarioA()
	mixed.FormulaType = "mixed"
	p, err = Generate(mixed)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 6, 7, 1, -7}, p.Sequence)
	assert.Equal(t, 17, p.FinalAnswer)

	wide := Config{FormulaType: "mixed", DigitCount: 3, OperationCount: 8, Seed: 7, EnsurePositiveResult: true}
	p, err = Generate(wide)
	require.NoError(t, err)
	assert.Equal(t, 450, p.StartValue)
	assert.Equal(t, []int{100, -20, 50, 6, 8, -90, -300, 800}, p.Sequence)
	assert.Equal(t, 1004, p.FinalAnswer)
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := Generate(scenarioA())
	require.NoError(t, err)
	second, err := Generate(scenarioA())
	require.NoError(t, err)
	assert.Equal(t, first.Sequence, second.Sequence)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	t.Parallel()

	cfg := Config{FormulaType: "mixed", DigitCount: 2, OperationCount: 10, EnsurePositiveResult: true}
	distinct := make(map[string]bool)
	for seed := int64(0); seed < 20; seed++ {
		cfg.Seed = seed
		p, err := Generate(cfg)
		require.NoError(t, err)
		raw, _ := json.Marshal(p.Sequence)
		distinct[string(raw)] = true
	}
	assert.Greater(t, len(distinct), 15)
}

func TestGenerate_InvariantsAcrossConfigs(t *testing.T) {
	t.Parallel()

	for _, b := range Formulas() {
		for digits := MinDigitCount; digits <= MaxDigitCount; digits++ {
			for _, alg := range []Algorithm{AlgorithmSplitMix, AlgorithmSine} {
				for seed := int64(0); seed < 40; seed++ {
					cfg := Config{
						FormulaType:          b.ID,
						DigitCount:           digits,
						OperationCount:       12,
						Seed:                 seed,
						EnsurePositiveResult: true,
						Algorithm:            alg,
					}
					p, err := Generate(cfg)
					require.NoError(t, err, "%+v", cfg)
					requireInvariants(t, cfg, p)
				}
			}
		}
	}
}

func TestGenerate_StepsFollowTable(t *testing.T) {
	t.Parallel()
	table := DefaultTable()

	for _, b := range Formulas() {
		for seed := int64(0); seed < 30; seed++ {
			cfg := Config{FormulaType: b.ID, DigitCount: 1, OperationCount: 15, Seed: seed, EnsurePositiveResult: true}
			p, err := Generate(cfg)
			require.NoError(t, err)

			for _, step := range p.Steps {
				legal := table.LegalSet(b.Classes, step.OnesDigit)
				if step.Base > 0 {
					assert.Contains(t, legal.Add, step.Base, "%s seed %d", b.ID, seed)
				} else {
					assert.Contains(t, legal.Subtract, -step.Base, "%s seed %d", b.ID, seed)
				}
				assert.Equal(t, Classify(step.OnesDigit, step.Base), step.Technique)
			}
		}
	}
}

func TestGenerate_NoCascadingCarry(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 200; seed++ {
		cfg := Config{FormulaType: "big-friend", DigitCount: 1, OperationCount: 30, Seed: seed, EnsurePositiveResult: true}
		p, err := Generate(cfg)
		require.NoError(t, err)

		total := p.StartValue
		for _, op := range p.Sequence {
			next := total + op
			// A single-digit move can change the tens column by at most one and
			// must leave the hundreds column alone.
			assert.Equal(t, floorDiv(total, 100), floorDiv(next, 100), "%d%+d", total, op)
			total = next
		}
	}
}

func TestGenerate_MultiDigitOperandsReduceToSingleDigit(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 50; seed++ {
		cfg := Config{FormulaType: "mixed", DigitCount: 3, OperationCount: 8, Seed: seed, EnsurePositiveResult: true}
		p, err := Generate(cfg)
		require.NoError(t, err)
		requireInvariants(t, cfg, p)

		assert.GreaterOrEqual(t, p.StartValue, 100)
		assert.LessOrEqual(t, p.StartValue, 999)

		for i, op := range p.Sequence {
			step := p.Steps[i]
			assert.GreaterOrEqual(t, step.Exponent, 0)
			assert.LessOrEqual(t, step.Exponent, 2)

			magnitude := op
			if magnitude < 0 {
				magnitude = -magnitude
			}
			digit := magnitude / pow10(step.Exponent)
			assert.Equal(t, 0, magnitude%pow10(step.Exponent))
			assert.GreaterOrEqual(t, digit, 1)
			assert.LessOrEqual(t, digit, 9)
		}
	}
}

func TestGenerate_UnknownFormulaFallsBack(t *testing.T) {
	t.Parallel()

	unknown := scenarioA()
	unknown.FormulaType = "unknown"

	want, err := Generate(scenarioA())
	require.NoError(t, err)
	got, err := Generate(unknown)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	unknown.StrictFormula = true
	_, err = Generate(unknown)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerate_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		mut   func(*Config)
		field string
	}{
		{name: "zero digits", mut: func(c *Config) { c.DigitCount = 0 }, field: "digit_count"},
		{name: "four digits", mut: func(c *Config) { c.DigitCount = 4 }, field: "digit_count"},
		{name: "zero operations", mut: func(c *Config) { c.OperationCount = 0 }, field: "operation_count"},
		{name: "too many operations", mut: func(c *Config) { c.OperationCount = DefaultMaxOperations + 1 }, field: "operation_count"},
		{name: "unknown algorithm", mut: func(c *Config) { c.Algorithm = "xorshift" }, field: "algorithm"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := scenarioA()
			tc.mut(&cfg)

			p, err := Generate(cfg)
			assert.Nil(t, p)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.field, cfgErr.Field)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	g := NewGenerator(WithMaxOperations(3))
	_, err := g.Generate(scenarioA())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerate_ExhaustedWithMalformedTable(t *testing.T) {
	t.Parallel()

	// Only digit 5 has a move; every other state is a dead end.
	table, err := NewTable(map[DifficultyClass][]RuleEntry{
		NoFormula: {{OnesDigit: 5, Add: []int{1}}},
	})
	require.NoError(t, err)

	g := NewGenerator(WithTable(table))
	cfg := scenarioA()
	cfg.OperationCount = 20
	_, err = g.Generate(cfg)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.ErrorIs(t, err, ErrGenerationExhausted)
	assert.NotEqual(t, 5, exhausted.OnesDigit)
}

func TestGenerateFrom_ThreadsSeedState(t *testing.T) {
	t.Parallel()
	g := NewGenerator()

	cfg := Config{FormulaType: "mixed", DigitCount: 2, OperationCount: 6, EnsurePositiveResult: true}
	first, next, err := g.GenerateFrom(cfg, SeedState{Seed: 5})
	require.NoError(t, err)

	// start value + one selection and one exponent draw per operation
	assert.Equal(t, SeedState{Seed: 5, Counter: 1 + 2*6}, next)

	second, after, err := g.GenerateFrom(cfg, next)
	require.NoError(t, err)
	assert.NotEqual(t, first.Sequence, second.Sequence)
	assert.Equal(t, next.Counter+13, after.Counter)

	// Replaying from the saved state reproduces the second problem.
	replay, _, err := g.GenerateFrom(cfg, next)
	require.NoError(t, err)
	assert.Equal(t, second, replay)

	single := Config{FormulaType: "no-formula", DigitCount: 1, OperationCount: 6}
	_, next, err = g.GenerateFrom(single, SeedState{Seed: 5})
	require.NoError(t, err)
	assert.Equal(t, uint64(1+6), next.Counter, "one digit never draws an exponent")
}

func TestGenerate_ConcurrentCallsMatchSequential(t *testing.T) {
	t.Parallel()
	g := NewGenerator()

	const n = 64
	want := make([]*Problem, n)
	for i := range want {
		p, err := g.Generate(Config{FormulaType: "mixed", DigitCount: 2, OperationCount: 10, Seed: int64(i), EnsurePositiveResult: true})
		require.NoError(t, err)
		want[i] = p
	}

	got := make([]*Problem, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := g.Generate(Config{FormulaType: "mixed", DigitCount: 2, OperationCount: 10, Seed: int64(i), EnsurePositiveResult: true})
			if err == nil {
				got[i] = p
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, want, got)
}

func TestGenerator_WithAlgorithm(t *testing.T) {
	t.Parallel()
	sine := NewGenerator(WithAlgorithm(AlgorithmSine))
	assert.Equal(t, AlgorithmSine, sine.Algorithm())
	assert.Equal(t, AlgorithmSplitMix, NewGenerator(WithAlgorithm("bogus")).Algorithm())

	cfg := scenarioA()
	implicit, err := sine.Generate(cfg)
	require.NoError(t, err)

	cfg.Algorithm = AlgorithmSine
	explicit, err := Generate(cfg)
	require.NoError(t, err)
	assert.Equal(t, explicit, implicit)

	cfg.Algorithm = AlgorithmSplitMix
	overridden, err := sine.Generate(cfg)
	require.NoError(t, err)
	def, err := Generate(scenarioA())
	require.NoError(t, err)
	assert.Equal(t, def, overridden)

	alg, err := sine.ResolveAlgorithm(Config{})
	require.NoError(t, err)
	assert.Equal(t, AlgorithmSine, alg)
}
