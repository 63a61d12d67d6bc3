package soroban

const (
	// MinDigitCount and MaxDigitCount bound the width of start values and
	// operands.
	MinDigitCount = 1
	MaxDigitCount = 3

	// DefaultMaxOperations bounds OperationCount unless a Generator is built
	// with WithMaxOperations.
	DefaultMaxOperations = 100
)

// Config describes one Problem to generate. StrictFormula rejects unknown
// formula types instead of falling back to NoFormula.
type Config struct {
	FormulaType          string    `json:"formula_type"`
	DigitCount           int       `json:"digit_count"`
	OperationCount       int       `json:"operation_count"`
	Seed                 int64     `json:"seed"`
	EnsurePositiveResult bool      `json:"ensure_positive_result"`
	StrictFormula        bool      `json:"strict_formula,omitempty"`
	Algorithm            Algorithm `json:"algorithm,omitempty"`
}

// Step records how one operation of a Problem was produced.
type Step struct {
	Base      int             `json:"base"`
	Exponent  int             `json:"exponent"`
	Operand   int             `json:"operand"`
	OnesDigit int             `json:"ones_digit"`
	Technique DifficultyClass `json:"technique"`
	Total     int             `json:"total"`
}

// Problem is one generated drill. FinalAnswer always equals StartValue plus
// the sum of Sequence.
type Problem struct {
	StartValue  int    `json:"start_value"`
	Sequence    []int  `json:"sequence"`
	FinalAnswer int    `json:"final_answer"`
	Steps       []Step `json:"steps,omitempty"`
}

// Generator builds Problems from a rule table. It is immutable and may be
// shared between goroutines.
type Generator struct {
	table         *Table
	maxOperations int
	algorithm     Algorithm
}

// Option customizes a Generator.
type Option func(*Generator)

// WithTable replaces the default bead-model table.
func WithTable(t *Table) Option {
	return func(g *Generator) {
		if t != nil {
			g.table = t
		}
	}
}

// WithMaxOperations changes the largest accepted OperationCount.
func WithMaxOperations(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxOperations = n
		}
	}
}

// WithAlgorithm sets the algorithm used when a Config leaves it empty.
func WithAlgorithm(a Algorithm) Option {
	return func(g *Generator) {
		if parsed, err := ParseAlgorithm(string(a)); err == nil {
			g.algorithm = parsed
		}
	}
}

// NewGenerator returns a Generator over DefaultTable unless overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		table:         DefaultTable(),
		maxOperations: DefaultMaxOperations,
		algorithm:     DefaultAlgorithm,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Table returns the rule table the generator selects from.
func (g *Generator) Table() *Table {
	return g.table
}

// Algorithm returns the algorithm applied to configs that leave it empty.
func (g *Generator) Algorithm() Algorithm {
	return g.algorithm
}

// ResolveAlgorithm returns the algorithm cfg will be generated with.
func (g *Generator) ResolveAlgorithm(cfg Config) (Algorithm, error) {
	if cfg.Algorithm == "" {
		return g.algorithm, nil
	}
	return ParseAlgorithm(string(cfg.Algorithm))
}

// Generate builds the Problem for cfg starting at counter 0 of cfg.Seed.
func Generate(cfg Config) (*Problem, error) {
	return NewGenerator().Generate(cfg)
}

// Validate checks cfg against the generator's limits.
func (g *Generator) Validate(cfg Config) error {
	if cfg.DigitCount < MinDigitCount || cfg.DigitCount > MaxDigitCount {
		return configError("digit_count", "must be between %d and %d, got %d",
			MinDigitCount, MaxDigitCount, cfg.DigitCount)
	}
	if cfg.OperationCount < 1 || cfg.OperationCount > g.maxOperations {
		return configError("operation_count", "must be between 1 and %d, got %d",
			g.maxOperations, cfg.OperationCount)
	}
	if _, err := g.ResolveAlgorithm(cfg); err != nil {
		return err
	}
	if _, err := Resolve(cfg.FormulaType, !cfg.StrictFormula); err != nil {
		return err
	}
	return nil
}

// Generate builds the Problem for cfg starting at counter 0 of cfg.Seed.
func (g *Generator) Generate(cfg Config) (*Problem, error) {
	p, _, err := g.GenerateFrom(cfg, SeedState{Seed: cfg.Seed})
	return p, err
}

// GenerateFrom builds a Problem drawing from state and returns the state
// after the last draw, so a caller can continue the same sequence with its
// next call. cfg.Seed is ignored in favour of state.Seed.
func (g *Generator) GenerateFrom(cfg Config, state SeedState) (*Problem, SeedState, error) {
	if err := g.Validate(cfg); err != nil {
		return nil, state, err
	}
	classes, _ := Resolve(cfg.FormulaType, !cfg.StrictFormula)
	algorithm, _ := g.ResolveAlgorithm(cfg)
	stream := NewStream(state, algorithm)

	total := startValue(stream, cfg.DigitCount)
	p := &Problem{
		StartValue: total,
		Sequence:   make([]int, 0, cfg.OperationCount),
		Steps:      make([]Step, 0, cfg.OperationCount),
	}

	candidates := make([]int, 0, 18)
	for i := 0; i < cfg.OperationCount; i++ {
		d := floorMod(total, 10)
		candidates = g.candidates(candidates[:0], classes, total, cfg.EnsurePositiveResult)
		if len(candidates) == 0 {
			return nil, stream.State(), &ExhaustedError{Step: i, Total: total, OnesDigit: d}
		}

		base := candidates[stream.IntN(len(candidates))]
		maxExponent := cfg.DigitCount - 1
		if cfg.EnsurePositiveResult && base < 0 {
			maxExponent = subtractExponentLimit(-base, total, cfg.DigitCount)
		}
		operand, exponent := Scale(stream, base, cfg.DigitCount, maxExponent)

		total += operand
		p.Sequence = append(p.Sequence, operand)
		p.Steps = append(p.Steps, Step{
			Base:      base,
			Exponent:  exponent,
			Operand:   operand,
			OnesDigit: d,
			Technique: Classify(d, base),
			Total:     total,
		})
	}
	p.FinalAnswer = total
	return p, stream.State(), nil
}

// candidates appends the signed operands selectable at total: every legal
// add, then every legal subtract, each ascending. Subtractions that would go
// negative are dropped when positive is set, and a carry or borrow that would
// ripple past the tens column is always dropped.
func (g *Generator) candidates(dst []int, classes []DifficultyClass, total int, positive bool) []int {
	d := floorMod(total, 10)
	tens := floorMod(floorDiv(total, 10), 10)
	legal := g.table.LegalSet(classes, d)

	for _, a := range legal.Add {
		if d+a >= 10 && tens == 9 {
			continue
		}
		dst = append(dst, a)
	}
	for _, s := range legal.Subtract {
		if positive && total-s < 0 {
			continue
		}
		if s > d && tens == 0 {
			continue
		}
		dst = append(dst, -s)
	}
	return dst
}

func startValue(s *Stream, digitCount int) int {
	if digitCount <= 1 {
		return s.IntRange(1, 9)
	}
	return s.IntRange(pow10(digitCount-1), pow10(digitCount)-1)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
