package drill

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/phrazzld/soroban-api/internal/soroban"
)

// ErrInvalidCadence is returned for a non-positive cadence.
var ErrInvalidCadence = errors.New("cadence must be positive")

// Tick is one reveal of a live drill. Index 0 shows the start value; index
// k shows operand k of the sequence. Total is the running value after the
// tick and is withheld from participants until they answer.
type Tick struct {
	Index   int
	Operand int
	At      time.Duration
	Total   int
}

// MarshalJSON writes At in whole milliseconds and omits Total.
func (t Tick) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Index   int   `json:"index"`
		Operand int   `json:"operand"`
		AtMS    int64 `json:"at_ms"`
	}{t.Index, t.Operand, t.At.Milliseconds()})
}

// Schedule lays out every tick of p at the given cadence.
func Schedule(p *soroban.Problem, cadence time.Duration) ([]Tick, error) {
	if cadence <= 0 {
		return nil, ErrInvalidCadence
	}
	if p == nil {
		return nil, errors.New("problem is nil")
	}

	ticks := make([]Tick, 0, len(p.Sequence)+1)
	total := p.StartValue
	ticks = append(ticks, Tick{Index: 0, Operand: p.StartValue, At: 0, Total: total})
	for i, op := range p.Sequence {
		total += op
		ticks = append(ticks, Tick{
			Index:   i + 1,
			Operand: op,
			At:      time.Duration(i+1) * cadence,
			Total:   total,
		})
	}
	return ticks, nil
}

// Duration is the time from the first tick to the last one.
func Duration(ticks []Tick) time.Duration {
	if len(ticks) == 0 {
		return 0
	}
	return ticks[len(ticks)-1].At
}
