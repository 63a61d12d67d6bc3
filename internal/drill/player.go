package drill

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/phrazzld/soroban-api/internal/soroban"
)

// Player reveals problems tick by tick. Its per-digit table comes from
// soroban.Flatten, the same legality the generator selects from.
type Player struct {
	table   soroban.FlatTable
	cadence time.Duration
	logger  *slog.Logger
}

// NewPlayer returns a Player for the formula type at cadence.
func NewPlayer(formulaType string, cadence time.Duration, logger *slog.Logger) (*Player, error) {
	if cadence <= 0 {
		return nil, ErrInvalidCadence
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		table:   soroban.FlattenFormula(formulaType),
		cadence: cadence,
		logger:  logger.With(slog.String("component", "drill_player")),
	}, nil
}

// Table returns the player's flattened rule table.
func (pl *Player) Table() soroban.FlatTable {
	return pl.table
}

// Verify checks that every step of p uses a base operand the table allows
// at its ones digit.
func (pl *Player) Verify(p *soroban.Problem) error {
	for i, step := range p.Steps {
		entry := pl.table[step.OnesDigit]
		var ok bool
		if step.Base > 0 {
			ok = slices.Contains(entry.Add, step.Base)
		} else {
			ok = slices.Contains(entry.Subtract, -step.Base)
		}
		if !ok {
			return fmt.Errorf("step %d: operand %+d is not legal at ones digit %d",
				i, step.Base, step.OnesDigit)
		}
	}
	return nil
}

// Play emits each tick of p as its time arrives. The first tick is emitted
// immediately. Play returns ctx.Err() if ctx ends before the last tick.
func (pl *Player) Play(ctx context.Context, p *soroban.Problem, emit func(Tick)) error {
	if err := pl.Verify(p); err != nil {
		return err
	}
	ticks, err := Schedule(p, pl.cadence)
	if err != nil {
		return err
	}

	emit(ticks[0])
	if len(ticks) == 1 {
		return nil
	}

	ticker := time.NewTicker(pl.cadence)
	defer ticker.Stop()

	for _, t := range ticks[1:] {
		select {
		case <-ctx.Done():
			pl.logger.Debug("drill interrupted", slog.Int("next_index", t.Index))
			return ctx.Err()
		case <-ticker.C:
			emit(t)
		}
	}
	return nil
}
