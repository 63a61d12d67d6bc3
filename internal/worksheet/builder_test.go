package worksheet

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/soroban-api/internal/platform/logger"
	"github.com/phrazzld/soroban-api/internal/soroban"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() soroban.Config {
	return soroban.Config{
		FormulaType:          "no-formula",
		DigitCount:           1,
		OperationCount:       5,
		Seed:                 42,
		EnsurePositiveResult: true,
	}
}

func TestBuild_RowsUseOffsetSeeds(t *testing.T) {
	_, log := logger.NewTestLogger()
	b := NewBuilder(nil, WithWorkers(3), WithLogger(log))

	sheet, err := b.Build(context.Background(), Spec{Title: "Drill", Config: baseConfig(), ProblemCount: 12})
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 12)

	first := sheet.Rows[0].Problem
	assert.Equal(t, 7, first.StartValue)
	assert.Equal(t, []int{2, -3, 3, -1, -7}, first.Sequence)
	assert.Equal(t, 1, first.FinalAnswer)

	for i, row := range sheet.Rows {
		assert.Equal(t, i, row.Index)
		assert.Equal(t, int64(42+i), row.Seed)

		cfg := baseConfig()
		cfg.Seed = row.Seed
		want, err := soroban.Generate(cfg)
		require.NoError(t, err)
		assert.Equal(t, want, row.Problem)
	}
}

func TestBuild_WorkerCountDoesNotChangeOutput(t *testing.T) {
	spec := Spec{Config: baseConfig(), ProblemCount: 40}
	spec.Config.FormulaType = "mixed"
	spec.Config.DigitCount = 2

	serial, err := NewBuilder(nil, WithWorkers(1)).Build(context.Background(), spec)
	require.NoError(t, err)
	parallel, err := NewBuilder(nil, WithWorkers(16)).Build(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestBuild_Validation(t *testing.T) {
	b := NewBuilder(nil, WithMaxProblems(10))
	assert.Equal(t, 10, b.MaxProblems())

	tests := []struct {
		name  string
		spec  Spec
		field string
	}{
		{name: "zero problems", spec: Spec{Config: baseConfig()}, field: "problem_count"},
		{name: "too many problems", spec: Spec{Config: baseConfig(), ProblemCount: 11}, field: "problem_count"},
		{
			name:  "bad digit count",
			spec:  Spec{Config: soroban.Config{DigitCount: 9, OperationCount: 1}, ProblemCount: 1},
			field: "digit_count",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := b.Build(context.Background(), tc.spec)
			require.Error(t, err)
			assert.ErrorIs(t, err, soroban.ErrInvalidConfig)

			var cfgErr *soroban.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestBuild_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuilder(nil).Build(ctx, Spec{Config: baseConfig(), ProblemCount: 5})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_ExhaustedTable(t *testing.T) {
	table, err := soroban.NewTable(map[soroban.DifficultyClass][]soroban.RuleEntry{})
	require.NoError(t, err)
	gen := soroban.NewGenerator(soroban.WithTable(table))

	_, err = NewBuilder(gen).Build(context.Background(), Spec{Config: baseConfig(), ProblemCount: 3})
	assert.ErrorIs(t, err, soroban.ErrGenerationExhausted)
}
