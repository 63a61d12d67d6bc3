package soroban

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want []DifficultyClass
	}{
		{id: "no-formula", want: []DifficultyClass{NoFormula}},
		{id: "No Formula", want: []DifficultyClass{NoFormula}},
		{id: "direct", want: []DifficultyClass{NoFormula}},
		{id: "small_friend", want: []DifficultyClass{SmallFriend}},
		{id: "formula-5", want: []DifficultyClass{SmallFriend}},
		{id: "BIG-FRIENDS", want: []DifficultyClass{BigFriend}},
		{id: "ten complement", want: []DifficultyClass{BigFriend}},
		{id: "friends", want: []DifficultyClass{SmallFriend, BigFriend}},
		{id: "all", want: []DifficultyClass{Mixed}},
		{id: "  mixed  ", want: []DifficultyClass{Mixed}},
	}
	for _, tc := range tests {
		got, err := Resolve(tc.id, false)
		require.NoError(t, err, tc.id)
		assert.Equal(t, tc.want, got, tc.id)
	}
}

func TestResolve_Fallback(t *testing.T) {
	t.Parallel()

	got, err := Resolve("legacy-formula-v1", true)
	require.NoError(t, err)
	assert.Equal(t, []DifficultyClass{NoFormula}, got)

	got, err = Resolve("", true)
	require.NoError(t, err)
	assert.Equal(t, []DifficultyClass{NoFormula}, got)

	_, err = Resolve("legacy-formula-v1", false)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "formula_type", cfgErr.Field)
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "small-friend", Canonical("Five"))
	assert.Equal(t, "friends", Canonical("small and big"))
	assert.Equal(t, "no-formula", Canonical("whatever"))
}

func TestLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "No Formula", Label(NoFormula))
	assert.Equal(t, "Small Friend (5)", Label(SmallFriend))
	assert.Equal(t, "Big Friend (10)", Label(BigFriend))
	assert.Equal(t, "Mixed", Label(Mixed))
	assert.Equal(t, "difficulty(9)", Label(DifficultyClass(9)))
}

func TestFormulas_ReturnsCopies(t *testing.T) {
	t.Parallel()

	list := Formulas()
	require.NotEmpty(t, list)
	list[0].Classes[0] = Mixed

	b, ok := Lookup(list[0].ID)
	require.True(t, ok)
	assert.Equal(t, NoFormula, b.Classes[0])
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "small-friend", Normalize("  Small__Friend "))
	assert.Equal(t, "big-friend", Normalize("-big - friend-"))
}
