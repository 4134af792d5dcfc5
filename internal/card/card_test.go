package card

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.LevelOff, nil)
}

func burger() domain.Recipe {
	return domain.Recipe{
		ID:        "r1",
		Name:      "Burger",
		SalePrice: 10,
		Ingredients: []domain.Ingredient{
			{ID: "a", Name: "bun", Quantity: 1, Unit: "bun"},
		},
	}
}

// memReplacer records what was committed.
type memReplacer struct {
	got   []domain.Recipe
	err   error
	calls int
}

func (m *memReplacer) Replace(_ context.Context, r domain.Recipe) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.got = append(m.got, r)
	return nil
}

type fakeOverrides map[string]domain.QuantityRange

func (f fakeOverrides) Range(id string) (domain.QuantityRange, bool) {
	r, ok := f[id]
	return r, ok
}

func TestTransition(t *testing.T) {
	tests := []struct {
		from      State
		ev        Event
		remaining int
		want      State
	}{
		{Idle, EventEdit, 1, Editing},
		{Editing, EventEdit, 2, Editing},
		{Editing, EventDiscard, 1, Editing},
		{Editing, EventDiscard, 0, Idle},
		{Editing, EventCommit, 0, Idle},
		{Idle, EventCommit, 0, Idle},
	}
	for _, tt := range tests {
		if got := Transition(tt.from, tt.ev, tt.remaining); got != tt.want {
			t.Fatalf("%s --%s(%d)--> expected %s, got %s", tt.from, tt.ev, tt.remaining, tt.want, got)
		}
	}
}

func TestPreviewAndCommit(t *testing.T) {
	r := burger()
	prices := domain.PriceTable{"bun": 2}
	c := New(r.ID, testLogger())

	require.NoError(t, c.Edit(r, "a", 3))
	assert.Equal(t, Editing, c.State())

	preview := c.Preview(r, prices, nil)
	assert.Equal(t, 6.0, preview.Cost)

	baseline := Baseline(r, prices)
	assert.Equal(t, 2.0, baseline.Cost, "baseline ignores pending edits")

	dst := &memReplacer{}
	updated, err := c.Commit(context.Background(), r, dst)
	require.NoError(t, err)

	require.Len(t, dst.got, 1)
	assert.Equal(t, 3.0, dst.got[0].Ingredients[0].Quantity)
	assert.Equal(t, 3.0, updated.Ingredients[0].Quantity)
	assert.Empty(t, c.Pending())
	assert.Equal(t, Idle, c.State())

	assert.Equal(t, 1.0, r.Ingredients[0].Quantity, "input recipe must not be mutated")
}

func TestDiscardLeavesRecipeUnchanged(t *testing.T) {
	r := burger()
	r.Ingredients = append(r.Ingredients, domain.Ingredient{ID: "b", Name: "patty", Quantity: 1})
	c := New(r.ID, testLogger())

	require.NoError(t, c.Edit(r, "a", 3))
	require.NoError(t, c.Edit(r, "b", 4))

	assert.True(t, c.Discard("a"))
	assert.False(t, c.Discard("a"))

	assert.Equal(t, map[string]float64{"b": 4}, c.Pending())
	assert.Equal(t, 1.0, r.Ingredients[0].Quantity)
	assert.Equal(t, Editing, c.State())

	assert.True(t, c.Discard("b"))
	assert.Equal(t, Idle, c.State())
}

func TestPreviewFallbackOrder(t *testing.T) {
	r := domain.Recipe{
		ID: "r", Name: "Plate", SalePrice: 100,
		Ingredients: []domain.Ingredient{
			{ID: "p", Name: "x", Quantity: 1},
			{ID: "o", Name: "y", Quantity: 1},
			{ID: "c", Name: "z", Quantity: 1},
		},
	}
	prices := domain.PriceTable{"x": 1, "y": 10, "z": 100}
	overrides := fakeOverrides{
		"p": {Min: 0, Max: 10, Current: 5},
		"o": {Min: 0, Max: 10, Current: 2},
	}

	c := New(r.ID, testLogger())
	require.NoError(t, c.Edit(r, "p", 7))

	// p: pending 7, o: override 2, c: committed 1.
	m := c.Preview(r, prices, overrides)
	assert.InDelta(t, 7*1+2*10+1*100, m.Cost, 1e-9)
}

func TestEditIsNotClamped(t *testing.T) {
	r := burger()
	c := New(r.ID, testLogger())
	require.NoError(t, c.Edit(r, "a", 500))
	assert.Equal(t, 500.0, c.Pending()["a"])
}

func TestEditUnknownIngredient(t *testing.T) {
	c := New("r1", testLogger())
	err := c.Edit(burger(), "nope", 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, Idle, c.State())
}

func TestEditTextCoercesToZero(t *testing.T) {
	r := burger()
	c := New(r.ID, testLogger())

	require.NoError(t, c.EditText(r, "a", "abc"))
	assert.Equal(t, 0.0, c.Pending()["a"])

	require.NoError(t, c.EditText(r, "a", " 2.5 "))
	assert.Equal(t, 2.5, c.Pending()["a"])

	require.NoError(t, c.EditText(r, "a", "-4"))
	assert.Equal(t, 0.0, c.Pending()["a"])
}

func TestCommitWithNothingPending(t *testing.T) {
	c := New("r1", testLogger())
	dst := &memReplacer{}
	_, err := c.Commit(context.Background(), burger(), dst)
	assert.ErrorIs(t, err, domain.ErrNoPendingChanges)
	assert.Zero(t, dst.calls)
}

func TestCommitFailureKeepsPending(t *testing.T) {
	r := burger()
	c := New(r.ID, testLogger())
	require.NoError(t, c.Edit(r, "a", 3))

	dst := &memReplacer{err: domain.ErrNotFound}
	_, err := c.Commit(context.Background(), r, dst)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, map[string]float64{"a": 3}, c.Pending())
	assert.Equal(t, Editing, c.State())
}

func TestBoard(t *testing.T) {
	b := NewBoard(testLogger())
	r := burger()

	c := b.Card(r.ID)
	assert.Same(t, c, b.Card(r.ID), "card persists across lookups")

	require.NoError(t, c.Edit(r, "a", 2))
	b.Card("other")
	assert.Equal(t, []string{r.ID}, b.Editing())

	b.Drop(r.ID)
	assert.Empty(t, b.Card(r.ID).Pending())
}
