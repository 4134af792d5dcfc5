package prices

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
)

func TestBook(t *testing.T) {
	b := NewBook(logger.New(logger.LevelOff, nil))

	assert.Equal(t, 0.0, b.Price("bun"))

	b.Replace(domain.PriceTable{"bun": 2, "bad": -1, "nan": math.NaN()})
	assert.Equal(t, domain.PriceTable{"bun": 2, "bad": 0, "nan": 0}, b.Snapshot())

	b.Set("patty", 1.5)
	assert.Equal(t, 1.5, b.Price("patty"))

	snap := b.Snapshot()
	snap["bun"] = 100
	assert.Equal(t, 2.0, b.Price("bun"), "snapshot must be a copy")

	b.Replace(domain.PriceTable{"cheese": 1})
	assert.Equal(t, 0.0, b.Price("bun"), "replace drops old entries")
}

func TestUniqueIngredients(t *testing.T) {
	recipes := []domain.Recipe{
		{Ingredients: []domain.Ingredient{{Name: "bun"}, {Name: "patty"}}},
		{Ingredients: []domain.Ingredient{{Name: "potato"}, {Name: "bun"}, {Name: ""}}},
	}
	assert.Equal(t, []string{"bun", "patty", "potato"}, UniqueIngredients(recipes))
	assert.Equal(t, []string{"patty", "potato"}, Missing(recipes, domain.PriceTable{"bun": 1}))
	assert.Empty(t, UniqueIngredients(nil))
}
