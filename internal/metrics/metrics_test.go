package metrics

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottocost/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestObserveRecipe(t *testing.T) {
	r := NewRecorder()

	r.ObserveRecipe("Burger", domain.Metrics{Cost: 3, FoodCostPercentage: 30})
	assert.Equal(t, 3.0, testutil.ToFloat64(r.recipeCost.WithLabelValues("Burger")))
	assert.Equal(t, 30.0, testutil.ToFloat64(r.foodCostPct.WithLabelValues("Burger")))

	r.ObserveRecipe("Burger", domain.Metrics{Cost: 3, FoodCostPercentage: math.Inf(1)})
	assert.Equal(t, 0, testutil.CollectAndCount(r.foodCostPct), "undefined percentage is not exported")
	assert.Equal(t, 1, testutil.CollectAndCount(r.recipeCost))

	r.ForgetRecipe("Burger")
	assert.Equal(t, 0, testutil.CollectAndCount(r.recipeCost))
}

func TestCounters(t *testing.T) {
	r := NewRecorder()
	r.Commit()
	r.Commit()
	r.Import("sales")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.commits))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.imports.WithLabelValues("sales")))
}

func TestHandler(t *testing.T) {
	r := NewRecorder()
	r.ObserveRecipe("Fries", domain.Metrics{Cost: 1.25, FoodCostPercentage: 25})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	r.Handler("/metrics").ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `ottocost_recipe_cost{recipe="Fries"} 1.25`), body)
	assert.True(t, strings.Contains(body, `ottocost_recipe_food_cost_percent{recipe="Fries"} 25`), body)
}
