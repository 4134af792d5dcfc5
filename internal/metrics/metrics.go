// Package metrics exposes costing figures as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
	"github.com/hammamikhairi/ottocost/internal/pricing"
)

// Recorder owns a private registry and the tracker's collectors.
type Recorder struct {
	registry    *prometheus.Registry
	recipeCost  *prometheus.GaugeVec
	foodCostPct *prometheus.GaugeVec
	commits     prometheus.Counter
	imports     *prometheus.CounterVec
}

// NewRecorder creates and registers every collector.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		recipeCost: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ottocost_recipe_cost",
				Help: "Committed ingredient cost of a recipe",
			},
			[]string{"recipe"},
		),
		foodCostPct: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ottocost_recipe_food_cost_percent",
				Help: "Committed food cost as a percentage of sale price",
			},
			[]string{"recipe"},
		),
		commits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ottocost_commits_total",
			Help: "Recipe card commits",
		}),
		imports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ottocost_imports_total",
				Help: "Successful CSV imports",
			},
			[]string{"kind"},
		),
	}
	r.registry.MustRegister(r.recipeCost, r.foodCostPct, r.commits, r.imports)
	return r
}

// Registry returns the registry the collectors live in.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveRecipe sets the gauges for one recipe. An undefined food-cost
// percentage removes that series instead of exporting Inf or NaN.
func (r *Recorder) ObserveRecipe(name string, m domain.Metrics) {
	r.recipeCost.WithLabelValues(name).Set(m.Cost)
	if pricing.Defined(m.FoodCostPercentage) {
		r.foodCostPct.WithLabelValues(name).Set(m.FoodCostPercentage)
		return
	}
	r.foodCostPct.DeleteLabelValues(name)
}

// ForgetRecipe drops every series for a recipe.
func (r *Recorder) ForgetRecipe(name string) {
	r.recipeCost.DeleteLabelValues(name)
	r.foodCostPct.DeleteLabelValues(name)
}

// Reset drops every recipe series, before a full refresh.
func (r *Recorder) Reset() {
	r.recipeCost.Reset()
	r.foodCostPct.Reset()
}

// Commit counts one card commit.
func (r *Recorder) Commit() { r.commits.Inc() }

// Import counts one successful import of kind.
func (r *Recorder) Import(kind string) { r.imports.WithLabelValues(kind).Inc() }

// ── Server ───────────────────────────────────────────────────────

// Handler returns a gin engine serving the registry at path.
func (r *Recorder) Handler(path string) http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET(path, gin.WrapH(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})))
	return router
}

// Serve runs the metrics endpoint until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr, path string, log *logger.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(path),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("metrics server shutdown: %v", err)
		}
	}()

	log.Info("metrics server listening on %s%s", addr, path)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
