// Package quantity holds the live per-ingredient quantity overrides.
//
// Each ingredient id owns a {min, max, current} range that is edited
// independently of the committed recipe. The only write paths are
// EnsureInitialized, SetCurrent and SetRange, and each of them keeps
// 0 <= min <= current <= max.
package quantity

import (
	"math"
	"sync"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
)

// Default range spread around the committed quantity.
const (
	DefaultMinFactor = 0.8
	DefaultMaxFactor = 1.2
)

// Compile-time interface check.
var _ domain.OverrideReader = (*Store)(nil)

// Store keeps override ranges and fixed flags keyed by ingredient id.
type Store struct {
	mu     sync.RWMutex
	ranges map[string]domain.QuantityRange
	fixed  map[string]bool
	log    *logger.Logger
}

// NewStore creates an empty override store.
func NewStore(log *logger.Logger) *Store {
	return &Store{
		ranges: make(map[string]domain.QuantityRange),
		fixed:  make(map[string]bool),
		log:    log,
	}
}

// EnsureInitialized creates a range for every ingredient id the store has
// not seen yet. Existing entries are left alone even when the committed
// quantity has since changed. current starts at the committed quantity,
// clamped into explicit bounds that exclude it.
func (s *Store) EnsureInitialized(ingredients []domain.Ingredient) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, ing := range ingredients {
		if _, ok := s.ranges[ing.ID]; ok {
			continue
		}
		s.ranges[ing.ID] = initialRange(ing)
		added++
	}
	if added > 0 {
		s.log.Debug("initialized %d quantity overrides (total=%d)", added, len(s.ranges))
	}
}

// initialRange derives min/max from the ingredient's explicit bounds, or
// from 80%/120% of the committed quantity. current starts at the committed
// quantity and is pulled into the range so the invariant holds even for
// explicit bounds that exclude it.
func initialRange(ing domain.Ingredient) domain.QuantityRange {
	lo := ing.Quantity * DefaultMinFactor
	if ing.MinQuantity != nil {
		lo = *ing.MinQuantity
	}
	hi := ing.Quantity * DefaultMaxFactor
	if ing.MaxQuantity != nil {
		hi = *ing.MaxQuantity
	}
	lo, hi = bounds(lo, hi)
	return domain.QuantityRange{
		Min:     lo,
		Max:     hi,
		Current: clamp(ing.Quantity, lo, hi),
	}
}

// SetCurrent clamps value into the id's range and stores it. Ids without
// a range are ignored.
func (s *Store) SetCurrent(id string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.ranges[id]
	if !ok {
		s.log.Debug("set current: no override for %s, dropped", id)
		return
	}
	r.Current = clamp(value, r.Min, r.Max)
	s.ranges[id] = r
	s.log.Debug("override %s current=%g", id, r.Current)
}

// SetRange replaces the id's bounds. min is floored at 0 and max is raised
// to meet min if the caller inverted them; current is then re-clamped.
// A NaN min reads as 0 and a NaN max as min.
// Ids without a range are ignored.
func (s *Store) SetRange(id string, newMin, newMax float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.ranges[id]
	if !ok {
		s.log.Debug("set range: no override for %s, dropped", id)
		return
	}
	lo, hi := bounds(newMin, newMax)
	s.ranges[id] = domain.QuantityRange{
		Min:     lo,
		Max:     hi,
		Current: clamp(r.Current, lo, hi),
	}
	s.log.Debug("override %s range=[%g, %g]", id, lo, hi)
}

// SetFixed records the fixed/variable toggle. It does not need a range.
func (s *Store) SetFixed(id string, isFixed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixed[id] = isFixed
}

// Range returns the override for id.
func (s *Store) Range(id string) (domain.QuantityRange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.ranges[id]
	return r, ok
}

// IsFixed reports the toggle for ing, defaulting to !ing.IsVariable.
func (s *Store) IsFixed(ing domain.Ingredient) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f, ok := s.fixed[ing.ID]; ok {
		return f
	}
	return !ing.IsVariable
}

// Len returns the number of initialized ranges.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ranges)
}

// bounds orders a min/max pair: min floored at 0, max at least min.
func bounds(lo, hi float64) (float64, float64) {
	if math.IsNaN(lo) {
		lo = 0
	}
	lo = math.Max(0, lo)
	if math.IsNaN(hi) {
		hi = lo
	}
	return lo, math.Max(lo, hi)
}

// clamp pulls v into [lo, hi]. NaN collapses to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
