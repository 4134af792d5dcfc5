package card

import (
	"sort"
	"sync"

	"github.com/hammamikhairi/ottocost/internal/logger"
)

// Board keeps one card per recipe id. Cards survive recipe switches; they
// only go away when the recipe is deleted.
type Board struct {
	mu    sync.Mutex
	cards map[string]*Card
	log   *logger.Logger
}

// NewBoard creates an empty board.
func NewBoard(log *logger.Logger) *Board {
	return &Board{
		cards: make(map[string]*Card),
		log:   log,
	}
}

// Card returns the card for recipeID, creating an idle one on first use.
func (b *Board) Card(recipeID string) *Card {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.cards[recipeID]
	if !ok {
		c = New(recipeID, b.log)
		b.cards[recipeID] = c
	}
	return c
}

// Drop forgets the card for recipeID.
func (b *Board) Drop(recipeID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.cards, recipeID)
}

// Editing returns the sorted ids of recipes with pending changes.
func (b *Board) Editing() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var ids []string
	for id, c := range b.cards {
		if c.PendingCount() > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
