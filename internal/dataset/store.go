// Package dataset owns the in-memory culture dataset: the curated
// continent cards plus any legacy batches registered at runtime. A
// single Store instance replaces the scattered global mutation the
// site grew up with; merge and lookup go through it explicitly.
package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/globalvillage/api/internal/worldatlas"
)

//go:embed seed.json
var seedData []byte

type Store struct {
	mu    sync.RWMutex
	cards []worldatlas.CultureCard
	seen  map[string]struct{}
}

// NewStore returns a store seeded with the embedded curated dataset.
func NewStore() (*Store, error) {
	var seed []worldatlas.CultureCard
	if err := json.Unmarshal(seedData, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed dataset: %w", err)
	}

	s := &Store{seen: make(map[string]struct{}, len(seed))}
	for _, c := range seed {
		s.cards = append(s.cards, c)
		s.seen[worldatlas.Key(c.Name, c.Continent)] = struct{}{}
	}
	return s, nil
}

// Register adapts a legacy-format batch and merges it in. Records
// missing name or continent are skipped, as are records whose
// name|continent key is already present. The merge is an idempotent,
// order-preserving union: registering the same batch twice adds
// nothing the second time. Returns the number of cards added.
func (s *Store) Register(batch []worldatlas.LegacyCard) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, legacy := range batch {
		card, err := worldatlas.AdaptLegacy(legacy)
		if err != nil {
			continue
		}
		key := worldatlas.Key(card.Name, card.Continent)
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.cards = append(s.cards, card)
		s.seen[key] = struct{}{}
		added++
	}
	return added
}

// All returns a copy of every card, in registration order.
func (s *Store) All() []worldatlas.CultureCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]worldatlas.CultureCard, len(s.cards))
	copy(out, s.cards)
	return out
}

// ByContinent returns the cards of one continent, preserving order.
func (s *Store) ByContinent(continent string) []worldatlas.CultureCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]worldatlas.CultureCard, 0)
	for _, c := range s.cards {
		if c.Continent == continent {
			out = append(out, c)
		}
	}
	return out
}

// Find looks up a card by name, case-insensitively. The second result
// reports whether it exists.
func (s *Store) Find(name string) (worldatlas.CultureCard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cards {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return worldatlas.CultureCard{}, false
}

// Len reports the number of cards currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}
