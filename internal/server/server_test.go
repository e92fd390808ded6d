package server

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/globalvillage/api/internal/database"
	"github.com/globalvillage/api/internal/dataset"
	"github.com/globalvillage/api/internal/migrations"
	"github.com/globalvillage/api/internal/quiz"
	"github.com/globalvillage/api/internal/worldatlas"
)

// stubSource serves fixed cards and a fixed pool, or fails when
// broken, standing in for the live pipeline.
type stubSource struct {
	cards  []worldatlas.Card
	pool   []quiz.Country
	broken bool
}

var errStubDown = errors.New("upstream down")

func (s *stubSource) Cards(context.Context) ([]worldatlas.Card, error) {
	if s.broken {
		return nil, errStubDown
	}
	return s.cards, nil
}

func (s *stubSource) Pool(context.Context) ([]quiz.Country, error) {
	if s.broken {
		return nil, errStubDown
	}
	return s.pool, nil
}

func testCards() []worldatlas.Card {
	names := []struct {
		name, region string
	}{
		{"Brazil", worldatlas.SouthAmerica},
		{"France", worldatlas.Europe},
		{"Japan", worldatlas.Asia},
		{"Kenya", worldatlas.Africa},
		{"Mexico", worldatlas.NorthAmerica},
		{"New Zealand", worldatlas.Oceania},
	}
	cards := make([]worldatlas.Card, 0, len(names))
	for _, n := range names {
		c := worldatlas.Normalize(worldatlas.RawCountry{})
		c.Name = n.name
		c.Region = n.region
		c.Flag = "https://flagcdn.com/" + n.name + ".svg"
		cards = append(cards, c)
	}
	return cards
}

func testPool() []quiz.Country {
	cards := testCards()
	pool := make([]quiz.Country, 0, len(cards))
	for _, c := range cards {
		pool = append(pool, quiz.Country{Name: c.Name, Flag: c.Flag})
	}
	return pool
}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return NewSQLiteStore(db)
}

func newTestCultures(t *testing.T) *dataset.Store {
	t.Helper()
	store, err := dataset.NewStore()
	if err != nil {
		t.Fatalf("load culture dataset: %v", err)
	}
	return store
}

func testRouter(t *testing.T, src CountrySource) *chi.Mux {
	t.Helper()

	r := chi.NewRouter()
	addRoutes(r, slog.New(slog.DiscardHandler), Deps{
		Source:   src,
		Cultures: newTestCultures(t),
		Sessions: newTestStore(t),
	})
	return r
}
