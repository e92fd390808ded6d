package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/globalvillage/api/internal/restcountries"
	"github.com/globalvillage/api/internal/worldatlas"
)

const sampleCountries = `[
	{"name": {"common": "Brazil"}, "region": "Americas", "subregion": "South America",
	 "flags": {"png": "https://flagcdn.com/w320/br.png"}},
	{"name": {"common": "Israel"}, "region": "Asia",
	 "flags": {"png": "https://flagcdn.com/w320/il.png"}},
	{"name": {"common": "Japan"}, "region": "Asia",
	 "flags": {"png": "https://flagcdn.com/w320/jp.png"}},
	{"name": {"common": "Puerto Rico"}, "region": "Americas", "subregion": "Caribbean",
	 "flags": {"png": "https://flagcdn.com/w320/pr.png"}, "independent": false}
]`

func newTestPipeline(t *testing.T, handler http.HandlerFunc, enrich map[string]worldatlas.Enrichment) (*Pipeline, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := restcountries.NewClient(srv.URL, "globalvillage-test", 100)
	return New(client, NewMemoryCache(time.Minute), enrich, slog.New(slog.DiscardHandler)), &hits
}

func serveSample(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(sampleCountries))
}

func TestCardsEndToEnd(t *testing.T) {
	enrich := map[string]worldatlas.Enrichment{
		"Japan": {Foods: []string{"Sushi"}},
	}
	p, _ := newTestPipeline(t, serveSample, enrich)

	cards, err := p.Cards(context.Background())
	if err != nil {
		t.Fatalf("cards: %v", err)
	}

	byName := map[string]worldatlas.Card{}
	for _, c := range cards {
		byName[c.Name] = c
	}

	if _, ok := byName["Israel"]; ok {
		t.Error("excluded country rendered")
	}

	jp := byName["Japan"]
	if jp.Region != worldatlas.Asia {
		t.Errorf("japan region = %q", jp.Region)
	}
	if len(jp.Foods) != 1 || jp.Foods[0] != "Sushi" {
		t.Errorf("japan foods = %v, want enrichment override", jp.Foods)
	}

	br := byName["Brazil"]
	if br.Region != worldatlas.SouthAmerica {
		t.Errorf("brazil region = %q, want mapped continent", br.Region)
	}
	if len(br.Foods) != 1 || br.Foods[0] != "Traditional cuisine" {
		t.Errorf("brazil foods = %v, want canonical default", br.Foods)
	}
}

func TestCardsFetchFailure(t *testing.T) {
	p, _ := newTestPipeline(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}, nil)

	cards, err := p.Cards(context.Background())
	if !errors.Is(err, restcountries.ErrFetchFailed) {
		t.Errorf("err = %v, want ErrFetchFailed", err)
	}
	if cards != nil {
		t.Error("no partial cards on failure")
	}
}

func TestCacheAvoidsRefetch(t *testing.T) {
	p, hits := newTestPipeline(t, serveSample, nil)

	ctx := context.Background()
	if _, err := p.Cards(ctx); err != nil {
		t.Fatalf("first cards: %v", err)
	}
	if _, err := p.Cards(ctx); err != nil {
		t.Fatalf("second cards: %v", err)
	}
	if _, err := p.Pool(ctx); err != nil {
		t.Fatalf("pool: %v", err)
	}

	if got := hits.Load(); got != 1 {
		t.Errorf("upstream hits = %d, want 1", got)
	}
}

func TestPool(t *testing.T) {
	p, _ := newTestPipeline(t, serveSample, nil)

	pool, err := p.Pool(context.Background())
	if err != nil {
		t.Fatalf("pool: %v", err)
	}

	names := map[string]bool{}
	for _, c := range pool {
		names[c.Name] = true
		if c.Flag == "" {
			t.Errorf("%s has no flag", c.Name)
		}
	}

	if names["Israel"] {
		t.Error("excluded country in pool")
	}
	if names["Puerto Rico"] {
		t.Error("dependent territory in pool")
	}
	if !names["Japan"] || !names["Brazil"] {
		t.Errorf("pool = %v, missing expected countries", names)
	}
}

func TestFilter(t *testing.T) {
	cards := []worldatlas.Card{
		{Name: "Japan", Region: worldatlas.Asia},
		{Name: "Jamaica", Region: worldatlas.NorthAmerica},
		{Name: "Brazil", Region: worldatlas.SouthAmerica},
	}

	if got := Filter(cards, worldatlas.Asia, ""); len(got) != 1 || got[0].Name != "Japan" {
		t.Errorf("region filter = %v", got)
	}
	if got := Filter(cards, "", "ja"); len(got) != 2 {
		t.Errorf("query filter = %v, want Japan and Jamaica", got)
	}
	if got := Filter(cards, worldatlas.NorthAmerica, "ja"); len(got) != 1 || got[0].Name != "Jamaica" {
		t.Errorf("combined filter = %v", got)
	}
	if got := Filter(cards, "", ""); len(got) != 3 {
		t.Errorf("no filter = %v, want all", got)
	}
}
