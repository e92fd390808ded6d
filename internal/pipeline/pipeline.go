// Package pipeline composes the country data flow:
// fetch → exclude → normalize/map → enrich. Every render of the card
// grid and every quiz pool build runs through here, so there is
// exactly one merge/normalize policy in the whole service.
package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/globalvillage/api/internal/quiz"
	"github.com/globalvillage/api/internal/restcountries"
	"github.com/globalvillage/api/internal/worldatlas"
)

type Pipeline struct {
	client *restcountries.Client
	cache  Cache
	enrich map[string]worldatlas.Enrichment
	group  singleflight.Group
	logger *slog.Logger
}

// New wires a pipeline. enrich may be empty (enrichment unavailable);
// cards then carry only their canonical defaults.
func New(client *restcountries.Client, cache Cache, enrich map[string]worldatlas.Enrichment, logger *slog.Logger) *Pipeline {
	if enrich == nil {
		enrich = map[string]worldatlas.Enrichment{}
	}
	return &Pipeline{
		client: client,
		cache:  cache,
		enrich: enrich,
		logger: logger,
	}
}

// countries returns the sorted upstream collection, serving from cache
// when fresh. Concurrent misses collapse into a single upstream fetch;
// whichever request triggered it, all of them see the same snapshot,
// so overlapping renders cannot interleave different generations.
func (p *Pipeline) countries(ctx context.Context) ([]worldatlas.RawCountry, error) {
	if cached, ok := p.cache.Get(ctx); ok {
		return cached, nil
	}

	v, err, _ := p.group.Do("countries", func() (any, error) {
		countries, err := p.client.All(ctx)
		if err != nil {
			return nil, err
		}
		p.cache.Set(ctx, countries)
		p.logger.Info("fetched country collection", "count", len(countries))
		return countries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]worldatlas.RawCountry), nil
}

// Cards runs the full pipeline and returns every canonical card,
// enriched where an overlay entry matches the country name. On any
// fetch failure the result is the error alone, never a partial list.
func (p *Pipeline) Cards(ctx context.Context) ([]worldatlas.Card, error) {
	raw, err := p.countries(ctx)
	if err != nil {
		return nil, err
	}

	visible := worldatlas.Exclude(raw)
	cards := make([]worldatlas.Card, 0, len(visible))
	for _, c := range visible {
		card := worldatlas.Normalize(c)
		if e, ok := p.enrich[card.Name]; ok {
			card = e.Apply(card)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Pool builds the quiz country pool: excluded and unnamed countries
// are dropped, dependent territories are pruned, and names are
// deduplicated case-insensitively.
func (p *Pipeline) Pool(ctx context.Context) ([]quiz.Country, error) {
	raw, err := p.countries(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(raw))
	pool := make([]quiz.Country, 0, len(raw))
	for _, c := range worldatlas.Exclude(raw) {
		name := worldatlas.CommonName(c)
		if name == worldatlas.Unknown {
			continue
		}
		if c.Independent != nil && !*c.Independent {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		pool = append(pool, quiz.Country{Name: name, Flag: worldatlas.FlagURL(c)})
	}
	return pool, nil
}

// Filter narrows cards to an exact region match and a case-insensitive
// name search. Empty arguments pass everything through.
func Filter(cards []worldatlas.Card, region, query string) []worldatlas.Card {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]worldatlas.Card, 0, len(cards))
	for _, c := range cards {
		if region != "" && c.Region != region {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(c.Name), query) {
			continue
		}
		out = append(out, c)
	}
	return out
}
