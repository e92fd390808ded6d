package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/globalvillage/api/internal/pipeline"
	"github.com/globalvillage/api/internal/quiz"
	"github.com/globalvillage/api/internal/worldatlas"
)

// CountrySource produces the canonical country cards and the quiz pool.
type CountrySource interface {
	Cards(ctx context.Context) ([]worldatlas.Card, error)
	Pool(ctx context.Context) ([]quiz.Country, error)
}

const (
	defaultPageSize = 30
	maxPageSize     = 100

	errCountriesUnavailable = "Sorry, we couldn't load countries or cultural data right now."
)

// CountryListResponse is one page of the filtered card collection.
type CountryListResponse struct {
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Items    []worldatlas.Card `json:"items"`
}

func handleContinents() http.HandlerFunc {
	type response struct {
		Continents []string `json:"continents"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, response{Continents: worldatlas.Continents()})
	}
}

func handleCountryList(src CountrySource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards, err := src.Cards(r.Context())
		if err != nil {
			writeError(w, http.StatusBadGateway, errCountriesUnavailable)
			return
		}

		q := r.URL.Query()
		cards = pipeline.Filter(cards, q.Get("region"), q.Get("q"))

		page := queryInt(q.Get("page"), 1)
		if page < 1 {
			page = 1
		}
		size := queryInt(q.Get("page_size"), defaultPageSize)
		if size < 1 {
			size = defaultPageSize
		}
		if size > maxPageSize {
			size = maxPageSize
		}

		total := len(cards)
		start := (page - 1) * size
		if start > total {
			start = total
		}
		end := start + size
		if end > total {
			end = total
		}

		writeJSON(w, http.StatusOK, CountryListResponse{
			Total:    total,
			Page:     page,
			PageSize: size,
			Items:    cards[start:end],
		})
	}
}

// handleCountryDetail resolves a name to a card. An exact match wins,
// then the first substring match, and an unknown name still yields a
// fully defaulted card rather than a 404.
func handleCountryDetail(src CountrySource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		cards, err := src.Cards(r.Context())
		if err != nil {
			writeError(w, http.StatusBadGateway, errCountriesUnavailable)
			return
		}

		for _, c := range cards {
			if strings.EqualFold(c.Name, name) {
				writeJSON(w, http.StatusOK, c)
				return
			}
		}
		lower := strings.ToLower(name)
		for _, c := range cards {
			if strings.Contains(strings.ToLower(c.Name), lower) {
				writeJSON(w, http.StatusOK, c)
				return
			}
		}

		card := worldatlas.Normalize(worldatlas.RawCountry{})
		card.Name = name
		writeJSON(w, http.StatusOK, card)
	}
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
