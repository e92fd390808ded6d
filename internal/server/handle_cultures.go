package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/globalvillage/api/internal/dataset"
	"github.com/globalvillage/api/internal/worldatlas"
)

// RegisterRequest is the legacy batch registration payload.
type RegisterRequest struct {
	Cards []worldatlas.LegacyCard `json:"cards"`
}

// RegisterResponse reports how many cards the batch actually added.
type RegisterResponse struct {
	Added int `json:"added"`
	Total int `json:"total"`
}

func handleCultureList(store *dataset.Store) http.HandlerFunc {
	type response struct {
		Total int                      `json:"total"`
		Items []worldatlas.CultureCard `json:"items"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		continent := r.URL.Query().Get("continent")

		var items []worldatlas.CultureCard
		if continent == "" {
			items = store.All()
		} else {
			items = store.ByContinent(continent)
		}

		writeJSON(w, http.StatusOK, response{Total: len(items), Items: items})
	}
}

func handleCultureDetail(store *dataset.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		card, ok := store.Find(name)
		if !ok {
			writeError(w, http.StatusNotFound, "country not found")
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}

func handleCultureRegister(store *dataset.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		added := store.Register(req.Cards)
		logger.Info("legacy cards registered",
			"received", len(req.Cards),
			"added", added,
			"total", store.Len(),
		)

		writeJSON(w, http.StatusOK, RegisterResponse{Added: added, Total: store.Len()})
	}
}
