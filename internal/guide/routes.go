package guide

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the field guide endpoints.
func RegisterRoutes(r chi.Router, g *Guide) {
	r.Route("/api/guide", func(r chi.Router) {
		r.Get("/species", handleSpecies(g))
		r.Get("/species/{id}", handleSpeciesByID(g))
		r.Get("/filters", handleFilters(g))
	})
}

func multiParam(r *http.Request, name string) []string {
	var out []string
	for _, chunk := range r.URL.Query()[name] {
		for _, v := range strings.Split(chunk, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func handleSpecies(g *Guide) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := g.Filter(
			r.URL.Query().Get("query"),
			multiParam(r, "group"),
			multiParam(r, "habitat"),
			multiParam(r, "season"),
		)
		if list == nil {
			list = []Species{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"species": list,
			"count":   len(list),
		})
	}
}

func handleSpeciesByID(g *Guide) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := g.Find(chi.URLParam(r, "id"))
		if !ok {
			http.Error(w, `{"error":"species not found"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s)
	}
}

func handleFilters(g *Guide) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		habitats := g.Habitats()
		if habitats == nil {
			habitats = []Habitat{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"groups":   g.Groups(),
			"habitats": habitats,
			"seasons":  []string{"Spring", "Summer", "Autumn", "Winter"},
		})
	}
}
