package media

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the media library endpoints. Enrichment is an
// admin action, so that route is wrapped with the supplied middleware.
func RegisterRoutes(r chi.Router, lib *Library, enricher *Enricher, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/api/media", func(r chi.Router) {
		r.Get("/", handleItems(lib))
		r.Get("/featured", handleFeatured(lib))
		r.Get("/tags", handleMediaTags(lib))

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/enrich", handleEnrich(lib, enricher))
		})
	})
}

func handleItems(lib *Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := FilterOptions{
			Query: r.URL.Query().Get("query"),
			From:  r.URL.Query().Get("from"),
			To:    r.URL.Query().Get("to"),
			Sort:  r.URL.Query().Get("sort"),
		}
		for _, chunk := range r.URL.Query()["type"] {
			for _, t := range strings.Split(chunk, ",") {
				if t = strings.TrimSpace(t); t != "" {
					opts.Types = append(opts.Types, ItemType(t))
				}
			}
		}
		for _, chunk := range r.URL.Query()["tags"] {
			for _, t := range strings.Split(chunk, ",") {
				if t = strings.TrimSpace(t); t != "" {
					opts.Tags = append(opts.Tags, t)
				}
			}
		}

		items, err := lib.Filter(opts)
		if err != nil {
			http.Error(w, `{"error":"failed to list media"}`, http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []Item{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"items": items,
			"count": len(items),
		})
	}
}

func handleFeatured(lib *Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featured, err := lib.Featured()
		if err != nil {
			http.Error(w, `{"error":"failed to load featured item"}`, http.StatusInternalServerError)
			return
		}
		if featured == nil {
			http.Error(w, `{"error":"no featured item"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(featured)
	}
}

func handleMediaTags(lib *Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]string{"tags": lib.AllTags()})
	}
}

func handleEnrich(lib *Library, enricher *Enricher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fetched, err := enricher.EnrichAll(lib, nil)
		if err != nil {
			http.Error(w, `{"error":"enrichment failed"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"fetched": fetched})
	}
}
