package gallery

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the photo gallery endpoints.
func RegisterRoutes(r chi.Router, g *Gallery) {
	r.Route("/api/gallery", func(r chi.Router) {
		r.Get("/", handleImages(g))
		r.Get("/categories", handleCategories(g))
	})
}

func handleImages(g *Gallery) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var categories []string
		for _, chunk := range r.URL.Query()["category"] {
			for _, c := range strings.Split(chunk, ",") {
				if c = strings.TrimSpace(c); c != "" {
					categories = append(categories, c)
				}
			}
		}

		images := g.Filter(r.URL.Query().Get("query"), categories)
		if images == nil {
			images = []Image{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"images": images,
			"count":  len(images),
		})
	}
}

func handleCategories(g *Gallery) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]string{"categories": g.Categories()})
	}
}
