package mapview

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the map endpoints. Pick mode is an admin gesture,
// so those routes are wrapped with the supplied auth middleware.
func RegisterRoutes(r chi.Router, m *Map, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/api/map", func(r chi.Router) {
		r.Get("/pins", handlePins(m))
		r.Post("/visit", handleVisit(m))

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/pick", handlePick(m))
			r.Post("/click", handleClick(m))
		})
	})
}

func handlePins(m *Map) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pins, err := m.VisiblePins()
		if err != nil {
			http.Error(w, `{"error":"failed to collect pins"}`, http.StatusInternalServerError)
			return
		}
		if pins == nil {
			pins = []PinView{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"pins": pins})
	}
}

type visitRequest struct {
	ID string `json:"id"`
}

func handleVisit(m *Map) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req visitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.ID == "" {
			http.Error(w, `{"error":"id is required"}`, http.StatusBadRequest)
			return
		}

		added, err := m.MarkVisited(req.ID)
		if err != nil {
			http.Error(w, `{"error":"failed to record visit"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"added": added})
	}
}

type pickRequest struct {
	Target PickTarget `json:"target"`
}

func handlePick(m *Map) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pickRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		if err := m.SetPickMode(req.Target); err != nil {
			http.Error(w, `{"error":"target must be edit, create, or empty"}`, http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]PickTarget{"picking": m.PickMode()})
	}
}

type clickRequest struct {
	XPct float64 `json:"xPct"`
	YPct float64 `json:"yPct"`
}

func handleClick(m *Map) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clickRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		result := m.Click(req.XPct, req.YPct)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}
