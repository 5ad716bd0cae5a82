package tour

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the guided tour endpoints.
func RegisterRoutes(r chi.Router, t *Tour) {
	r.Route("/api/tour", func(r chi.Router) {
		r.Get("/", handleStatus(t))
		r.Post("/start", handleStart(t))
		r.Post("/next", handleStep(t, (*Tour).Next))
		r.Post("/prev", handleStep(t, (*Tour).Prev))
		r.Post("/jump", handleJump(t))
		r.Post("/end", handleEnd(t))
	})
}

func handleStatus(t *Tour) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(t.Status())
	}
}

func handleStart(t *Tour) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := t.Start()
		if err != nil {
			http.Error(w, `{"error":"failed to start tour"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}

func handleStep(t *Tour, step func(*Tour) (Status, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := step(t)
		if err != nil {
			http.Error(w, `{"error":"failed to step tour"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}

type jumpRequest struct {
	ID string `json:"id"`
}

func handleJump(t *Tour) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req jumpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.ID == "" {
			http.Error(w, `{"error":"id is required"}`, http.StatusBadRequest)
			return
		}

		status, err := t.JumpTo(req.ID)
		if err != nil {
			http.Error(w, `{"error":"failed to jump"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}

func handleEnd(t *Tour) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(t.End())
	}
}
