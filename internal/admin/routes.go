package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hookewild/curator/internal/catalog"
)

// RegisterRoutes mounts the admin API. Everything except unlock sits
// behind the session middleware. notify is invoked after each successful
// mutation so the change feed can fan out.
func RegisterRoutes(r chi.Router, svc *Service, sessions *Sessions, cat *catalog.Catalog, notify func(scope, id string)) {
	if notify == nil {
		notify = func(string, string) {}
	}

	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/unlock", handleUnlock(sessions))

		r.Group(func(r chi.Router) {
			r.Use(sessions.Middleware)

			r.Post("/lock", handleLock(sessions))
			r.Get("/entries", handleAdminList(cat))
			r.Post("/entries", handleCreate(svc, notify))
			r.Put("/entries/{id}", handleSave(svc, notify))
			r.Delete("/entries/{id}", handleDelete(svc, notify))
			r.Post("/entries/{id}/reset", handleReset(svc, notify))
			r.Post("/entries/{id}/hide", handleToggleHidden(svc, notify))
			r.Post("/entries/{id}/tags", handleAddTag(svc, notify))
			r.Delete("/entries/{id}/tags", handleRemoveTag(svc, notify))
			r.Delete("/entries/{id}/gallery/{imageID}", handleRemoveGalleryImage(svc, notify))
		})
	})
}

type unlockRequest struct {
	Password string `json:"password"`
}

func handleUnlock(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req unlockRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		token, err := sessions.Unlock(req.Password)
		if errors.Is(err, ErrBadPassword) {
			http.Error(w, `{"error":"incorrect password"}`, http.StatusUnauthorized)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"failed to unlock"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"token": token})
	}
}

func handleLock(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if err := sessions.Lock(token); err != nil {
			http.Error(w, `{"error":"failed to lock"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "locked"})
	}
}

func handleAdminList(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := cat.AdminList(r.URL.Query().Get("query"))
		if err != nil {
			http.Error(w, `{"error":"failed to list entries"}`, http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []catalog.Resolved{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"entries": list})
	}
}

func handleCreate(svc *Service, notify func(scope, id string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in EntryInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		created, err := svc.Create(in)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
		notify("entries", created.ID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func handleSave(svc *Service, notify func(scope, id string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in EntryInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		saved, err := svc.Save(id, in)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, `{"error":"entry not found"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		notify("entries", id)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(saved)
	}
}

type deleteRequest struct {
	Confirm bool   `json:"confirm"`
	Phrase  string `json:"phrase"`
}

func handleDelete(svc *Service, notify func(scope, id string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req deleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		err := svc.Delete(id, req.Confirm, req.Phrase)
		if errors.Is(err, ErrNotConfirmed) {
			http.Error(w, `{"error":"deletion not confirmed"}`, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrNotFound) {
			http.Error(w, `{"error":"entry not found"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		notify("entries", id)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
	}
}

func handleReset(svc *Service, notify func(scope, id string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		reset, err := svc.Reset(id)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, `{"error":"entry not found"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		notify("entries", id)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reset)
	}
}

func handleToggleHidden(svc *Service, notify func(scope, id string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		hidden, err := svc.ToggleHidden(id)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, `{"error":"entry not found"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		notify("entries", id)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"hidden": hidden})
	}
}

type tagRequest struct {
	Tag string `json:"tag"`
}

func handleAddTag(svc *Service, notify func(scope, id string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req tagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		tags, err := svc.AddTag(id, req.Tag)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, `{"error":"entry not found"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
		notify("entries", id)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]string{"tags": tags})
	}
}

func handleRemoveTag(svc *Service, notify func(scope, id string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req tagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		tags, err := svc.RemoveTag(id, req.Tag)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, `{"error":"entry not found"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		notify("entries", id)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]string{"tags": tags})
	}
}

func handleRemoveGalleryImage(svc *Service, notify func(scope, id string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		imageID := chi.URLParam(r, "imageID")

		err := svc.RemoveGalleryImage(id, imageID)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, `{"error":"entry not found"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusNotFound)
			return
		}
		notify("entries", id)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "removed"})
	}
}
