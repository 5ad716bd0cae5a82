package mapview

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hookewild/curator/internal/catalog"
	"github.com/hookewild/curator/internal/db"
)

func setupTestMap(t *testing.T) (*catalog.Catalog, *Map) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	base := []catalog.Entry{
		{ID: "the-bat-egg", Title: "The Bat Egg"},
		{ID: "standing-stones", Title: "Standing Stones"},
		{ID: "no-pin", Title: "Somewhere Unmapped"},
	}
	cat, err := catalog.New(catalog.NewStore(database), base)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return cat, New(cat)
}

func TestVisiblePins(t *testing.T) {
	cat, m := setupTestMap(t)

	pins, err := m.VisiblePins()
	if err != nil {
		t.Fatalf("VisiblePins: %v", err)
	}
	// Two entries have static default pins; the third has no pin source.
	if len(pins) != 2 {
		t.Fatalf("expected 2 pins, got %d", len(pins))
	}
	for _, p := range pins {
		if p.Visited {
			t.Errorf("expected unvisited pin for %s", p.EntryID)
		}
	}

	// Hiding an entry removes its pin.
	cat.Store().SaveOverride("the-bat-egg", catalog.Override{Hidden: true})
	pins, _ = m.VisiblePins()
	if len(pins) != 1 || pins[0].EntryID != "standing-stones" {
		t.Fatalf("expected only standing-stones pin, got %v", pins)
	}

	// Visited state decorates the pin.
	m.MarkVisited("standing-stones")
	pins, _ = m.VisiblePins()
	if !pins[0].Visited {
		t.Error("expected visited flag after marking")
	}
}

func TestTourStops(t *testing.T) {
	cat, m := setupTestMap(t)

	stops, err := m.TourStops()
	if err != nil {
		t.Fatalf("TourStops: %v", err)
	}
	// The entry with no pin source must never become a stop, even though
	// the catalog lists it.
	if len(stops) != 2 {
		t.Fatalf("expected 2 stops, got %v", stops)
	}
	for _, s := range stops {
		if s.ID == "no-pin" {
			t.Fatal("pinless entry became a tour stop")
		}
	}
	if stops[0].Title != "Standing Stones" || stops[1].Title != "The Bat Egg" {
		t.Errorf("expected title order, got %v", stops)
	}

	// Stops track the visible pins: hiding an entry drops its stop too.
	cat.Store().SaveOverride("standing-stones", catalog.Override{Hidden: true})
	stops, _ = m.TourStops()
	if len(stops) != 1 || stops[0].ID != "the-bat-egg" {
		t.Fatalf("expected only the-bat-egg, got %v", stops)
	}
}

func TestCustomEntryPin(t *testing.T) {
	cat, m := setupTestMap(t)

	cat.Store().SaveCustomEntries([]catalog.Entry{{
		ID:    "my-pond",
		Title: "My Pond",
		Pin:   &catalog.Pin{XPct: 40, YPct: 60},
	}})
	if err := cat.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	pins, _ := m.VisiblePins()
	found := false
	for _, p := range pins {
		if p.EntryID == "my-pond" {
			found = true
			if p.Label != "My Pond" {
				t.Errorf("expected title label, got %q", p.Label)
			}
		}
	}
	if !found {
		t.Error("expected custom entry pin")
	}
}

func TestPickModeOneShot(t *testing.T) {
	_, m := setupTestMap(t)

	// No pick armed: clicks are plain navigation.
	if res := m.Click(10, 10); res.Picked {
		t.Error("expected unarmed click to pick nothing")
	}

	if err := m.SetPickMode(PickEdit); err != nil {
		t.Fatalf("SetPickMode: %v", err)
	}
	res := m.Click(150, -5)
	if !res.Picked || res.Target != PickEdit {
		t.Fatalf("expected edit pick, got %+v", res)
	}
	if res.XPct != 100 || res.YPct != 0 {
		t.Errorf("expected clamped coordinates, got %v,%v", res.XPct, res.YPct)
	}

	// Pick mode disarms after one click.
	if m.PickMode() != PickNone {
		t.Error("expected pick mode cleared")
	}
	if res := m.Click(10, 10); res.Picked {
		t.Error("expected second click to pick nothing")
	}

	if err := m.SetPickMode("bogus"); err == nil {
		t.Error("expected error for unknown target")
	}
}

// HTTP handler tests

func passthrough(next http.Handler) http.Handler { return next }

func TestRoute_PinsAndVisit(t *testing.T) {
	_, m := setupTestMap(t)
	r := chi.NewRouter()
	RegisterRoutes(r, m, passthrough)

	req := httptest.NewRequest("GET", "/api/map/pins", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Pins []PinView `json:"pins"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Pins) != 2 {
		t.Fatalf("expected 2 pins, got %d", len(resp.Pins))
	}

	req = httptest.NewRequest("POST", "/api/map/visit", strings.NewReader(`{"id":"the-bat-egg"}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var visit map[string]bool
	json.Unmarshal(w.Body.Bytes(), &visit)
	if !visit["added"] {
		t.Error("expected first visit to report added")
	}

	req = httptest.NewRequest("POST", "/api/map/visit", strings.NewReader(`{}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing id, got %d", w.Code)
	}
}

func TestRoute_PickAndClick(t *testing.T) {
	_, m := setupTestMap(t)
	r := chi.NewRouter()
	RegisterRoutes(r, m, passthrough)

	req := httptest.NewRequest("POST", "/api/map/pick", strings.NewReader(`{"target":"create"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest("POST", "/api/map/click", strings.NewReader(`{"xPct":33.3,"yPct":44.4}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var res ClickResult
	json.Unmarshal(w.Body.Bytes(), &res)
	if !res.Picked || res.Target != PickCreate || res.XPct != 33.3 {
		t.Errorf("unexpected click result: %+v", res)
	}

	req = httptest.NewRequest("POST", "/api/map/pick", strings.NewReader(`{"target":"sideways"}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad target, got %d", w.Code)
	}
}
