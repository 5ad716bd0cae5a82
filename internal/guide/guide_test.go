package guide

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func testGuide() *Guide {
	return New(&Data{
		Species: []Species{
			{
				ID:             "common-pipistrelle",
				CommonName:     "Common Pipistrelle",
				ScientificName: "Pipistrellus pipistrellus",
				Group:          "Mammals",
				Habitats:       []string{"hedgerow", "woodland"},
				Notes:          "Our smallest bat, often the first out at dusk.",
				Seasonality:    map[string]string{"Summer": "Feeding over the rides", "Winter": ""},
			},
			{
				ID:          "barn-owl",
				CommonName:  "Barn Owl",
				Group:       "Birds",
				Habitats:    []string{"grassland"},
				WatchFor:    "Ghostly hunting flights at dawn",
				Seasonality: map[string]string{"Winter": "Hunts in daylight after hard frosts"},
			},
			{
				ID:         "meadow-brown",
				CommonName: "Meadow Brown",
				Group:      "Insects",
				Habitats:   []string{"grassland", "hedgerow"},
			},
		},
		Habitats: []Habitat{
			{ID: "grassland", Name: "Grassland"},
			{ID: "hedgerow", Name: "Hedgerow"},
			{ID: "woodland", Name: "Woodland"},
		},
	})
}

func TestFilterByQuery(t *testing.T) {
	g := testGuide()

	if got := g.Filter("", nil, nil, nil); len(got) != 3 {
		t.Fatalf("expected all 3 species, got %d", len(got))
	}

	// Scientific name is searchable.
	got := g.Filter("pipistrellus", nil, nil, nil)
	if len(got) != 1 || got[0].ID != "common-pipistrelle" {
		t.Errorf("scientific name match failed: %v", got)
	}

	// WatchFor text is searchable.
	got = g.Filter("ghostly", nil, nil, nil)
	if len(got) != 1 || got[0].ID != "barn-owl" {
		t.Errorf("watch-for match failed: %v", got)
	}

	if got = g.Filter("kraken", nil, nil, nil); len(got) != 0 {
		t.Errorf("expected no match, got %v", got)
	}
}

func TestFilterByGroupHabitatSeason(t *testing.T) {
	g := testGuide()

	got := g.Filter("", []string{"birds"}, nil, nil)
	if len(got) != 1 || got[0].ID != "barn-owl" {
		t.Errorf("group filter failed: %v", got)
	}

	got = g.Filter("", nil, []string{"hedgerow"}, nil)
	if len(got) != 2 {
		t.Errorf("expected 2 hedgerow species, got %d", len(got))
	}

	// Season matches only when the note is non-empty.
	got = g.Filter("", nil, nil, []string{"winter"})
	if len(got) != 1 || got[0].ID != "barn-owl" {
		t.Errorf("season filter failed: %v", got)
	}

	// Filters combine.
	got = g.Filter("bat", []string{"mammals"}, []string{"woodland"}, []string{"summer"})
	if len(got) != 1 || got[0].ID != "common-pipistrelle" {
		t.Errorf("combined filter failed: %v", got)
	}
}

func TestGroupsAndFind(t *testing.T) {
	g := testGuide()

	groups := g.Groups()
	want := []string{"Birds", "Insects", "Mammals"}
	if len(groups) != 3 || groups[0] != want[0] || groups[2] != want[2] {
		t.Errorf("expected %v, got %v", want, groups)
	}

	if _, ok := g.Find("barn-owl"); !ok {
		t.Error("expected to find barn-owl")
	}
	if _, ok := g.Find("dodo"); ok {
		t.Error("expected miss for unknown species")
	}
}

func TestEmptyGuide(t *testing.T) {
	g := New(nil)
	if got := g.Filter("anything", nil, nil, nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

// HTTP handler tests

func TestRoute_SpeciesAndFilters(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, testGuide())

	req := httptest.NewRequest("GET", "/api/guide/species?group=insects", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Species []Species `json:"species"`
		Count   int       `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 1 || resp.Species[0].ID != "meadow-brown" {
		t.Errorf("unexpected response: %+v", resp)
	}

	req = httptest.NewRequest("GET", "/api/guide/species/barn-owl", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/guide/species/dodo", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/guide/filters", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var filters struct {
		Groups   []string  `json:"groups"`
		Habitats []Habitat `json:"habitats"`
		Seasons  []string  `json:"seasons"`
	}
	json.Unmarshal(w.Body.Bytes(), &filters)
	if len(filters.Groups) != 3 || len(filters.Habitats) != 3 || len(filters.Seasons) != 4 {
		t.Errorf("unexpected filters: %+v", filters)
	}
}
