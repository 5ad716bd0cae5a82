package mapview

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hookewild/curator/internal/catalog"
)

// PickTarget says what a map click is currently feeding: the admin edit
// form or the admin create form. Empty means clicks are plain navigation.
type PickTarget string

const (
	PickNone   PickTarget = ""
	PickEdit   PickTarget = "edit"
	PickCreate PickTarget = "create"
)

// PinView is a map pin decorated with the viewer's visited state.
type PinView struct {
	catalog.Pin
	Visited bool `json:"visited"`
}

// ClickResult reports what a map click did. When Picked is true the
// coordinates were captured for the named form and pick mode has ended.
type ClickResult struct {
	Picked bool       `json:"picked"`
	Target PickTarget `json:"target,omitempty"`
	XPct   float64    `json:"xPct"`
	YPct   float64    `json:"yPct"`
}

// Map serves the site map: resolvable pins plus a one-shot coordinate pick
// mode used by the admin forms.
type Map struct {
	mu   sync.Mutex
	cat  *catalog.Catalog
	pick PickTarget
}

// New builds a map view over the catalog.
func New(cat *catalog.Catalog) *Map {
	return &Map{cat: cat}
}

// VisiblePins returns the pins for all entries that are neither hidden nor
// deleted and resolve to coordinates, each flagged with visited state.
func (m *Map) VisiblePins() ([]PinView, error) {
	visited, err := m.cat.Store().Visited()
	if err != nil {
		return nil, err
	}

	var pins []PinView
	for _, e := range m.cat.Entries() {
		r, err := m.cat.Resolve(e)
		if err != nil {
			return nil, err
		}
		if r.Hidden || r.Deleted || r.Pin == nil {
			continue
		}
		pins = append(pins, PinView{Pin: *r.Pin, Visited: visited[r.ID]})
	}
	return pins, nil
}

// TourStop is an entry the guided tour can stop at.
type TourStop struct {
	ID    string
	Title string
}

// TourStops returns the entries behind the visible pins, sorted by
// effective title. Entries without coordinates never become stops.
func (m *Map) TourStops() ([]TourStop, error) {
	var stops []TourStop
	for _, e := range m.cat.Entries() {
		r, err := m.cat.Resolve(e)
		if err != nil {
			return nil, err
		}
		if r.Hidden || r.Deleted || r.Pin == nil {
			continue
		}
		stops = append(stops, TourStop{ID: r.ID, Title: r.Title})
	}
	sort.Slice(stops, func(i, j int) bool { return stops[i].Title < stops[j].Title })
	return stops, nil
}

// MarkVisited records that an entry was opened. It reports whether the
// entry was newly visited.
func (m *Map) MarkVisited(id string) (bool, error) {
	return m.cat.Store().MarkVisited(id)
}

// SetPickMode arms (or disarms, with PickNone) coordinate picking.
func (m *Map) SetPickMode(target PickTarget) error {
	switch target {
	case PickNone, PickEdit, PickCreate:
	default:
		return fmt.Errorf("unknown pick target %q", target)
	}
	m.mu.Lock()
	m.pick = target
	m.mu.Unlock()
	return nil
}

// PickMode returns the currently armed pick target.
func (m *Map) PickMode() PickTarget {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pick
}

// Click handles a map click at percentage coordinates. In pick mode the
// click captures clamped coordinates for the armed form and pick mode ends;
// otherwise the click is plain navigation and nothing is captured.
func (m *Map) Click(xPct, yPct float64) ClickResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pick == PickNone {
		return ClickResult{}
	}
	target := m.pick
	m.pick = PickNone
	return ClickResult{
		Picked: true,
		Target: target,
		XPct:   clampPct(xPct),
		YPct:   clampPct(yPct),
	}
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
