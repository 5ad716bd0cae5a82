package guide

import (
	"sort"
	"strings"
)

// Species is one field guide record.
type Species struct {
	ID             string            `json:"id"`
	CommonName     string            `json:"commonName"`
	ScientificName string            `json:"scientificName,omitempty"`
	Group          string            `json:"group,omitempty"`
	Habitats       []string          `json:"habitats,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	WatchFor       string            `json:"watchFor,omitempty"`
	Seasonality    map[string]string `json:"seasonality,omitempty"`
	Conservation   string            `json:"conservation,omitempty"`
	Cover          *Cover            `json:"cover,omitempty"`
	Sources        []string          `json:"sources,omitempty"`
}

// Cover is the species card image with its credit line.
type Cover struct {
	Src    string `json:"src"`
	Credit string `json:"credit,omitempty"`
}

// Habitat names a habitat zone species can be filtered by.
type Habitat struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Data is the field guide section of the content bundle.
type Data struct {
	Species  []Species `json:"species"`
	Habitats []Habitat `json:"habitats,omitempty"`
}

// Guide answers filtered views over the bundled species list.
type Guide struct {
	species  []Species
	habitats []Habitat
}

// New builds a guide from the bundle's field guide section.
func New(data *Data) *Guide {
	if data == nil {
		return &Guide{}
	}
	return &Guide{species: data.Species, habitats: data.Habitats}
}

// Species returns all records in bundle order.
func (g *Guide) Species() []Species {
	return g.species
}

// Find returns the species with the given id.
func (g *Guide) Find(id string) (Species, bool) {
	for _, s := range g.species {
		if s.ID == id {
			return s, true
		}
	}
	return Species{}, false
}

// Filter returns the species matching a free-text query plus group,
// habitat, and season filters. A species matches a season when its
// seasonality table has a non-empty entry for it.
func (g *Guide) Filter(query string, groups, habitats, seasons []string) []Species {
	q := strings.ToLower(strings.TrimSpace(query))
	wantGroups := toSet(groups)
	wantHabitats := toSet(habitats)

	var out []Species
	for _, s := range g.species {
		if q != "" && !strings.Contains(haystack(s), q) {
			continue
		}
		if len(wantGroups) > 0 && !wantGroups[strings.ToLower(s.Group)] {
			continue
		}
		if len(wantHabitats) > 0 && !hasAnyHabitat(s.Habitats, wantHabitats) {
			continue
		}
		if len(seasons) > 0 && !activeInAny(s.Seasonality, seasons) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Groups returns every group used across the guide, sorted.
func (g *Guide) Groups() []string {
	seen := map[string]bool{}
	for _, s := range g.species {
		if s.Group != "" {
			seen[s.Group] = true
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Habitats returns the bundle's habitat list.
func (g *Guide) Habitats() []Habitat {
	return g.habitats
}

func haystack(s Species) string {
	return strings.ToLower(strings.Join([]string{
		s.CommonName,
		s.ScientificName,
		s.Group,
		strings.Join(s.Habitats, " "),
		s.Notes,
		s.WatchFor,
	}, " "))
}

func toSet(values []string) map[string]bool {
	set := map[string]bool{}
	for _, v := range values {
		if v != "" {
			set[strings.ToLower(v)] = true
		}
	}
	return set
}

func hasAnyHabitat(habitats []string, want map[string]bool) bool {
	for _, h := range habitats {
		if want[strings.ToLower(h)] {
			return true
		}
	}
	return false
}

func activeInAny(seasonality map[string]string, seasons []string) bool {
	for _, season := range seasons {
		for name, note := range seasonality {
			if strings.EqualFold(name, season) && note != "" {
				return true
			}
		}
	}
	return false
}
