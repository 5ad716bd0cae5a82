package catalog

import "strings"

// SeasonalNotes derives deterministic per-season viewing hints from keyword
// probes over the effective title, tags, and base text.
func SeasonalNotes(r Resolved) map[string]string {
	title := strings.ToLower(r.Title)
	text := strings.ToLower(r.Text)
	tags := make([]string, len(r.Tags))
	for i, t := range r.Tags {
		tags[i] = strings.ToLower(t)
	}

	has := func(k string) bool {
		if strings.Contains(title, k) || strings.Contains(text, k) {
			return true
		}
		for _, t := range tags {
			if strings.Contains(t, k) {
				return true
			}
		}
		return false
	}

	choose := func(cond bool, yes, no string) string {
		if cond {
			return yes
		}
		return no
	}

	spring := []string{
		choose(has("bee") || has("insect"),
			"Look for early pollinator activity on warm, still days.",
			"Notice the first flush of growth along edges and paths."),
		choose(has("bird"),
			"Listen for busy nesting chatter and dawn choruses.",
			"Watch for fresh leaves, buds, and the first wildflowers."),
	}
	summer := []string{
		choose(has("bee") || has("insect"),
			"Midday can be loud with wingbeats - scan flowers and sunny banks.",
			"Follow the heat: where sun meets shade is where the action is."),
		choose(has("bat"),
			"At dusk, watch for bats feeding above hedges and open rides.",
			"Bring slow attention: tiny movements often reveal the best sightings."),
	}
	autumn := []string{
		choose(has("seed") || has("track"),
			"Notice seed heads and textures - this is a season of structure and decay.",
			"Look for ripening berries, fungi, and the changing palette."),
		choose(has("stone"),
			"Low light makes shapes pop - great for noticing stones, contours, and shelter spots.",
			"Watch for late nectar sources and busy foraging before winter."),
	}
	winter := []string{
		choose(has("hibern") || has("bat"),
			"This is shelter season - think crevices, cavities, and quiet corners.",
			"Read the land by tracks, stems, and silhouettes."),
		choose(has("bird"),
			"Winter birds love food and cover - scan hedges and evergreen pockets.",
			"Even 'still' places are alive - move slowly and you'll spot it."),
	}

	return map[string]string{
		"Spring": strings.Join(spring, " "),
		"Summer": strings.Join(summer, " "),
		"Autumn": strings.Join(autumn, " "),
		"Winter": strings.Join(winter, " "),
	}
}
