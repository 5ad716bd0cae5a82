package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// The generated narrative must be byte-identical across runs and platforms
// for the same entry, so the generator draws from fixed pools using a
// PRNG seeded from the entry id: FNV-1a over the seed string feeding a
// 32-bit xorshift.

var narrativeOpenings = []string{
	"You arrive as if the map itself has leaned in to whisper a secret.",
	"Step closer. This corner of the farm has a small story it's been saving for you.",
	"If wilding had a voice, it would sound like this: quiet, busy, and delightfully alive.",
	"Here's one of those places that looks like an illustration - until it starts moving.",
}

var narrativeMoods = []string{
	"tender and practical",
	"slightly mischievous",
	"ancient-feeling, but very present",
	"alive with tiny, purposeful drama",
	"calm on the surface, bustling underneath",
}

var narrativeSenses = []string{
	"listen for the hush of wings",
	"watch for a flicker in the hedge line",
	"notice how the ground tells on itself",
	"let your eyes follow the pathways of chance",
	"remember: the smallest lives do the most work",
}

var narrativeClosings = []string{
	"Leave it a little wilder than you found it - by simply noticing it.",
	"Wilding isn't a single act; it's a long conversation. This is one of the best sentences.",
	"Carry the feeling forward: life loves edges, textures, and gentle neglect.",
	"If you're lucky, you'll spot the next chapter before you even turn away.",
}

// seededRand builds a deterministic [0,1) generator from a string seed.
func seededRand(seed string) func() float64 {
	h := uint32(2166136261)
	for i := 0; i < len(seed); i++ {
		h ^= uint32(seed[i])
		h *= 16777619
	}
	x := h
	return func() float64 {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		return float64(x) / 4294967296
	}
}

func pickLine(rng func() float64, pool []string) string {
	return pool[int(rng()*float64(len(pool)))]
}

var (
	factNumbers = regexp.MustCompile(`\b(1[0-9]{3}|20[0-9]{2}|\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?)\b`)
	factLatin   = regexp.MustCompile(`\b[A-Z][a-z]+ [a-z]{3,}\b`)
	factShouty  = regexp.MustCompile(`^[A-Z0-9 '\-:!]{8,}$`)
)

// ExtractFacts pulls up to four standout fragments from long-form text:
// notable numbers, Latin-binomial-looking phrases, and short all-caps
// standout lines.
func ExtractFacts(text string) []string {
	var facts []string

	nums := uniqueStrings(factNumbers.FindAllString(text, -1))
	if len(nums) > 4 {
		nums = nums[:4]
	}
	if len(nums) > 0 {
		facts = append(facts, fmt.Sprintf("Notable numbers: %s.", strings.Join(nums, ", ")))
	}

	latin := uniqueStrings(factLatin.FindAllString(text, -1))
	if len(latin) > 3 {
		latin = latin[:3]
	}
	if len(latin) > 0 {
		facts = append(facts, fmt.Sprintf("Species spotted: %s.", strings.Join(latin, ", ")))
	}

	shouty := 0
	for _, line := range strings.Split(normalizeNewlines(text), "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 18 || len(line) > 60 {
			continue
		}
		if !factShouty.MatchString(line) {
			continue
		}
		facts = append(facts, fmt.Sprintf("%q", line))
		shouty++
		if shouty == 2 {
			break
		}
	}

	if len(facts) > 4 {
		facts = facts[:4]
	}
	return facts
}

// GenerateNarrative composes a short markdown story for an entry that has
// no explicit one. Same id and base text always produce the same bytes.
func GenerateNarrative(r Resolved) string {
	seed := r.ID
	if seed == "" {
		seed = r.Title
	}
	if seed == "" {
		seed = "wilding"
	}
	rng := seededRand(seed)

	title := r.Title
	if title == "" {
		title = "A wilding feature"
	}
	tags := r.Tags
	if len(tags) > 5 {
		tags = tags[:5]
	}

	tagLine := "It's a place that sits between intention and surprise."
	if len(tags) > 0 {
		tagLine = fmt.Sprintf("It's a place that sits somewhere between %s - and whatever comes next.", strings.Join(tags, ", "))
	}

	p1 := fmt.Sprintf("**%s.** %s", title, pickLine(rng, narrativeOpenings))
	p2 := fmt.Sprintf("Up close, it feels *%s*. %s. %s", pickLine(rng, narrativeMoods), pickLine(rng, narrativeSenses), tagLine)

	p3 := "What matters here isn't perfection - it's permission. Space for creatures to shelter, forage, argue, and thrive."
	if facts := ExtractFacts(r.Text); len(facts) > 0 {
		p3 = fmt.Sprintf("A few clues from the board: %s", strings.Join(facts, " "))
	}

	p4 := pickLine(rng, narrativeClosings)

	return strings.Join([]string{p1, p2, p3, p4}, "\n\n")
}

func uniqueStrings(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
