package catalog

// defaultPins places known shipped entries on the map. Editors move pins
// through overrides; these are only the out-of-the-box positions.
var defaultPins = []Pin{
	{EntryID: "the-bat-egg", Label: "The Bat Egg", XPct: 50.0, YPct: 22.0},
	{EntryID: "insect-homes", Label: "Insect Homes", XPct: 12.4, YPct: 26.2},
	{EntryID: "standing-stones", Label: "Standing Stones", XPct: 27.3, YPct: 49.4},
	{EntryID: "wild-bees-birds", Label: "Wild Bees & Birds", XPct: 43.1, YPct: 75.1},
	{EntryID: "our-sweet-track", Label: "Sweet Track", XPct: 88.3, YPct: 68.4},
	{EntryID: "hibernaculum", Label: "Hibernaculum", XPct: 92.9, YPct: 56.6},
	{EntryID: "mount-scotland", Label: "Mount Scotland", XPct: 40.4, YPct: 23.5},
}

// DefaultPin returns the static pin for a shipped entry id, or nil.
func DefaultPin(entryID string) *Pin {
	for i := range defaultPins {
		if defaultPins[i].EntryID == entryID {
			p := defaultPins[i]
			return &p
		}
	}
	return nil
}
