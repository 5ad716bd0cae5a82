package tour

import "sync"

// Stop is one tour position: an entry id and its display title at the time
// the tour was started.
type Stop struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Status is the tour state exposed to clients.
type Status struct {
	Active    bool   `json:"active"`
	Index     int    `json:"index"`
	Count     int    `json:"count"`
	CurrentID string `json:"currentId,omitempty"`
	Title     string `json:"title,omitempty"`
	FromID    string `json:"fromId,omitempty"`
}

// Tour walks visitors through the visible entries in title order. The stop
// list is snapshotted at start; edits made mid-tour do not reshuffle it.
// Stepping wraps at both ends, and every step marks its entry visited.
type Tour struct {
	mu       sync.Mutex
	active   bool
	stops    []Stop
	idx      int
	fromID   string
	snapshot func() ([]Stop, error)
	mark     func(id string) error
}

// New builds a tour. snapshot supplies the ordered stop list at start time;
// mark records an entry as visited.
func New(snapshot func() ([]Stop, error), mark func(id string) error) *Tour {
	return &Tour{snapshot: snapshot, mark: mark}
}

// Start snapshots the stop list and activates the tour at the first stop.
// With no stops available the tour simply stays idle.
func (t *Tour) Start() (Status, error) {
	stops, err := t.snapshot()
	if err != nil {
		return Status{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(stops) == 0 {
		t.active = false
		t.stops = nil
		return t.statusLocked(), nil
	}

	t.active = true
	t.stops = stops
	t.idx = 0
	t.fromID = ""
	if err := t.mark(stops[0].ID); err != nil {
		return Status{}, err
	}
	return t.statusLocked(), nil
}

// Next advances to the following stop, wrapping past the last one.
func (t *Tour) Next() (Status, error) { return t.step(1) }

// Prev steps back to the previous stop, wrapping before the first one.
func (t *Tour) Prev() (Status, error) { return t.step(-1) }

func (t *Tour) step(delta int) (Status, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return t.statusLocked(), nil
	}

	t.fromID = t.stops[t.idx].ID
	t.idx = (t.idx + delta + len(t.stops)) % len(t.stops)
	if err := t.mark(t.stops[t.idx].ID); err != nil {
		return Status{}, err
	}
	return t.statusLocked(), nil
}

// JumpTo moves straight to the stop with the given id. Jumping clears the
// "came from" marker since it is not a step.
func (t *Tour) JumpTo(id string) (Status, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return t.statusLocked(), nil
	}
	for i, s := range t.stops {
		if s.ID == id {
			t.idx = i
			t.fromID = ""
			if err := t.mark(id); err != nil {
				return Status{}, err
			}
			break
		}
	}
	return t.statusLocked(), nil
}

// End deactivates the tour and drops the snapshot.
func (t *Tour) End() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = false
	t.stops = nil
	t.idx = 0
	t.fromID = ""
	return t.statusLocked()
}

// SyncOpened realigns the tour when an entry is opened outside the tour
// controls, so Next and Prev continue from where the visitor actually is.
func (t *Tour) SyncOpened(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return
	}
	for i, s := range t.stops {
		if s.ID == id {
			t.idx = i
			t.fromID = ""
			return
		}
	}
}

// Status returns the current tour state.
func (t *Tour) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statusLocked()
}

func (t *Tour) statusLocked() Status {
	s := Status{Active: t.active, Count: len(t.stops)}
	if t.active && len(t.stops) > 0 {
		s.Index = t.idx
		s.CurrentID = t.stops[t.idx].ID
		s.Title = t.stops[t.idx].Title
		s.FromID = t.fromID
	}
	return s
}
