package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hookewild/curator/internal/catalog"
	"github.com/hookewild/curator/internal/db"
)

func ptr(v float64) *float64 { return &v }

func setupTest(t *testing.T) (*catalog.Catalog, *Service, *Sessions) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	base := []catalog.Entry{
		{ID: "the-bat-egg", Title: "The Bat Egg", Tags: []string{"bat"}},
		{ID: "standing-stones", Title: "Standing Stones", Tags: []string{"stone"}},
	}
	cat, err := catalog.New(catalog.NewStore(database), base)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sessions, err := NewSessions(database, "hunter2")
	if err != nil {
		t.Fatalf("NewSessions: %v", err)
	}
	return cat, NewService(cat), sessions
}

func TestUnlockAndLock(t *testing.T) {
	_, _, sessions := setupTest(t)

	if _, err := sessions.Unlock("wrong"); err != ErrBadPassword {
		t.Fatalf("expected ErrBadPassword, got %v", err)
	}

	token, err := sessions.Unlock("hunter2")
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	ok, _ := sessions.Valid(token)
	if !ok {
		t.Error("expected token to be valid")
	}
	if ok, _ := sessions.Valid("bogus"); ok {
		t.Error("expected unknown token to be invalid")
	}

	sessions.Lock(token)
	if ok, _ := sessions.Valid(token); ok {
		t.Error("expected revoked token to be invalid")
	}
}

func TestSessionsClearedOnStartup(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	first, _ := NewSessions(database, "pw")
	token, _ := first.Unlock("pw")

	// A new manager over the same database wipes existing sessions.
	second, _ := NewSessions(database, "pw")
	if ok, _ := second.Valid(token); ok {
		t.Error("expected old token invalid after restart")
	}
}

func TestCreateValidation(t *testing.T) {
	_, svc, _ := setupTest(t)

	cases := []EntryInput{
		{ImageDataURL: "data:img", PinX: ptr(1), PinY: ptr(2)},            // no title
		{Title: "Pond", PinX: ptr(1), PinY: ptr(2)},                       // no image
		{Title: "Pond", ImageDataURL: "data:img", PinX: ptr(1)},           // half a pin
		{Title: "Pond", ImageDataURL: "data:img"},                         // no pin
	}
	for i, in := range cases {
		if _, err := svc.Create(in); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestCreateAssignsUniqueID(t *testing.T) {
	cat, svc, _ := setupTest(t)

	in := EntryInput{
		Title:        "The Bat Egg",
		ImageDataURL: "data:img",
		Tags:         []string{"new"},
		PinLabel:     "Here",
		PinX:         ptr(30),
		PinY:         ptr(40),
	}
	created, err := svc.Create(in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// The slug collides with a shipped entry and gets a suffix.
	if created.ID != "the-bat-egg-2" {
		t.Errorf("expected the-bat-egg-2, got %q", created.ID)
	}
	if !created.IsCustom {
		t.Error("expected custom entry")
	}
	if created.Pin == nil || created.Pin.Label != "Here" || created.Pin.XPct != 30 {
		t.Errorf("unexpected pin: %+v", created.Pin)
	}

	e, ok := cat.Find("the-bat-egg-2")
	if !ok || !e.IsCustom {
		t.Error("expected created entry in catalog")
	}
}

func TestSaveShippedOverride(t *testing.T) {
	cat, svc, _ := setupTest(t)

	saved, err := svc.Save("the-bat-egg", EntryInput{
		Title:   "The Egg Reborn",
		Story:   "A new story.",
		Tags:    []string{"sculpture", "bat"},
		TagsSet: true,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Title != "The Egg Reborn" || saved.Story != "A new story." {
		t.Errorf("unexpected saved entry: %+v", saved)
	}
	if !reflect.DeepEqual(saved.Tags, []string{"bat", "sculpture"}) {
		t.Errorf("unexpected tags: %v", saved.Tags)
	}

	// The base entry is untouched; only the layered records changed.
	e, _ := cat.Find("the-bat-egg")
	if e.Title != "The Bat Egg" {
		t.Error("base entry mutated")
	}

	// Reset reverts to bundle state.
	reset, err := svc.Reset("the-bat-egg")
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if reset.Title != "The Bat Egg" || !reflect.DeepEqual(reset.Tags, []string{"bat"}) {
		t.Errorf("expected bundle state after reset, got %+v", reset)
	}
}

func TestSaveCustomInPlace(t *testing.T) {
	cat, svc, _ := setupTest(t)

	created, _ := svc.Create(EntryInput{
		Title: "My Pond", ImageDataURL: "data:img", PinX: ptr(1), PinY: ptr(2),
	})

	// Plant stray records to prove the save clears them.
	cat.Store().SaveOverride(created.ID, catalog.Override{Title: "Stray"})
	cat.Store().SaveTagOverride(created.ID, []string{"stray"})

	saved, err := svc.Save(created.ID, EntryInput{
		Title:   "My Bigger Pond",
		Tags:    []string{"water"},
		TagsSet: true,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Title != "My Bigger Pond" {
		t.Errorf("expected in-place title, got %q", saved.Title)
	}
	if !reflect.DeepEqual(saved.Tags, []string{"water"}) {
		t.Errorf("expected in-place tags, got %v", saved.Tags)
	}

	if o, _ := cat.Store().Override(created.ID); o != nil {
		t.Error("expected stray override cleared")
	}
	if _, has, _ := cat.Store().TagOverride(created.ID); has {
		t.Error("expected stray tag override cleared")
	}
}

func TestToggleHidden(t *testing.T) {
	_, svc, _ := setupTest(t)

	hidden, err := svc.ToggleHidden("the-bat-egg")
	if err != nil {
		t.Fatalf("ToggleHidden: %v", err)
	}
	if !hidden {
		t.Error("expected hidden after first toggle")
	}
	hidden, _ = svc.ToggleHidden("the-bat-egg")
	if hidden {
		t.Error("expected visible after second toggle")
	}
}

func TestDeleteRequiresBothConfirmations(t *testing.T) {
	cat, svc, _ := setupTest(t)

	if err := svc.Delete("the-bat-egg", false, DeletePhrase); err != ErrNotConfirmed {
		t.Errorf("expected ErrNotConfirmed without flag, got %v", err)
	}
	if err := svc.Delete("the-bat-egg", true, "delete"); err != ErrNotConfirmed {
		t.Errorf("expected ErrNotConfirmed for wrong phrase, got %v", err)
	}

	// Nothing changed.
	r, _, _ := cat.ResolveID("the-bat-egg")
	if r.Deleted {
		t.Fatal("entry deleted without confirmation")
	}

	if err := svc.Delete("the-bat-egg", true, DeletePhrase); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	r, _, _ = cat.ResolveID("the-bat-egg")
	if !r.Deleted || !r.Hidden {
		t.Error("expected soft-deleted shipped entry")
	}
}

func TestDeleteCustomRemovesOutright(t *testing.T) {
	cat, svc, _ := setupTest(t)

	created, _ := svc.Create(EntryInput{
		Title: "Temp", ImageDataURL: "data:img", PinX: ptr(1), PinY: ptr(2),
	})
	if err := svc.Delete(created.ID, true, DeletePhrase); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := cat.Find(created.ID); ok {
		t.Error("expected custom entry removed from catalog")
	}
}

func TestAddRemoveTag(t *testing.T) {
	cat, svc, _ := setupTest(t)

	tags, err := svc.AddTag("the-bat-egg", "roost")
	if err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"bat", "roost"}) {
		t.Errorf("unexpected tags: %v", tags)
	}

	tags, _ = svc.RemoveTag("the-bat-egg", "bat")
	if !reflect.DeepEqual(tags, []string{"roost"}) {
		t.Errorf("unexpected tags after remove: %v", tags)
	}

	// Removing the last tag stores an empty override that keeps
	// suppressing the base tags.
	tags, _ = svc.RemoveTag("the-bat-egg", "roost")
	if len(tags) != 0 {
		t.Errorf("expected no tags, got %v", tags)
	}
	if _, has, _ := cat.Store().TagOverride("the-bat-egg"); !has {
		t.Error("expected empty tag override record to remain")
	}
}

func TestRemoveGalleryImage(t *testing.T) {
	cat, svc, _ := setupTest(t)

	saved, err := svc.Save("the-bat-egg", EntryInput{GalleryAdd: []string{"data:one", "data:two"}})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(saved.Gallery) != 2 {
		t.Fatalf("expected 2 gallery images, got %d", len(saved.Gallery))
	}

	if err := svc.RemoveGalleryImage("the-bat-egg", saved.Gallery[0].ID); err != nil {
		t.Fatalf("RemoveGalleryImage: %v", err)
	}
	r, _, _ := cat.ResolveID("the-bat-egg")
	if len(r.Gallery) != 1 || r.Gallery[0].URL != "data:two" {
		t.Errorf("unexpected gallery: %v", r.Gallery)
	}

	if err := svc.RemoveGalleryImage("the-bat-egg", "no-such-image"); err == nil {
		t.Error("expected error for unknown image id")
	}
}

// HTTP handler tests

func setupTestRouter(t *testing.T) (*catalog.Catalog, chi.Router, string) {
	t.Helper()
	cat, svc, sessions := setupTest(t)
	r := chi.NewRouter()
	RegisterRoutes(r, svc, sessions, cat, nil)

	token, err := sessions.Unlock("hunter2")
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	return cat, r, token
}

func TestRoute_UnlockWrongPassword(t *testing.T) {
	_, r, _ := setupTestRouter(t)

	req := httptest.NewRequest("POST", "/api/admin/unlock", strings.NewReader(`{"password":"nope"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRoute_RequiresSession(t *testing.T) {
	_, r, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/api/admin/entries", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
}

func TestRoute_CreateEntry(t *testing.T) {
	_, r, token := setupTestRouter(t)

	body := `{"title":"New Spot","imageDataUrl":"data:img","pinX":12,"pinY":34}`
	req := httptest.NewRequest("POST", "/api/admin/entries", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created catalog.Resolved
	json.Unmarshal(w.Body.Bytes(), &created)
	if created.ID != "new-spot" {
		t.Errorf("expected slug id, got %q", created.ID)
	}
}

func TestRoute_DeleteWithoutPhrase(t *testing.T) {
	cat, r, token := setupTestRouter(t)

	req := httptest.NewRequest("DELETE", "/api/admin/entries/the-bat-egg", strings.NewReader(`{"confirm":true,"phrase":"nope"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	res, _, _ := cat.ResolveID("the-bat-egg")
	if res.Deleted {
		t.Error("entry deleted despite failed confirmation")
	}
}

func TestRoute_SaveAndList(t *testing.T) {
	_, r, token := setupTestRouter(t)

	body := `{"title":"Renamed Stones"}`
	req := httptest.NewRequest("PUT", "/api/admin/entries/standing-stones", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/admin/entries?query=renamed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Entries []catalog.Resolved `json:"entries"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Entries) != 1 || resp.Entries[0].ID != "standing-stones" {
		t.Errorf("unexpected admin list: %+v", resp.Entries)
	}
}
