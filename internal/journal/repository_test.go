package journal

import (
	"path/filepath"
	"testing"
	"time"

	"backdrop/internal/controller"
)

func tempRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backdrop.db")
	r, err := OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSave_AssignsIDAndTimestamp(t *testing.T) {
	r := tempRepo(t)

	entry := &Entry{
		Trigger:    controller.TriggerStartup,
		Path:       "/",
		Mode:       "dark",
		Class:      "desktop",
		Width:      1280,
		Ref:        "/img/dark-desktop.webp",
		DurationMs: 1,
	}

	if err := r.Save(entry); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if entry.ID == 0 {
		t.Error("expected ID to be assigned")
	}
	if entry.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestList_NewestFirst(t *testing.T) {
	r := tempRepo(t)

	for i := range 3 {
		entry := &Entry{
			Trigger:   controller.TriggerResize,
			Timestamp: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		if err := r.Save(entry); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := r.List(2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Timestamp.Before(entries[1].Timestamp) {
		t.Error("expected entries sorted by timestamp descending")
	}
}

func TestListByTrigger(t *testing.T) {
	r := tempRepo(t)

	for _, trigger := range []string{
		controller.TriggerStartup,
		controller.TriggerResize,
		controller.TriggerResize,
		controller.TriggerToggle,
	} {
		if err := r.Save(&Entry{Trigger: trigger}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := r.ListByTrigger(controller.TriggerResize, 10)
	if err != nil {
		t.Fatalf("ListByTrigger failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 resize entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Trigger != controller.TriggerResize {
			t.Errorf("unexpected trigger %q", e.Trigger)
		}
	}
}

func TestClear(t *testing.T) {
	r := tempRepo(t)

	for range 3 {
		if err := r.Save(&Entry{Trigger: controller.TriggerStartup}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	removed, err := r.Clear()
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("Clear removed %d entries, want 3", removed)
	}

	entries, err := r.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty journal, got %d entries", len(entries))
	}
}

func TestPrune(t *testing.T) {
	r := tempRepo(t)

	old := &Entry{
		Trigger:   controller.TriggerStartup,
		Timestamp: time.Now().UTC().Add(-48 * time.Hour),
	}
	recent := &Entry{Trigger: controller.TriggerToggle}
	for _, e := range []*Entry{old, recent} {
		if err := r.Save(e); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	removed, err := r.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune removed %d entries, want 1", removed)
	}

	entries, err := r.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Trigger != controller.TriggerToggle {
		t.Errorf("unexpected surviving entries: %+v", entries)
	}
}

func TestPrune_SubsecondBoundary(t *testing.T) {
	r := tempRepo(t)

	// A whole-second timestamp and one half a second later. Stored with
	// a variable-width format the older string sorts after the newer
	// one, so a cutoff between them would prune nothing.
	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	older := &Entry{Trigger: controller.TriggerStartup, Timestamp: base}
	newer := &Entry{
		Trigger:   controller.TriggerResize,
		Timestamp: base.Add(500 * time.Millisecond),
	}
	for _, e := range []*Entry{older, newer} {
		if err := r.Save(e); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	removed, err := r.Prune(time.Since(base.Add(250 * time.Millisecond)))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune removed %d entries, want 1", removed)
	}

	entries, err := r.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Trigger != controller.TriggerResize {
		t.Errorf("unexpected surviving entries: %+v", entries)
	}
}

func TestFromEvent(t *testing.T) {
	e := controller.Event{
		Time:     time.Now(),
		Trigger:  controller.TriggerAttribute,
		Path:     "/posts/",
		Mode:     "light",
		Class:    "mobile",
		Width:    390,
		Ref:      "/img/light-mobile.webp",
		Duration: 3 * time.Millisecond,
	}

	entry := FromEvent(e)
	if entry.Trigger != e.Trigger || entry.Path != e.Path || entry.Mode != e.Mode {
		t.Errorf("FromEvent dropped fields: %+v", entry)
	}
	if entry.Ref != string(e.Ref) {
		t.Errorf("Ref = %q, want %q", entry.Ref, e.Ref)
	}
	if entry.DurationMs != 3 {
		t.Errorf("DurationMs = %d, want 3", entry.DurationMs)
	}
}
