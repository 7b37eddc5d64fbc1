package signal

import "testing"

func TestAttributes_GetSet(t *testing.T) {
	attrs := NewAttributes()

	if got := attrs.Get("data-theme"); got != "" {
		t.Errorf("unset attribute = %q, want empty", got)
	}

	attrs.Set("data-theme", "dark")
	if got := attrs.Get("data-theme"); got != "dark" {
		t.Errorf("Get = %q, want %q", got, "dark")
	}
}

func TestAttributes_WatchNotifiesOnChange(t *testing.T) {
	attrs := NewAttributes()
	attrs.Set("data-theme", "light")

	var gotOld, gotNew string
	calls := 0
	attrs.Watch("data-theme", func(old, new string) {
		calls++
		gotOld, gotNew = old, new
	})

	attrs.Set("data-theme", "dark")
	if calls != 1 {
		t.Fatalf("expected 1 notification, got %d", calls)
	}
	if gotOld != "light" || gotNew != "dark" {
		t.Errorf("notification = (%q, %q), want (light, dark)", gotOld, gotNew)
	}
}

func TestAttributes_NoNotifyOnSameValue(t *testing.T) {
	attrs := NewAttributes()
	attrs.Set("data-theme", "dark")

	calls := 0
	attrs.Watch("data-theme", func(old, new string) { calls++ })

	attrs.Set("data-theme", "dark")
	if calls != 0 {
		t.Errorf("expected no notification for unchanged value, got %d", calls)
	}
}

func TestAttributes_RewatchReplaces(t *testing.T) {
	attrs := NewAttributes()

	firstCalls, secondCalls := 0, 0
	attrs.Watch("data-theme", func(old, new string) { firstCalls++ })
	attrs.Watch("data-theme", func(old, new string) { secondCalls++ })

	attrs.Set("data-theme", "dark")
	if firstCalls != 0 {
		t.Errorf("replaced watcher fired %d times", firstCalls)
	}
	if secondCalls != 1 {
		t.Errorf("active watcher fired %d times, want 1", secondCalls)
	}
}

func TestAttributes_CancelUnregisters(t *testing.T) {
	attrs := NewAttributes()

	calls := 0
	cancel := attrs.Watch("data-theme", func(old, new string) { calls++ })
	cancel()

	attrs.Set("data-theme", "dark")
	if calls != 0 {
		t.Errorf("cancelled watcher fired %d times", calls)
	}
}

func TestAttributes_StaleCancelIsNoop(t *testing.T) {
	attrs := NewAttributes()

	staleCancel := attrs.Watch("data-theme", func(old, new string) {})

	calls := 0
	attrs.Watch("data-theme", func(old, new string) { calls++ })

	// Cancelling the replaced registration must not remove the live one.
	staleCancel()

	attrs.Set("data-theme", "dark")
	if calls != 1 {
		t.Errorf("live watcher fired %d times, want 1", calls)
	}
}

func TestAttributes_IndependentNames(t *testing.T) {
	attrs := NewAttributes()

	themeCalls := 0
	attrs.Watch("data-theme", func(old, new string) { themeCalls++ })

	attrs.Set("lang", "en")
	if themeCalls != 0 {
		t.Errorf("watcher for unrelated attribute fired %d times", themeCalls)
	}
}
