package session

import (
	"fmt"
	"testing"
)

func TestRecorderHistoryIsMostRecentFirst(t *testing.T) {
	r := NewRecorder()
	r.AppendHistoryEntry("first")
	r.AppendHistoryEntry("second")

	hist := r.History()
	if len(hist) != 2 || hist[0] != "second" || hist[1] != "first" {
		t.Fatalf("expected [second first], got %v", hist)
	}
}

func TestRecorderHistoryCapsAtFifty(t *testing.T) {
	r := NewRecorder()
	for i := 0; i < 55; i++ {
		r.AppendHistoryEntry(fmt.Sprintf("entry %d", i))
	}

	hist := r.History()
	if len(hist) != 50 {
		t.Fatalf("expected 50 entries, got %d", len(hist))
	}
	if hist[0] != "entry 54" {
		t.Fatalf("expected newest entry first, got %q", hist[0])
	}
	if hist[49] != "entry 5" {
		t.Fatalf("expected oldest retained entry to be %q, got %q", "entry 5", hist[49])
	}
}

func TestRecorderClearHistory(t *testing.T) {
	r := NewRecorder()
	r.AppendHistoryEntry("entry")
	r.ClearHistory()
	if len(r.History()) != 0 {
		t.Fatal("expected empty history")
	}
}
