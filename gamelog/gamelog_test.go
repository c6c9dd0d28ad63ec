package gamelog

import (
	"fmt"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestAppendNewestFirst(t *testing.T) {
	r := NewRecorder(3)
	r.Append("first", Info)
	r.Append("second", Combat)
	r.Append("third", Gain)

	entries := r.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Message != "third" || entries[2].Message != "first" {
		t.Fatalf("entries are not newest first: %v", entries)
	}
	if entries[1].Category != Combat {
		t.Fatalf("expected combat category, got %s", entries[1].Category)
	}
}

func TestAppendDropsOldest(t *testing.T) {
	r := NewRecorder(2)
	r.Append("a", Info)
	r.Append("b", Info)
	r.Append("c", Info)
	entries := r.Entries()
	if len(entries) != 2 || entries[0].Message != "c" || entries[1].Message != "b" {
		t.Fatalf("unexpected entries: %v", entries)
	}
}

func TestDefaultMax(t *testing.T) {
	r := NewRecorder(0)
	if r.Max() != DefaultMax {
		t.Fatalf("expected default bound %d, got %d", DefaultMax, r.Max())
	}
}

func TestEntriesIsACopy(t *testing.T) {
	r := NewRecorder(2)
	r.Append("kept", Info)
	entries := r.Entries()
	entries[0].Message = "changed"
	if r.Entries()[0].Message != "kept" {
		t.Fatalf("caller mutated the recorder")
	}
}

func TestClockStampsEntries(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRecorder(5, WithClock(func() time.Time { return at }))
	e := r.Append("stamped", Tx)
	if !e.Timestamp.Equal(at) {
		t.Fatalf("expected %v, got %v", at, e.Timestamp)
	}
	if e.ID == "" {
		t.Fatalf("expected an id")
	}
}

func TestRecorderBound(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.IntRange(1, 20).Draw(t, "max")
		n := rapid.IntRange(0, 60).Draw(t, "n")

		tick := time.Unix(0, 0)
		r := NewRecorder(max, WithClock(func() time.Time {
			tick = tick.Add(time.Second)
			return tick
		}))
		appended := make([]Entry, 0, n)
		for i := range n {
			appended = append(appended, r.Append(fmt.Sprintf("entry %d", i), Info))
		}

		entries := r.Entries()
		if len(entries) != min(n, max) {
			t.Fatalf("expected %d entries, got %d", min(n, max), len(entries))
		}
		for i, e := range entries {
			want := appended[n-1-i]
			if e.ID != want.ID || !e.Timestamp.Equal(want.Timestamp) || e.Message != want.Message {
				t.Fatalf("entry %d was altered: got %+v want %+v", i, e, want)
			}
		}
	})
}
