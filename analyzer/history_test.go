package analyzer

import (
	"reflect"
	"testing"
)

func TestHistoryEvictsOldestByIdentity(t *testing.T) {
	const n = 4
	h := NewHistory(n)
	frames := make([]*Frame, n+1)
	for i := range frames {
		// Equal values, distinct identities.
		frames[i] = &Frame{}
	}

	for i := 0; i < n; i++ {
		if ev := h.Push(frames[i]); ev != nil {
			t.Fatalf("push %d evicted %p before capacity", i, ev)
		}
	}
	if h.Len() != n {
		t.Fatalf("Len() = %d, want %d", h.Len(), n)
	}

	ev := h.Push(frames[n])
	if ev != frames[0] {
		t.Fatalf("evicted %p, want oldest %p", ev, frames[0])
	}
	if h.Len() != n {
		t.Fatalf("Len() = %d after eviction, want %d", h.Len(), n)
	}
	for _, f := range h.Frames() {
		if f == frames[0] {
			t.Fatal("oldest frame still present")
		}
	}
	for i := 0; i < n; i++ {
		if h.At(i) != frames[i+1] {
			t.Fatalf("At(%d) = %p, want %p", i, h.At(i), frames[i+1])
		}
	}
	if h.Last() != frames[n] {
		t.Fatal("Last() is not the newest frame")
	}
}

func TestHistoryDominants(t *testing.T) {
	h := NewHistory(3)
	for _, d := range []int{5, 6, 7, 8} {
		h.Push(&Frame{dominant: d})
	}
	if got, want := h.Dominants(), []int{6, 7, 8}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Dominants() = %v, want %v", got, want)
	}
}

func TestHistoryReset(t *testing.T) {
	h := NewHistory(2)
	h.Push(&Frame{})
	h.Reset()
	if h.Len() != 0 || h.Last() != nil {
		t.Fatalf("history not empty after Reset: len %d", h.Len())
	}
}

func TestNewHistoryMinimumCapacity(t *testing.T) {
	if got := NewHistory(0).Cap(); got != 1 {
		t.Fatalf("Cap() = %d, want 1", got)
	}
}

func TestHistoryFramesIsCopy(t *testing.T) {
	h := NewHistory(2)
	f := &Frame{}
	h.Push(f)
	out := h.Frames()
	out[0] = nil
	if h.At(0) != f {
		t.Fatal("Frames() exposes internal storage")
	}
}
