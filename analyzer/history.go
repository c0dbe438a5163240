package analyzer

// History is a bounded FIFO of the most recent frames, oldest first.
// It is owned by the processing goroutine and is not safe for concurrent use.
type History struct {
	frames []*Frame
	cap    int
}

// NewHistory returns an empty History holding at most capacity frames.
// A capacity below 1 is treated as 1.
func NewHistory(capacity int) *History {
	capacity = max(capacity, 1)
	return &History{
		frames: make([]*Frame, 0, capacity),
		cap:    capacity,
	}
}

// Push appends f. When the window is full the oldest frame is evicted first
// and returned.
func (h *History) Push(f *Frame) (evicted *Frame) {
	if len(h.frames) == h.cap {
		evicted = h.frames[0]
		copy(h.frames, h.frames[1:])
		h.frames[len(h.frames)-1] = nil
		h.frames = h.frames[:len(h.frames)-1]
	}
	h.frames = append(h.frames, f)
	return evicted
}

// Len returns the number of frames held.
func (h *History) Len() int { return len(h.frames) }

// Cap returns the capacity of the window.
func (h *History) Cap() int { return h.cap }

// At returns the i-th frame, oldest first.
func (h *History) At(i int) *Frame { return h.frames[i] }

// Last returns the newest frame, or nil when the window is empty.
func (h *History) Last() *Frame {
	if len(h.frames) == 0 {
		return nil
	}
	return h.frames[len(h.frames)-1]
}

// Frames returns a copy of the window, oldest first.
func (h *History) Frames() []*Frame {
	out := make([]*Frame, len(h.frames))
	copy(out, h.frames)
	return out
}

// Dominants returns the dominant bin of every frame, oldest first.
func (h *History) Dominants() []int {
	out := make([]int, len(h.frames))
	for i, f := range h.frames {
		out[i] = f.dominant
	}
	return out
}

// Reset removes all frames.
func (h *History) Reset() {
	clear(h.frames)
	h.frames = h.frames[:0]
}
