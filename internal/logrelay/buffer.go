// Package logrelay captures backend log lines for viewers: a bounded
// in-memory backlog plus a logrus hook that feeds it and a live publisher.
package logrelay

import "sync"

// DefaultCapacity is the number of lines kept when no capacity is given.
const DefaultCapacity = 100

// Buffer is a fixed-capacity ring of log lines. When full, the oldest line
// is evicted. Lines are opaque.
type Buffer struct {
	mu    sync.RWMutex
	lines []string
	start int
	size  int
}

// NewBuffer creates a Buffer. capacity <= 0 uses DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Buffer{lines: make([]string, capacity)}
}

// Push appends a line, evicting the oldest when full.
func (b *Buffer) Push(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.size < len(b.lines) {
		b.lines[(b.start+b.size)%len(b.lines)] = line
		b.size++

		return
	}

	b.lines[b.start] = line
	b.start = (b.start + 1) % len(b.lines)
}

// Lines returns a copy of the buffered lines in arrival order.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, b.size)
	for i := range out {
		out[i] = b.lines[(b.start+i)%len(b.lines)]
	}

	return out
}

// Len returns the number of buffered lines.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.size
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int {
	return len(b.lines)
}
