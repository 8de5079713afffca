package testutil

import (
	"sync"

	"github.com/roach88/opflow/internal/ir"
)

// SpanAllocator hands out consecutive, non-overlapping source spans so
// that synthetic syntax nodes are distinct and ordered like source text.
//
// Unlike a real parser, a SpanAllocator can be reset, which lets the same
// builder code produce identical trees across test runs.
//
// Thread-safety: all methods are safe for concurrent use.
type SpanAllocator struct {
	mu     sync.Mutex
	offset int
}

// NewSpanAllocator creates an allocator starting at offset 0.
func NewSpanAllocator() *SpanAllocator {
	return &SpanAllocator{}
}

// Next reserves a span of n characters followed by one separator.
func (a *SpanAllocator) Next(n int) ir.Span {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := ir.Span{Start: a.offset, End: a.offset + n}
	a.offset += n + 1
	return s
}

// Offset returns the next start offset without reserving anything.
func (a *SpanAllocator) Offset() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offset
}

// Reset rewinds the allocator to offset 0.
func (a *SpanAllocator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.offset = 0
}
