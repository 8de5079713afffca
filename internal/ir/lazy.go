package ir

import (
	"sync"
	"sync/atomic"
)

// Lazy is a deferred, memoized value. The thunk runs at most once, on
// first Get, and concurrent callers observe the same result.
type Lazy[T any] struct {
	once   sync.Once
	thunk  func() T
	value  T
	forced atomic.Bool
}

// NewLazy wraps thunk in a memoizing cell.
func NewLazy[T any](thunk func() T) *Lazy[T] {
	if thunk == nil {
		panic(Contractf("ir", "lazy cell without a thunk"))
	}
	return &Lazy[T]{thunk: thunk}
}

// Get forces the cell and returns its value.
func (l *Lazy[T]) Get() T {
	l.once.Do(func() {
		l.value = l.thunk()
		l.thunk = nil
		l.forced.Store(true)
	})
	return l.value
}

// Forced reports whether Get has already run the thunk.
func (l *Lazy[T]) Forced() bool {
	return l.forced.Load()
}

// lazyChildren wraps a child-producing thunk so every produced child is
// adopted by owner when the cell is forced.
func lazyChildren[T child](owner Operation, thunk func() []T) *Lazy[[]T] {
	return NewLazy(func() []T {
		ops := thunk()
		for _, op := range ops {
			var zero T
			if op == zero {
				panic(Contractf("ir", "%s produced a nil child", owner.Kind()))
			}
			adopt(owner, op)
		}
		return ops
	})
}

func lazyChild[T child](owner Operation, thunk func() T) *Lazy[T] {
	return NewLazy(func() T {
		op := thunk()
		var zero T
		if op != zero {
			adopt(owner, op)
		}
		return op
	})
}
