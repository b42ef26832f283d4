package pushback

import (
	"iter"
	"slices"
)

// Iterator reads items from an underlying sequence and
// replays pushed back items first. Pushed back items are
// replayed in the order they were pushed (FIFO). It is
// not safe for concurrent use.
type Iterator[T any] struct {
	next func() (T, bool)
	stop func()
	buf  []T
	done bool
}

// New returns an Iterator reading from seq. Items are
// pulled lazily, so seq may be infinite. Call Stop when
// seq is not read to the end.
func New[T any](seq iter.Seq[T]) *Iterator[T] {
	next, stop := iter.Pull(seq)

	return &Iterator[T]{next: next, stop: stop}
}

// FromSlice returns an Iterator over the items of s.
func FromSlice[T any](s []T) *Iterator[T] {
	return New(slices.Values(s))
}

// Next returns the next item. The oldest pushed back item
// comes first; when none is left the underlying sequence
// is read. ok is false once both are exhausted, and stays
// false on later calls.
func (it *Iterator[T]) Next() (item T, ok bool) {
	if len(it.buf) > 0 {
		item = it.buf[0]

		var zero T

		it.buf[0] = zero
		it.buf = it.buf[1:]

		return item, true
	}

	if it.done {
		return item, false
	}

	item, ok = it.next()
	if !ok {
		it.Stop()
	}

	return item, ok
}

// Pushback queues item to be returned by a later Next
// call, after any item pushed back before it.
func (it *Iterator[T]) Pushback(item T) {
	it.buf = append(it.buf, item)
}

// Buffered returns the number of pushed back items not
// yet replayed.
func (it *Iterator[T]) Buffered() int {
	return len(it.buf)
}

// All returns a sequence yielding the remaining items.
// Items pushed back while ranging over it are replayed by
// the same loop.
func (it *Iterator[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, ok := it.Next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// Stop releases the underlying sequence. Pushed back
// items can still be read afterwards.
func (it *Iterator[T]) Stop() {
	if it.done {
		return
	}

	it.done = true
	it.stop()
}
