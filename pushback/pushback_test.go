package pushback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/byte4ever/markup/pushback"
)

// drain reads it until it reports exhaustion.
func drain[T any](it *pushback.Iterator[T]) []T {
	var out []T

	for {
		item, ok := it.Next()
		if !ok {
			return out
		}

		out = append(out, item)
	}
}

func TestNext_pushback_single_item(t *testing.T) {
	t.Parallel()

	it := pushback.FromSlice([]int{1, 2, 3})

	item, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, 1, item)

	it.Pushback(1)
	assert.Equal(t, 1, it.Buffered())

	assert.Equal(t, []int{1, 2, 3}, drain(it))

	_, ok = it.Next()
	assert.False(t, ok)
}

func TestPushback_replays_in_fifo_order(t *testing.T) {
	t.Parallel()

	it := pushback.FromSlice([]int{9})

	it.Pushback(1)
	it.Pushback(2)

	assert.Equal(t, []int{1, 2, 9}, drain(it))
}

func TestNext_stays_exhausted(t *testing.T) {
	t.Parallel()

	it := pushback.FromSlice([]string{"a"})

	assert.Equal(t, []string{"a"}, drain(it))

	for range 3 {
		item, ok := it.Next()
		assert.False(t, ok)
		assert.Empty(t, item)
	}

	// Items pushed back after exhaustion are still
	// replayed, but the source is not resumed.
	it.Pushback("b")
	assert.Equal(t, []string{"b"}, drain(it))
}

func TestNew_infinite_sequence_is_lazy(t *testing.T) {
	t.Parallel()

	pulled := 0
	naturals := func(yield func(int) bool) {
		for i := 0; ; i++ {
			pulled++

			if !yield(i) {
				return
			}
		}
	}

	it := pushback.New(naturals)
	defer it.Stop()

	for want := range 3 {
		item, ok := it.Next()
		assert.True(t, ok)
		assert.Equal(t, want, item)
	}

	assert.Equal(t, 3, pulled)
}

func TestAll_peek_with_pushback(t *testing.T) {
	t.Parallel()

	it := pushback.FromSlice([]string{"start", "end", "text"})

	var got []string

	for item := range it.All() {
		if item == "start" {
			next, ok := it.Next()
			if ok && next == "end" {
				got = append(got, "empty")

				continue
			}

			it.Pushback(next)
		}

		got = append(got, item)
	}

	assert.Equal(t, []string{"empty", "text"}, got)
}

func TestStop_keeps_buffered_items(t *testing.T) {
	t.Parallel()

	it := pushback.FromSlice([]int{1, 2, 3})

	it.Pushback(7)
	it.Stop()
	it.Stop()

	assert.Equal(t, []int{7}, drain(it))
}
