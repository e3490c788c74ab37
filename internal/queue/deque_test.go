package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueDeque(t *testing.T) {
	var d Deque[int]
	assert.True(t, d.IsEmpty())

	v, ok := d.PopFront()
	assert.False(t, ok)
	assert.Zero(t, v)

	v, ok = d.PopBack()
	assert.False(t, ok)
	assert.Zero(t, v)

	_, ok = d.Front()
	assert.False(t, ok)
	_, ok = d.Back()
	assert.False(t, ok)

	assert.False(t, d.Remove(3), "removing from empty deque is a no-op")

	d.PushBack(1)
	assert.Equal(t, 1, d.Len())
}

func TestQueueAndStackDiscipline(t *testing.T) {
	d := New[string](0)
	d.PushBack("b")
	d.PushBack("c")
	d.PushFront("a")
	require.Equal(t, []string{"a", "b", "c"}, d.Values())

	front, _ := d.Front()
	back, _ := d.Back()
	assert.Equal(t, "a", front)
	assert.Equal(t, "c", back)

	v, ok := d.PopBack()
	require.True(t, ok)
	assert.Equal(t, "c", v)

	v, ok = d.PopFront()
	require.True(t, ok)
	assert.Equal(t, "a", v)

	assert.Equal(t, []string{"b"}, d.Values())
}

func TestGrowAcrossWrap(t *testing.T) {
	d := New[int](minCapacity)
	for i := range 6 {
		d.PushBack(i)
	}
	for range 4 {
		d.PopFront()
	}
	// head is now in the middle of the buffer; force several wraps and a grow
	for i := 6; i < 30; i++ {
		d.PushBack(i)
	}
	d.PushFront(3)

	want := []int{3}
	for i := 4; i < 30; i++ {
		want = append(want, i)
	}
	assert.Equal(t, want, d.Values())
	assert.Equal(t, len(want), d.Len())

	at, ok := d.At(1)
	assert.True(t, ok)
	assert.Equal(t, 4, at)
	_, ok = d.At(len(want))
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name    string
		values  []int
		remove  int
		want    []int
		removed bool
	}{
		{"head", []int{1, 2, 3}, 1, []int{2, 3}, true},
		{"middle", []int{1, 2, 3}, 2, []int{1, 3}, true},
		{"tail", []int{1, 2, 3}, 3, []int{1, 2}, true},
		{"first of duplicates", []int{4, 1, 4}, 4, []int{1, 4}, true},
		{"absent", []int{1, 2, 3}, 9, []int{1, 2, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := From(tt.values...)
			assert.Equal(t, tt.removed, d.Remove(tt.remove))
			assert.Equal(t, tt.want, d.Values())

			back, ok := d.Back()
			require.True(t, ok)
			assert.Equal(t, tt.want[len(tt.want)-1], back, "tail tracks removals")
		})
	}
}

func TestRemoveAfterWrap(t *testing.T) {
	d := New[int](minCapacity)
	for i := range minCapacity {
		d.PushBack(i)
	}
	d.PopFront()
	d.PopFront()
	d.PushBack(8)
	d.PushBack(9)

	assert.True(t, d.Remove(7))
	assert.Equal(t, []int{2, 3, 4, 5, 6, 8, 9}, d.Values())
	assert.True(t, d.Contains(9))
	assert.False(t, d.Contains(7))
}

func TestRemoveAll(t *testing.T) {
	d := From(4, 1, 4, 2, 4)
	assert.Equal(t, 3, d.RemoveAll(4))
	assert.Equal(t, []int{1, 2}, d.Values())
	assert.Equal(t, 0, d.RemoveAll(4))

	// wrapped buffer
	d = New[int](minCapacity)
	for i := range minCapacity {
		d.PushBack(i % 3)
	}
	d.PopFront()
	d.PushBack(0)
	assert.Equal(t, 3, d.RemoveAll(0))
	assert.Equal(t, []int{1, 2, 1, 2, 1}, d.Values())
	back, ok := d.Back()
	require.True(t, ok)
	assert.Equal(t, 1, back)

	var empty Deque[int]
	assert.Equal(t, 0, empty.RemoveAll(1))
}

func TestClearAndIterate(t *testing.T) {
	d := From(1, 2, 3, 4)

	var seen []int
	for v := range d.All() {
		if v == 3 {
			break
		}
		seen = append(seen, v)
	}
	assert.Equal(t, []int{1, 2}, seen)

	d.Clear()
	assert.True(t, d.IsEmpty())
	assert.Empty(t, d.Values())

	d.PushFront(5)
	assert.Equal(t, []int{5}, d.Values())
}
