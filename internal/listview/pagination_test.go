package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// render 把分页条转成便于比较的形式，省略号为 0
func render(items []PageItem) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		if it.Ellipsis {
			out = append(out, 0)
			continue
		}
		out = append(out, it.Number)
	}
	return out
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(10, 4))
	assert.Equal(t, 1, TotalPages(4, 4))
	assert.Equal(t, 0, TotalPages(0, 4))
	assert.Equal(t, 0, TotalPages(10, 0))
	assert.Equal(t, 5, TotalPages(41, 10))
}

func TestWindow(t *testing.T) {
	cases := []struct {
		current, total int
		want           []int
	}{
		{6, 20, []int{1, 2, 3, 4, 5, 6, 7, 8, 0, 20}},
		{10, 20, []int{1, 0, 8, 9, 10, 11, 12, 0, 20}},
		{1, 20, []int{1, 2, 3, 0, 20}},
		{20, 20, []int{1, 0, 18, 19, 20}},
		{1, 1, []int{1}},
		{3, 5, []int{1, 2, 3, 4, 5}},
		{4, 8, []int{1, 2, 3, 4, 5, 6, 7, 8}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, render(Window(tc.current, tc.total)), "Window(%d, %d)", tc.current, tc.total)
	}
	assert.Nil(t, Window(1, 0))
}

func TestWindowMarksCurrent(t *testing.T) {
	var current []int
	for _, it := range Window(6, 20) {
		if it.Current {
			current = append(current, it.Number)
		}
	}
	assert.Equal(t, []int{6}, current)
}

func TestPager(t *testing.T) {
	p := NewPager(1, 3)
	assert.False(t, p.HasPrev)
	assert.True(t, p.HasNext)
	assert.Equal(t, 2, p.Next)
	assert.True(t, p.Show())

	p = NewPager(3, 3)
	assert.True(t, p.HasPrev)
	assert.False(t, p.HasNext)

	assert.False(t, NewPager(1, 1).Show())
}
