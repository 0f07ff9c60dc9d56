package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginatePagesCoverEveryItem(t *testing.T) {
	for total := 0; total <= 60; total++ {
		for _, size := range PageSizeOptions {
			first := Paginate(total, size, 1)
			sum := 0
			for page := 1; page <= first.TotalPages; page++ {
				w := Paginate(total, size, page)
				count := w.EndIndex - w.StartIndex
				assert.LessOrEqual(t, count, size)
				if page < w.TotalPages {
					assert.Equal(t, size, count)
				}
				sum += count
			}
			assert.Equal(t, total, sum, "total=%d size=%d", total, size)
		}
	}
}

func TestPaginateClamps(t *testing.T) {
	w := Paginate(23, 10, 999)
	assert.Equal(t, 3, w.CurrentPage)
	assert.Equal(t, 3, w.TotalPages)
	assert.Equal(t, 20, w.StartIndex)
	assert.Equal(t, 23, w.EndIndex)

	w = Paginate(23, 10, -4)
	assert.Equal(t, 1, w.CurrentPage)
	assert.False(t, w.HasPrev)
	assert.True(t, w.HasNext)
}

func TestPaginateTwentyThreeItems(t *testing.T) {
	bounds := [][2]int{{0, 10}, {10, 20}, {20, 23}}
	for i, b := range bounds {
		w := Paginate(23, 10, i+1)
		assert.Equal(t, b[0], w.StartIndex)
		assert.Equal(t, b[1], w.EndIndex)
	}

	w := Paginate(23, 10, 2)
	assert.Equal(t, []int{1, 2, 3}, w.Pages)
	assert.False(t, w.LeadingEllipsis)
	assert.False(t, w.TrailingEllipsis)
	assert.Equal(t, 11, w.From())
	assert.Equal(t, 20, w.To())
}

func TestPaginateEmpty(t *testing.T) {
	w := Paginate(0, 10, 3)
	assert.Equal(t, 1, w.CurrentPage)
	assert.Equal(t, 1, w.TotalPages)
	assert.False(t, w.ShowControls)
	assert.Equal(t, 0, w.From())
	assert.Equal(t, 0, w.To())
	assert.Equal(t, []int{1}, w.Pages)
}

func TestPaginateWindow(t *testing.T) {
	cases := []struct {
		current  int
		pages    []int
		leading  bool
		trailing bool
	}{
		{1, []int{1, 2, 3, 4, 5}, false, true},
		{3, []int{1, 2, 3, 4, 5}, false, true},
		{5, []int{3, 4, 5, 6, 7}, true, true},
		{9, []int{6, 7, 8, 9, 10}, true, false},
		{10, []int{6, 7, 8, 9, 10}, true, false},
	}
	for _, tc := range cases {
		w := Paginate(100, 10, tc.current)
		assert.Equal(t, tc.pages, w.Pages, "page %d", tc.current)
		assert.Equal(t, tc.leading, w.LeadingEllipsis, "page %d", tc.current)
		assert.Equal(t, tc.trailing, w.TrailingEllipsis, "page %d", tc.current)
	}
}

func TestPaginateDefaultsPageSize(t *testing.T) {
	w := Paginate(12, 0, 2)
	assert.Equal(t, DefaultPageSize, w.PageSize)
	assert.Equal(t, 2, w.TotalPages)
}
