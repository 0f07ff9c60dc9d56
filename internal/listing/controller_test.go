package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeComposesFilterSortPaginate(t *testing.T) {
	cfg := rowConfig()
	rows := makeRows(30)

	view := Compute(rows, cfg, Params{
		Filters:  map[string]string{"filter": "open"},
		Sort:     Sort{Key: "price", Direction: Desc},
		Page:     2,
		PageSize: 5,
	})

	assert.Equal(t, 15, view.TotalItems)
	assert.Equal(t, 3, view.Window.TotalPages)
	assert.Equal(t, 2, view.Params.Page)
	require.Len(t, view.Items, 5)
	for _, r := range view.Items {
		assert.True(t, r.Open)
	}
	for i := 0; i+1 < len(view.Items); i++ {
		assert.GreaterOrEqual(t, view.Items[i].Price, view.Items[i+1].Price)
	}
}

func TestComputeDoesNotReorderSource(t *testing.T) {
	cfg := rowConfig()
	rows := makeRows(12)
	original := append([]row(nil), rows...)

	_ = Compute(rows, cfg, Params{Sort: Sort{Key: "code", Direction: Asc}, Page: 1})
	assert.Equal(t, original, rows)
}

func TestComputeIgnoresUnknownSortKey(t *testing.T) {
	cfg := rowConfig()
	rows := makeRows(5)
	view := Compute(rows, cfg, Params{Sort: Sort{Key: "missing", Direction: Asc}, Page: 1})
	assert.Equal(t, rows, view.Items)
}

func TestControllerResetsPageOnControlChange(t *testing.T) {
	src := &sliceSource[row]{items: makeRows(40)}
	ctrl := NewController(rowConfig(), src)

	ctrl.GoToPage(3)
	assert.Equal(t, 3, ctrl.State().Page)
	ctrl.SetQuery("course")
	assert.Equal(t, 1, ctrl.State().Page)

	ctrl.GoToPage(2)
	require.NoError(t, ctrl.SetFilter("filter", "open"))
	assert.Equal(t, 1, ctrl.State().Page)
	assert.Equal(t, "open", ctrl.State().Filters["filter"])

	ctrl.GoToPage(2)
	require.NoError(t, ctrl.SetPageSize(5))
	assert.Equal(t, 1, ctrl.State().Page)

	require.NoError(t, ctrl.SetFilter("filter", All))
	_, present := ctrl.State().Filters["filter"]
	assert.False(t, present)
}

func TestControllerRejectsUnknownControls(t *testing.T) {
	ctrl := NewController(rowConfig(), &sliceSource[row]{})

	assert.ErrorIs(t, ctrl.ToggleSort("missing"), ErrUnknownSortKey)
	assert.ErrorIs(t, ctrl.SetFilter("missing", "x"), ErrUnknownDimension)
	assert.ErrorIs(t, ctrl.SetPageSize(7), ErrInvalidPageSize)
}

func TestControllerNavigation(t *testing.T) {
	src := &sliceSource[row]{items: makeRows(23)}
	ctrl := NewController(rowConfig(), src)

	ctrl.Prev()
	assert.Equal(t, 1, ctrl.State().Page)
	ctrl.Next()
	ctrl.Next()
	ctrl.Next()
	assert.Equal(t, 3, ctrl.State().Page)
	ctrl.First()
	assert.Equal(t, 1, ctrl.State().Page)
	ctrl.Last()
	assert.Equal(t, 3, ctrl.State().Page)
	ctrl.GoToPage(999)
	assert.Equal(t, 3, ctrl.State().Page)
}

func TestControllerReclampsAfterLastPageEmpties(t *testing.T) {
	src := &sliceSource[row]{items: makeRows(21)}
	ctrl := NewController(rowConfig(), src)
	ctrl.Last()
	require.Equal(t, 3, ctrl.State().Page)

	src.items = src.items[:20]
	view := ctrl.View()
	assert.Equal(t, 2, view.Window.CurrentPage)
	assert.Equal(t, 2, ctrl.State().Page)
	assert.Len(t, view.Items, 10)
}

func TestControllerToggleSort(t *testing.T) {
	src := &sliceSource[row]{items: makeRows(8)}
	ctrl := NewController(rowConfig(), src)

	require.NoError(t, ctrl.ToggleSort("price"))
	assert.Equal(t, Sort{Key: "price", Direction: Asc}, ctrl.State().Sort)
	require.NoError(t, ctrl.ToggleSort("price"))
	assert.Equal(t, Sort{Key: "price", Direction: Desc}, ctrl.State().Sort)

	view := ctrl.View()
	for i := 0; i+1 < len(view.Items); i++ {
		assert.GreaterOrEqual(t, view.Items[i].Price, view.Items[i+1].Price)
	}
}

func TestControllerStateIsACopy(t *testing.T) {
	ctrl := NewController(rowConfig(), &sliceSource[row]{})
	require.NoError(t, ctrl.SetFilter("filter", "open"))

	state := ctrl.State()
	state.Filters["filter"] = "closed"
	assert.Equal(t, "open", ctrl.State().Filters["filter"])
}
