package listing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterIsSubsetMatchingQuery(t *testing.T) {
	cfg := rowConfig()
	rows := makeRows(40)
	for _, query := range []string{"", "  ", "course 1", "COURSE", "senior", "c0", "nothing-here"} {
		result := Filter(rows, cfg, query, nil)
		ids := map[string]bool{}
		for _, r := range rows {
			ids[r.ID] = true
		}
		for _, r := range result {
			assert.True(t, ids[r.ID], "result must come from the source")
			assert.True(t, strings.Contains(strings.ToLower(cfg.Search(r)), strings.ToLower(strings.TrimSpace(query))))
		}
		if strings.TrimSpace(query) == "" {
			assert.Len(t, result, len(rows))
		}
	}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	cfg := rowConfig()
	rows := []row{
		{ID: "1", Code: "STEM", Name: "Science Track", Category: "Senior High"},
		{ID: "2", Code: "ABM", Name: "Accountancy", Category: "Senior High"},
		{ID: "3", Code: "BSIT", Name: "Information Technology", Category: "Bachelor Degree"},
	}

	result := Filter(rows, cfg, "stem", nil)
	if assert.Len(t, result, 1) {
		assert.Equal(t, "STEM", result[0].Code)
	}
}

func TestFilterDimensions(t *testing.T) {
	cfg := rowConfig()
	rows := []row{
		{ID: "1", Category: "Senior High", Open: true},
		{ID: "2", Category: "Senior High", Open: false},
		{ID: "3", Category: "Diploma", Open: true},
	}

	assert.Len(t, Filter(rows, cfg, "", map[string]string{"filter": All}), 3)
	assert.Len(t, Filter(rows, cfg, "", map[string]string{"filter": "open"}), 2)
	assert.Len(t, Filter(rows, cfg, "", map[string]string{"filter": "closed"}), 1)
	assert.Len(t, Filter(rows, cfg, "", map[string]string{"filter": "Diploma"}), 1)
	assert.Empty(t, Filter(rows, cfg, "", map[string]string{"filter": "Doctorate"}))
	assert.Len(t, Filter(rows, cfg, "", map[string]string{"unknown": "x"}), 3)
}

func TestFilterDoesNotModifySource(t *testing.T) {
	cfg := rowConfig()
	rows := makeRows(10)
	original := append([]row(nil), rows...)

	_ = Filter(rows, cfg, "course", map[string]string{"filter": "open"})
	assert.Equal(t, original, rows)
}

func TestDimensionAccepts(t *testing.T) {
	bucketsOnly := Dimension[row]{Buckets: map[string]func(row) bool{"open": func(row) bool { return true }}}
	assert.True(t, bucketsOnly.Accepts(All))
	assert.True(t, bucketsOnly.Accepts("open"))
	assert.False(t, bucketsOnly.Accepts("closed"))

	withValue := rowConfig().Dimensions["filter"]
	assert.True(t, withValue.Accepts("Anything"))
}
