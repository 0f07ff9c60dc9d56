package listing

import (
	"fmt"
	"strings"
	"time"
)

type row struct {
	ID       string
	Code     string
	Name     string
	Category string
	Price    float64
	Open     bool
	Created  time.Time
}

func rowID(r row) string { return r.ID }

func rowConfig() Config[row] {
	return Config[row]{
		Name:   "rows",
		ID:     rowID,
		Search: func(r row) string { return SearchText(r.Code, r.Name, r.Category) },
		Dimensions: map[string]Dimension[row]{
			"filter": {
				Buckets: map[string]func(row) bool{
					"open":   func(r row) bool { return r.Open },
					"closed": func(r row) bool { return !r.Open },
				},
				Value: func(r row) string { return r.Category },
			},
		},
		SortKeys: map[string]Comparator[row]{
			"code":    ByString(func(r row) string { return r.Code }),
			"price":   ByNumber(func(r row) float64 { return r.Price }),
			"created": ByTime(func(r row) time.Time { return r.Created }),
			"open": ByRank(func(r row) int {
				if r.Open {
					return 1
				}
				return 0
			}),
		},
		PageSize: 10,
	}
}

func makeRows(n int) []row {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	categories := []string{"Senior High", "Bachelor Degree", "Diploma"}
	rows := make([]row, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, row{
			ID:       fmt.Sprintf("R-%03d", i),
			Code:     fmt.Sprintf("C%02d", (i*7)%n),
			Name:     strings.Repeat("x", i%4) + fmt.Sprintf("course %d", i),
			Category: categories[i%len(categories)],
			Price:    float64((i * 37) % 11 * 1000),
			Open:     i%2 == 0,
			Created:  base.Add(time.Duration(i%5) * time.Hour),
		})
	}
	return rows
}

type sliceSource[T any] struct {
	items []T
}

func (s *sliceSource[T]) Snapshot() []T { return s.items }
