package listing

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Direction is the sort order of the active key.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts asc/desc in any case.
func ParseDirection(raw string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(raw))) {
	case Asc:
		return Asc, true
	case Desc:
		return Desc, true
	default:
		return "", false
	}
}

// Sort is the single active sort key. An empty key keeps insertion order.
type Sort struct {
	Key       string    `json:"key,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// Toggle returns the state after a click on key: the same key flips the
// direction, a different key starts ascending.
func (s Sort) Toggle(key string) Sort {
	if s.Key == key && s.Direction == Asc {
		return Sort{Key: key, Direction: Desc}
	}
	return Sort{Key: key, Direction: Asc}
}

// Comparator orders two records ascending, returning -1, 0 or 1.
type Comparator[T any] func(a, b T) int

// ByString compares a string field byte-wise (case-sensitive).
func ByString[T any](field func(T) string) Comparator[T] {
	return func(a, b T) int {
		return strings.Compare(field(a), field(b))
	}
}

// ByNumber compares a numeric field.
func ByNumber[T any](field func(T) float64) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(field(a), field(b))
	}
}

// ByInt compares an integer field.
func ByInt[T any](field func(T) int) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(field(a), field(b))
	}
}

// ByTime compares a timestamp field.
func ByTime[T any](field func(T) time.Time) Comparator[T] {
	return func(a, b T) int {
		return field(a).Compare(field(b))
	}
}

// ByRank compares a derived field after mapping it to an explicit rank.
func ByRank[T any](rank func(T) int) Comparator[T] {
	return ByInt(rank)
}

// Compare applies c in the given direction and normalises the result.
func Compare[T any](a, b T, c Comparator[T], dir Direction) int {
	result := sign(c(a, b))
	if dir == Desc {
		return -result
	}
	return result
}

// SortItems sorts items in place, keeping the relative order of equal keys.
func SortItems[T any](items []T, c Comparator[T], dir Direction) {
	if c == nil {
		return
	}
	slices.SortStableFunc(items, func(a, b T) int {
		return Compare(a, b, c, dir)
	})
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
