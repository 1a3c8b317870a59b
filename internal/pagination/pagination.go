// Package pagination slices ordered result sets into fixed-size pages.
package pagination

import (
	"strconv"
	"strings"
)

// DefaultPageSize is the page size of every listing endpoint.
const DefaultPageSize = 10

type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Count    int
}

// ParsePageNumber turns a raw query value into a page number. Anything that is not an integer is page 1.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// Paginate returns page number of items. Out-of-range numbers clamp to the first or last page,
// and an empty input yields an empty first page.
func Paginate[T any](items []T, number, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	count := len(items)
	numPages := (count + size - 1) / size
	if numPages == 0 {
		numPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	start := (number - 1) * size
	end := min(start+size, count)
	pageItems := make([]T, 0, end-start)
	if start < count {
		pageItems = append(pageItems, items[start:end]...)
	}

	return Page[T]{Items: pageItems, Number: number, NumPages: numPages, Count: count}
}
