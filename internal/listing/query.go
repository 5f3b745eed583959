// Package listing turns a user collection and a Query into the page an
// operator sees: filter by search term, sort by one field, cut a page.
// Everything here is a pure function of its inputs.
package listing

import (
	"errors"
	"fmt"
	"strings"
)

// PageSize is the fixed number of users per page.
const PageSize = 10

var (
	ErrUnsupportedSortField = errors.New("unsupported sort field")
	ErrUnsupportedDirection = errors.New("unsupported sort direction")
)

// Direction orders the sorted collection.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// SortField names a scalar User attribute the pipeline can order by.
type SortField string

const (
	SortNone       SortField = ""
	SortByID       SortField = "id"
	SortByName     SortField = "name"
	SortByUsername SortField = "username"
	SortByEmail    SortField = "email"
	SortByPhone    SortField = "phone"
	SortByWebsite  SortField = "website"
	SortByCity     SortField = "city"
	SortByCompany  SortField = "company"
)

// SortFields lists every supported field in display order.
var SortFields = []SortField{
	SortByID, SortByName, SortByUsername, SortByEmail,
	SortByPhone, SortByWebsite, SortByCity, SortByCompany,
}

// ParseSortField accepts a field name in any case. An empty string means
// "keep filter order".
func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	if f == SortNone {
		return SortNone, nil
	}
	for _, known := range SortFields {
		if f == known {
			return f, nil
		}
	}
	return SortNone, fmt.Errorf("%w: %q", ErrUnsupportedSortField, s)
}

// ParseDirection accepts asc/desc in any case; empty means ascending.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	}
	return Ascending, fmt.Errorf("%w: %q", ErrUnsupportedDirection, s)
}

// Query is the state behind the visible slice of users. It is a value:
// every helper returns an updated copy.
type Query struct {
	Search    string    `json:"search"`
	SortField SortField `json:"sort"`
	Direction Direction `json:"dir"`
	Page      int       `json:"page"`
}

// NewQuery returns the initial state of the list view: no search, sorted by
// name ascending, first page.
func NewQuery() Query {
	return Query{SortField: SortByName, Direction: Ascending, Page: 1}
}

// ToggleSort applies the header-click rule: the active field flips its
// direction, any other field becomes active, ascending, on page 1.
func (q Query) ToggleSort(field SortField) Query {
	if field == q.SortField {
		q.Direction = q.normalizedDirection().Flip()
		return q
	}
	q.SortField = field
	q.Direction = Ascending
	q.Page = 1
	return q
}

// WithSearch sets the term and returns to the first page.
func (q Query) WithSearch(term string) Query {
	q.Search = term
	q.Page = 1
	return q
}

// WithPage jumps to page n. No clamping is applied.
func (q Query) WithPage(n int) Query {
	q.Page = n
	return q
}

// Next moves one page forward.
func (q Query) Next() Query {
	q.Page++
	return q
}

// Prev moves one page back, never below 1.
func (q Query) Prev() Query {
	if q.Page > 1 {
		q.Page--
	}
	return q
}

func (q Query) normalizedDirection() Direction {
	if q.Direction == "" {
		return Ascending
	}
	return q.Direction
}
