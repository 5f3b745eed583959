package listing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/userdesk/internal/directory"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Page is the render-ready result of one pipeline run.
type Page struct {
	Items      []directory.User `json:"items"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
	Page       int              `json:"page"`
}

// Pipeline runs filter, sort and paginate with the collation rules of one
// language. The zero value is not usable; call New.
//
// Collators and casers keep internal buffers, so each run builds its own and
// a Pipeline is safe for concurrent use.
type Pipeline struct {
	lang language.Tag
}

// New returns a Pipeline collating in lang. language.Und selects the root
// collation order.
func New(lang language.Tag) *Pipeline {
	return &Pipeline{lang: lang}
}

// ParseLanguage resolves a BCP 47 tag from config; "" means language.Und.
func ParseLanguage(s string) (language.Tag, error) {
	if strings.TrimSpace(s) == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("collation language %q: %w", s, err)
	}
	return tag, nil
}

var defaultPipeline = New(language.Und)

// Paginate runs the default (root collation) pipeline.
func Paginate(users []directory.User, q Query) (Page, error) {
	return defaultPipeline.Paginate(users, q)
}

// Paginate filters users by q.Search, orders them by q.SortField and
// q.Direction, and returns page q.Page of PageSize items. users is never
// modified. A page outside [1, TotalPages] yields no items.
func (p *Pipeline) Paginate(users []directory.User, q Query) (Page, error) {
	field, err := ParseSortField(string(q.SortField))
	if err != nil {
		return Page{}, err
	}
	dir, err := ParseDirection(string(q.Direction))
	if err != nil {
		return Page{}, err
	}

	matched := p.Filter(users, q.Search)
	p.sortInPlace(matched, field, dir)

	total := len(matched)
	page := Page{
		Items:      []directory.User{},
		Total:      total,
		TotalPages: (total + PageSize - 1) / PageSize,
		Page:       q.Page,
	}

	// compare before multiplying: a huge page number would overflow start
	if q.Page < 1 || q.Page > page.TotalPages {
		return page, nil
	}
	start := (q.Page - 1) * PageSize
	if start >= total {
		return page, nil
	}
	end := min(start+PageSize, total)
	page.Items = append(page.Items, matched[start:end]...)

	return page, nil
}

// Filter returns a new slice holding the users whose name, email or username
// contains term, compared after case folding. An empty term keeps everyone.
func (p *Pipeline) Filter(users []directory.User, term string) []directory.User {
	out := make([]directory.User, 0, len(users))
	if term == "" {
		return append(out, users...)
	}

	folder := cases.Fold()
	needle := folder.String(term)

	for _, u := range users {
		if strings.Contains(folder.String(u.Name), needle) ||
			strings.Contains(folder.String(u.Email), needle) ||
			strings.Contains(folder.String(u.Username), needle) {
			out = append(out, u)
		}
	}
	return out
}

func (p *Pipeline) sortInPlace(users []directory.User, field SortField, dir Direction) {
	if field == SortNone {
		return
	}

	var compare func(a, b *directory.User) int
	if field == SortByID {
		compare = func(a, b *directory.User) int { return cmp.Compare(a.ID, b.ID) }
	} else {
		col := collate.New(p.lang)
		value := textValue(field)
		compare = func(a, b *directory.User) int { return col.CompareString(value(a), value(b)) }
	}

	slices.SortStableFunc(users, func(a, b directory.User) int {
		c := compare(&a, &b)
		if dir == Descending {
			return -c
		}
		return c
	})
}

func textValue(field SortField) func(u *directory.User) string {
	switch field {
	case SortByUsername:
		return func(u *directory.User) string { return u.Username }
	case SortByEmail:
		return func(u *directory.User) string { return u.Email }
	case SortByPhone:
		return func(u *directory.User) string { return u.Phone }
	case SortByWebsite:
		return func(u *directory.User) string { return u.Website }
	case SortByCity:
		return func(u *directory.User) string { return u.Address.City }
	case SortByCompany:
		return func(u *directory.User) string { return u.Company.Name }
	default:
		return func(u *directory.User) string { return u.Name }
	}
}
