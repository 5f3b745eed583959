package listing

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/dmitrijs2005/userdesk/internal/directory"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func makeUsers(n int) []directory.User {
	users := make([]directory.User, 0, n)
	for i := 1; i <= n; i++ {
		users = append(users, directory.User{
			ID:       i,
			Name:     fmt.Sprintf("User %02d", i),
			Username: fmt.Sprintf("user%02d", i),
			Email:    fmt.Sprintf("user%02d@example.org", i),
		})
	}
	return users
}

func names(users []directory.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Name)
	}
	return out
}

func sampleDirectory() []directory.User {
	return []directory.User{
		{ID: 1, Name: "Leanne Graham", Username: "Bret", Email: "Sincere@april.biz", Address: directory.Address{City: "Gwenborough"}, Company: directory.Company{Name: "Romaguera-Crona"}},
		{ID: 2, Name: "Ervin Howell", Username: "Antonette", Email: "Shanna@melissa.tv", Address: directory.Address{City: "Wisokyburgh"}, Company: directory.Company{Name: "Deckow-Crist"}},
		{ID: 3, Name: "Clementine Bauch", Username: "Samantha", Email: "Nathan@yesenia.net", Address: directory.Address{City: "McKenziehaven"}, Company: directory.Company{Name: "Romaguera-Jacobson"}},
		{ID: 4, Name: "Patricia Lebsack", Username: "Karianne", Email: "Julianne.OConner@kory.org", Address: directory.Address{City: "South Elvis"}, Company: directory.Company{Name: "Robel-Corkery"}},
		{ID: 5, Name: "Chelsey Dietrich", Username: "Kamren", Email: "Lucio_Hettinger@annie.ca", Address: directory.Address{City: "Roscoeview"}, Company: directory.Company{Name: "Keebler LLC"}},
		{ID: 6, Name: "Émile Zola", Username: "ezola", Email: "emile@zola.fr", Address: directory.Address{City: "Paris"}, Company: directory.Company{Name: "Charpentier"}},
		{ID: 10, Name: "Clementina DuBuque", Username: "Moriah.Stanton", Email: "Rey.Padberg@karina.biz", Address: directory.Address{City: "Lebsackbury"}, Company: directory.Company{Name: "Hoeger LLC"}},
	}
}

func TestPaginate_BobAliceScenario(t *testing.T) {
	users := []directory.User{{ID: 1, Name: "Bob"}, {ID: 2, Name: "Alice"}}
	q := Query{SortField: SortByName, Direction: Ascending, Page: 1}

	page, err := Paginate(users, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, names(page.Items))

	page, err = Paginate(users, q.ToggleSort(SortByName))
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob", "Alice"}, names(page.Items))
}

func TestPaginate_TwentyFiveUsers(t *testing.T) {
	users := makeUsers(25)

	tests := []struct {
		page      int
		wantItems int
	}{
		{page: 1, wantItems: 10},
		{page: 2, wantItems: 10},
		{page: 3, wantItems: 5},
		{page: 4, wantItems: 0},
		{page: 0, wantItems: 0},
		{page: -2, wantItems: 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			page, err := Paginate(users, NewQuery().WithPage(tt.page))
			require.NoError(t, err)
			assert.Len(t, page.Items, tt.wantItems)
			assert.Equal(t, 3, page.TotalPages)
			assert.Equal(t, 25, page.Total)
			assert.Equal(t, tt.page, page.Page)
		})
	}
}

func TestPaginate_PageThreeHoldsTheTail(t *testing.T) {
	page, err := Paginate(makeUsers(25), NewQuery().WithPage(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"User 21", "User 22", "User 23", "User 24", "User 25"}, names(page.Items))
}

func TestPaginate_TotalPagesIsCeiling(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 20, 21, 99, 100} {
		page, err := Paginate(makeUsers(n), NewQuery())
		require.NoError(t, err)
		assert.Equal(t, (n+9)/10, page.TotalPages, "n=%d", n)
	}
}

func TestPaginate_EmptyCollection(t *testing.T) {
	page, err := Paginate(nil, NewQuery())
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalPages)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestPaginate_FilterProperties(t *testing.T) {
	users := sampleDirectory()
	terms := []string{"", "a", "LEANNE", "bret", ".biz", "kar", "zola", "ÉMILE", "nobody", "clementin"}

	for _, term := range terms {
		t.Run(term, func(t *testing.T) {
			page, err := Paginate(users, Query{Search: term, Page: 1})
			require.NoError(t, err)

			for _, got := range page.Items {
				assert.Contains(t, users, got, "result must come from the input")

				needle := strings.ToLower(term)
				matched := strings.Contains(strings.ToLower(got.Name), needle) ||
					strings.Contains(strings.ToLower(got.Email), needle) ||
					strings.Contains(strings.ToLower(got.Username), needle)
				assert.True(t, matched, "%q does not match %q", got.Name, term)
			}
		})
	}
}

func TestPaginate_EmptySearchMatchesAll(t *testing.T) {
	page, err := Paginate(sampleDirectory(), Query{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, len(sampleDirectory()), page.Total)
	assert.Equal(t, names(sampleDirectory()), names(page.Items), "no sort field keeps filter order")
}

func TestPaginate_SearchIsCaseInsensitiveOnEachField(t *testing.T) {
	users := sampleDirectory()

	byName, _ := Paginate(users, Query{Search: "lEaNnE", Page: 1})
	byEmail, _ := Paginate(users, Query{Search: "MELISSA.TV", Page: 1})
	byUsername, _ := Paginate(users, Query{Search: "moriah", Page: 1})

	assert.Equal(t, []string{"Leanne Graham"}, names(byName.Items))
	assert.Equal(t, []string{"Ervin Howell"}, names(byEmail.Items))
	assert.Equal(t, []string{"Clementina DuBuque"}, names(byUsername.Items))
}

func TestPaginate_SortIsOrderedUnderCollation(t *testing.T) {
	users := sampleDirectory()
	col := collate.New(language.Und)

	for _, field := range []SortField{SortByName, SortByUsername, SortByEmail, SortByCity, SortByCompany} {
		t.Run(string(field), func(t *testing.T) {
			asc, err := Paginate(users, Query{SortField: field, Direction: Ascending, Page: 1})
			require.NoError(t, err)
			desc, err := Paginate(users, Query{SortField: field, Direction: Descending, Page: 1})
			require.NoError(t, err)

			value := textValue(field)
			for i := 1; i < len(asc.Items); i++ {
				assert.LessOrEqual(t, col.CompareString(value(&asc.Items[i-1]), value(&asc.Items[i])), 0)
				assert.GreaterOrEqual(t, col.CompareString(value(&desc.Items[i-1]), value(&desc.Items[i])), 0)
			}

			reversed := slices.Clone(desc.Items)
			slices.Reverse(reversed)
			if diff := cmp.Diff(asc.Items, reversed); diff != "" {
				t.Fatalf("ascending is not the reverse of descending (-asc +reversed desc):\n%s", diff)
			}
		})
	}
}

func TestPaginate_LocaleAwareOrderPlacesAccentsWithBaseLetter(t *testing.T) {
	users := []directory.User{{ID: 1, Name: "Zoe"}, {ID: 2, Name: "Émile"}, {ID: 3, Name: "Eve"}}

	page, err := Paginate(users, Query{SortField: SortByName, Page: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"Émile", "Eve", "Zoe"}, names(page.Items))
}

func TestPaginate_SortByIDIsNumeric(t *testing.T) {
	page, err := Paginate(sampleDirectory(), Query{SortField: SortByID, Direction: Descending, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 10, page.Items[0].ID)
	assert.Equal(t, 1, page.Items[len(page.Items)-1].ID)
}

func TestPaginate_RejectsUnsupportedInput(t *testing.T) {
	_, err := Paginate(sampleDirectory(), Query{SortField: "address", Page: 1})
	require.ErrorIs(t, err, ErrUnsupportedSortField)

	_, err = Paginate(sampleDirectory(), Query{SortField: SortByName, Direction: "up", Page: 1})
	require.ErrorIs(t, err, ErrUnsupportedDirection)
}

func TestPaginate_IsIdempotentAndLeavesInputAlone(t *testing.T) {
	users := sampleDirectory()
	before := slices.Clone(users)
	q := Query{Search: "a", SortField: SortByEmail, Direction: Descending, Page: 1}

	first, err := Paginate(users, q)
	require.NoError(t, err)
	second, err := Paginate(users, q)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first, second))
	assert.Empty(t, cmp.Diff(before, users), "input must not be reordered")
}

func TestPipeline_SortIsStable(t *testing.T) {
	users := []directory.User{
		{ID: 1, Name: "Same", Username: "first"},
		{ID: 2, Name: "Same", Username: "second"},
		{ID: 3, Name: "Another", Username: "third"},
	}

	page, err := New(language.Und).Paginate(users, Query{SortField: SortByName, Direction: Ascending, Page: 1})
	require.NoError(t, err)

	got := page.Items
	assert.Equal(t, []string{"third", "first", "second"}, []string{got[0].Username, got[1].Username, got[2].Username})
}

func TestPaginate_HugePageIsEmpty(t *testing.T) {
	users := makeUsers(25)

	for _, n := range []int{math.MaxInt, math.MaxInt/PageSize + 2, 4} {
		var page Page
		require.NotPanics(t, func() {
			var err error
			page, err = Paginate(users, Query{SortField: SortByID, Page: n})
			require.NoError(t, err)
		})
		assert.Empty(t, page.Items, "page %d", n)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, n, page.Page)
	}
}

func TestParseLanguage(t *testing.T) {
	tag, err := ParseLanguage("")
	require.NoError(t, err)
	assert.Equal(t, language.Und, tag)

	tag, err = ParseLanguage("sv")
	require.NoError(t, err)
	assert.Equal(t, language.Swedish, tag)

	_, err = ParseLanguage("not a tag!")
	require.Error(t, err)
}
