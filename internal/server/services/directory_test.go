package services

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/directory"
	"github.com/dmitrijs2005/userdesk/internal/listing"
	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func sampleSource(n int) *fakeSource {
	src := &fakeSource{}
	for i := 1; i <= n; i++ {
		src.users = append(src.users, directory.User{
			ID: i, Name: fmt.Sprintf("User %02d", i), Username: fmt.Sprintf("u%02d", i),
			Email: fmt.Sprintf("u%02d@example.com", i),
		})
	}
	src.posts = []directory.Post{
		{ID: 1, UserID: 1, Title: "first"},
		{ID: 2, UserID: 1, Title: "second"},
		{ID: 3, UserID: 2, Title: "other"},
	}
	return src
}

func newDirectoryService(src directory.Source) *DirectoryService {
	return NewDirectoryService(src, listing.New(language.Und), logging.Nop())
}

func TestListUsers(t *testing.T) {
	s := newDirectoryService(sampleSource(25))

	q := listing.NewQuery().WithPage(3)
	page, err := s.ListUsers(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "User 21", page.Items[0].Name)
}

func TestListUsers_PageFarPastTheEnd(t *testing.T) {
	s := newDirectoryService(sampleSource(25))

	page, err := s.ListUsers(context.Background(), listing.NewQuery().WithPage(math.MaxInt))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.TotalPages)
}

func TestListUsers_Search(t *testing.T) {
	s := newDirectoryService(sampleSource(25))

	page, err := s.ListUsers(context.Background(), listing.NewQuery().WithSearch("U07@EXAMPLE"))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 7, page.Items[0].ID)
}

func TestListUsers_BadSortFailsBeforeFetching(t *testing.T) {
	src := sampleSource(3)
	s := newDirectoryService(src)

	q := listing.NewQuery()
	q.SortField = "shoe_size"
	_, err := s.ListUsers(context.Background(), q)
	require.ErrorIs(t, err, listing.ErrUnsupportedSortField)
	assert.Zero(t, src.calls.Load())
}

func TestListUsers_SourceFailure(t *testing.T) {
	s := newDirectoryService(&fakeSource{usersErr: errBoom{}})

	_, err := s.ListUsers(context.Background(), listing.NewQuery())
	require.ErrorIs(t, err, common.ErrDataLoad)
}

func TestAllUsers(t *testing.T) {
	s := newDirectoryService(sampleSource(4))
	users, err := s.AllUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 4)
}

func TestUserDetail(t *testing.T) {
	s := newDirectoryService(sampleSource(3))

	d, err := s.UserDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "User 01", d.User.Name)
	assert.Len(t, d.Posts, 2)

	d, err = s.UserDetail(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, d.Posts)
	assert.Empty(t, d.Posts)
}

func TestUserDetail_AnyFailureFailsTheWhole(t *testing.T) {
	for name, src := range map[string]*fakeSource{
		"user":    func() *fakeSource { s := sampleSource(2); s.userErr = errBoom{}; return s }(),
		"posts":   func() *fakeSource { s := sampleSource(2); s.postsErr = errBoom{}; return s }(),
		"missing": sampleSource(0),
	} {
		t.Run(name, func(t *testing.T) {
			d, err := newDirectoryService(src).UserDetail(context.Background(), 1)
			assert.Nil(t, d)
			require.ErrorIs(t, err, common.ErrDataLoad)
		})
	}
}

func TestUpdateUser(t *testing.T) {
	src := sampleSource(2)
	s := newDirectoryService(src)

	u := src.users[0]
	u.Email = "changed@example.com"
	got, err := s.UpdateUser(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, u, *got)
	assert.Equal(t, u, *src.saved)
}

func TestUpdateUser_Invalid(t *testing.T) {
	src := sampleSource(1)
	s := newDirectoryService(src)

	u := src.users[0]
	u.Email = "not-an-email"
	_, err := s.UpdateUser(context.Background(), u)
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Nil(t, src.saved)
}

func TestUpdateUser_SourceFailure(t *testing.T) {
	src := sampleSource(1)
	src.saveErr = errBoom{}
	_, err := newDirectoryService(src).UpdateUser(context.Background(), src.users[0])
	require.ErrorIs(t, err, common.ErrDataLoad)
}
