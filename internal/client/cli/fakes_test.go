package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/client/config"
	"github.com/dmitrijs2005/userdesk/internal/directory"
	"github.com/dmitrijs2005/userdesk/internal/listing"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type fakeClient struct {
	token string

	loginErr error
	users    []directory.User
	usersErr error
	pingErr  error
	updated  *directory.User
}

func (f *fakeClient) SetToken(token string) { f.token = token }

func (f *fakeClient) Login(_ context.Context, username, password string) (*client.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if username != "testuser" || password != "testpass" {
		return nil, client.ErrInvalidCredentials
	}
	return &client.Session{Token: "tok", User: client.Identity{ID: "1", Username: username}}, nil
}

func (f *fakeClient) Session(context.Context) (*client.Identity, error) {
	return &client.Identity{ID: "1", Username: "testuser"}, nil
}

func (f *fakeClient) Users(context.Context) ([]directory.User, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return append([]directory.User(nil), f.users...), nil
}

func (f *fakeClient) UserDetail(_ context.Context, id int) (*client.UserDetail, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	for _, u := range f.users {
		if u.ID == id {
			return &client.UserDetail{User: u, Posts: []directory.Post{{ID: 7, UserID: id, Title: "hello world"}}}, nil
		}
	}
	return nil, client.ErrLoadFailed
}

func (f *fakeClient) UpdateUser(_ context.Context, u directory.User) (*directory.User, error) {
	f.updated = &u
	return &u, nil
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func sampleUsers(n int) []directory.User {
	users := make([]directory.User, 0, n)
	for i := 1; i <= n; i++ {
		users = append(users, directory.User{
			ID: i, Name: fmt.Sprintf("Member %02d", i), Username: fmt.Sprintf("m%02d", i),
			Email: fmt.Sprintf("m%02d@example.com", i), Address: directory.Address{City: "Riga"},
		})
	}
	return users
}

// newTestApp builds an App over a temp SQLite file with input taken from
// lines.
func newTestApp(t *testing.T, fc *fakeClient, lines ...string) (*App, *bytes.Buffer) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	return newApp(&config.Config{}, db, fc, listing.New(language.Und), r, &out), &out
}

func stubInputs(t *testing.T, username string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
