package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// start decides where the session begins: a stored token opens the
// dashboard, otherwise the user is asked to log in. Token presence is all
// that is checked; an expired token surfaces on the first list call.
func (a *App) start(ctx context.Context) {
	ok, err := a.session.Restore(ctx)
	if err != nil {
		log.Printf("error reading local session: %s", err.Error())
	}

	if ok {
		a.loggedIn = true
		a.userName, _ = a.session.Username(ctx)
		_ = a.List(ctx)
		return
	}

	fmt.Fprintln(a.out, "Please log in")
	_ = a.Login(ctx)
}

// Login prompts the user for credentials and tries to authenticate.
//
// On success the token is stored locally and the first page of users is
// shown. Rejected credentials print "Invalid credentials" and leave the
// user logged out. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	session, err := a.session.Login(ctx, userName, password)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrInvalidCredentials):
			fmt.Fprintln(a.out, "Invalid credentials")
		case errors.Is(err, client.ErrUnavailable):
			a.setMode(ModeOffline)
			fmt.Fprintln(a.out, "Server unavailable")
		default:
			log.Printf("Login unsuccessful: %s", err.Error())
			fmt.Fprintln(a.out, "Login failed")
		}
		return err
	}

	a.loggedIn = true
	a.userName = session.User.Username
	a.setMode(ModeOnline)
	a.directory.Reset()
	fmt.Fprintf(a.out, "Welcome, %s\n", a.userName)

	return a.List(ctx)
}

// Logout forgets the stored token and the cached users.
func (a *App) Logout(ctx context.Context) error {
	a.dropSession(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) dropSession(ctx context.Context) {
	if err := a.session.Logout(ctx); err != nil {
		log.Printf("error clearing local session: %s", err.Error())
	}
	a.directory.Reset()
	a.loggedIn = false
	a.userName = ""
}

// report prints the user-facing message for err. An unauthorized answer
// means the stored token is no longer accepted, so the session is dropped.
func (a *App) report(ctx context.Context, what string, err error) {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		a.dropSession(ctx)
		fmt.Fprintln(a.out, "Session expired, please log in")
	case errors.Is(err, common.ErrValidation), errors.Is(err, client.ErrRejected):
		fmt.Fprintln(a.out, err.Error())
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
		fmt.Fprintf(a.out, "Failed to load %s\n", what)
	default:
		fmt.Fprintf(a.out, "Failed to load %s\n", what)
	}
}
