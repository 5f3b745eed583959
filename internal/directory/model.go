// Package directory holds the user and post records served by the data
// collaborator, and the Source interface every collaborator implements.
package directory

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/userdesk/internal/common"
)

// Address is the postal part of a User.
type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
}

// Company is the employer part of a User.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}

// User is a directory record. Edits replace the whole record.
type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Address  Address `json:"address"`
	Company  Company `json:"company"`
}

// Post belongs to a user through UserID.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Validate checks the fields an edit must carry. Errors wrap common.ErrValidation.
func (u User) Validate() error {
	if u.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", common.ErrValidation)
	}
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("%w: username is required", common.ErrValidation)
	}
	// a bare address only; "Bob <bob@x.io>" parses but is not a plain email
	addr, err := mail.ParseAddress(u.Email)
	if err != nil || addr.Address != strings.TrimSpace(u.Email) {
		return fmt.Errorf("%w: email %q is invalid", common.ErrValidation, u.Email)
	}
	return nil
}
