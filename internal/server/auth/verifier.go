// Package auth issues and verifies session tokens and checks operator
// credentials.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/cryptox"
	"github.com/dmitrijs2005/userdesk/internal/server/models"
)

// CredentialVerifier checks a username/password pair.
//
// Verify returns the matching identity, common.ErrInvalidCredentials when the
// pair does not match (without saying which half was wrong), or any other
// error when the check itself could not run.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*models.Identity, error)
}

// StaticVerifier accepts exactly one fixed pair.
type StaticVerifier struct {
	userID   string
	username []byte
	password []byte
}

func NewStaticVerifier(userID, username, password string) *StaticVerifier {
	return &StaticVerifier{userID: userID, username: []byte(username), password: []byte(password)}
}

func (v *StaticVerifier) Verify(ctx context.Context, username, password string) (*models.Identity, error) {
	userOK := subtle.ConstantTimeCompare(v.username, []byte(username))
	passOK := subtle.ConstantTimeCompare(v.password, []byte(password))
	if userOK&passOK != 1 {
		return nil, common.ErrInvalidCredentials
	}
	return &models.Identity{ID: v.userID, Username: username}, nil
}

// OperatorFinder looks up an operator by login. It returns common.ErrorNotFound
// for unknown logins.
type OperatorFinder interface {
	GetByUsername(ctx context.Context, username string) (*models.Operator, error)
}

// StoreVerifier checks credentials against the operator store.
type StoreVerifier struct {
	operators OperatorFinder
}

func NewStoreVerifier(operators OperatorFinder) *StoreVerifier {
	return &StoreVerifier{operators: operators}
}

func (v *StoreVerifier) Verify(ctx context.Context, username, password string) (*models.Identity, error) {
	op, err := v.operators.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same work as a real check so unknown users are not faster
			_ = cryptox.CheckPassword([]byte(password), common.GenerateRandByteArray(cryptox.SaltSize), nil)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("operator lookup: %w", err)
	}

	if !cryptox.CheckPassword([]byte(password), op.Salt, op.Verifier) {
		return nil, common.ErrInvalidCredentials
	}

	return &models.Identity{ID: op.ID, Username: op.UserName}, nil
}
