// Package services contains application services for the userdesk client.
// This file defines the session service: login and logout against the
// server, and the locally persisted token that decides whether the client
// starts on the dashboard or at the login prompt.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/userdesk/internal/dbx"
)

// SessionService defines session operations for the CLI.
//
// Contract:
//   - Login: authenticate, persist the token and install it on the client.
//   - Logout: forget the token locally and on the client.
//   - HasSession: whether a token is stored. Presence only; the server
//     decides whether it is still valid.
//   - Restore: install a stored token on the client, if any.
//   - Username: the login name saved with the token.
type SessionService interface {
	Login(ctx context.Context, username string, password []byte) (*client.Session, error)
	Logout(ctx context.Context) error
	HasSession(ctx context.Context) (bool, error)
	Restore(ctx context.Context) (bool, error)
	Username(ctx context.Context) (string, error)
}

type sessionService struct {
	client client.Client
	db     *sql.DB
}

// NewSessionService constructs a SessionService bound to the API client and
// the local database.
func NewSessionService(c client.Client, db *sql.DB) SessionService {
	return &sessionService{client: c, db: db}
}

func (s *sessionService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

func (s *sessionService) Login(ctx context.Context, username string, password []byte) (*client.Session, error) {
	session, err := s.client.Login(ctx, username, string(password))
	if err != nil {
		return nil, err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeySessionToken, session.Token); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyUsername, session.User.Username)
	})
	if err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	s.client.SetToken(session.Token)
	return session, nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	s.client.SetToken("")
	return s.getMetadataRepo().Delete(ctx, metadata.KeySessionToken, metadata.KeyUsername)
}

func (s *sessionService) HasSession(ctx context.Context) (bool, error) {
	token, ok, err := s.getMetadataRepo().Get(ctx, metadata.KeySessionToken)
	if err != nil {
		return false, err
	}
	return ok && token != "", nil
}

func (s *sessionService) Restore(ctx context.Context) (bool, error) {
	token, ok, err := s.getMetadataRepo().Get(ctx, metadata.KeySessionToken)
	if err != nil {
		return false, err
	}
	if !ok || token == "" {
		return false, nil
	}
	s.client.SetToken(token)
	return true, nil
}

func (s *sessionService) Username(ctx context.Context) (string, error) {
	name, _, err := s.getMetadataRepo().Get(ctx, metadata.KeyUsername)
	return name, err
}
