// Package services contains server-side business logic. This file implements
// AuthService, the auth gate: it checks credentials, issues session tokens
// and provisions operators for the store-backed credential check.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/cryptox"
	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/dmitrijs2005/userdesk/internal/server/auth"
	"github.com/dmitrijs2005/userdesk/internal/server/config"
	"github.com/dmitrijs2005/userdesk/internal/server/models"
	"github.com/dmitrijs2005/userdesk/internal/server/repositories/repomanager"
)

// Session is what a successful login yields.
type Session struct {
	Token string          `json:"token"`
	User  models.Identity `json:"user"`
}

type AuthService struct {
	verifier      auth.CredentialVerifier
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
	log           logging.Logger
}

// NewAuthService constructs an AuthService. db and m back RegisterOperator
// and may be nil when operators are not stored in PostgreSQL.
func NewAuthService(v auth.CredentialVerifier, db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *AuthService {
	return &AuthService{
		verifier:      v,
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		log:           log.With("module", "auth"),
	}
}

// Authenticate checks the pair and, on a match, mints a session token.
// A mismatch is common.ErrInvalidCredentials; anything else that goes wrong
// is common.ErrorInternal.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	id, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			s.log.Info(ctx, "login rejected", "username", username)
			return nil, common.ErrInvalidCredentials
		}
		s.log.Error(ctx, "credential check failed", "username", username, "error", err)
		return nil, common.ErrorInternal
	}

	identity := models.Identity{ID: id.ID, Username: username}
	token, err := auth.GenerateToken(identity, s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.log.Error(ctx, "token signing failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.log.Info(ctx, "login accepted", "username", username, "user_id", identity.ID)
	return &Session{Token: token, User: identity}, nil
}

// CheckToken returns the identity a token was issued for.
func (s *AuthService) CheckToken(token string) (*models.Identity, error) {
	return auth.ParseToken(token, s.jwtSecret)
}

// RegisterOperator stores (or re-keys) an operator account.
func (s *AuthService) RegisterOperator(ctx context.Context, username, password string) (*models.Operator, error) {
	if s.db == nil || s.repomanager == nil {
		return nil, fmt.Errorf("operator store is not configured")
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	op := &models.Operator{
		UserName: username,
		Salt:     salt,
		Verifier: cryptox.PasswordVerifier([]byte(password), salt),
	}

	op, err := s.repomanager.Operators(s.db).Create(ctx, op)
	if err != nil {
		return nil, fmt.Errorf("error creating operator: %w", err)
	}

	s.log.Info(ctx, "operator registered", "username", username)
	return op, nil
}
