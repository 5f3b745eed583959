// Package operators stores dashboard operator accounts used by the
// store-backed credential check.
package operators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/dbx"
	"github.com/dmitrijs2005/userdesk/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts op, or replaces salt and verifier of an existing operator
// with the same username.
func (r *PostgresRepository) Create(ctx context.Context, op *models.Operator) (*models.Operator, error) {

	query :=
		`INSERT INTO operators (username, salt, master_key_verifier)
         VALUES ($1, $2, $3)
		 ON CONFLICT (username) DO UPDATE
		 SET salt = EXCLUDED.salt, master_key_verifier = EXCLUDED.master_key_verifier
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		op.UserName, op.Salt, op.Verifier).Scan(&op.ID, &op.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return op, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Operator, error) {
	query :=
		`SELECT id, username, master_key_verifier, salt, created_at FROM operators
		 WHERE username = $1
		 `

	op := &models.Operator{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&op.ID, &op.UserName, &op.Verifier, &op.Salt, &op.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return op, nil
}
