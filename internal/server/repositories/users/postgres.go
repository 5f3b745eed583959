// Package users stores directory user records in PostgreSQL.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/dbx"
	"github.com/dmitrijs2005/userdesk/internal/directory"
)

const columns = `id, name, username, email, phone, website,
		 street, suite, city, zipcode, company_name, catch_phrase, bs`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*directory.User, error) {
	u := &directory.User{}
	err := s.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Website,
		&u.Address.Street, &u.Address.Suite, &u.Address.City, &u.Address.Zipcode,
		&u.Company.Name, &u.Company.CatchPhrase, &u.Company.BS)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]directory.User, error) {
	query := `SELECT ` + columns + ` FROM directory_users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []directory.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*directory.User, error) {
	query := `SELECT ` + columns + ` FROM directory_users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

// Update replaces every column of the row with u's id.
func (r *PostgresRepository) Update(ctx context.Context, u directory.User) (*directory.User, error) {
	query :=
		`UPDATE directory_users
		 SET name = $2, username = $3, email = $4, phone = $5, website = $6,
		     street = $7, suite = $8, city = $9, zipcode = $10,
		     company_name = $11, catch_phrase = $12, bs = $13
		 WHERE id = $1
		 RETURNING ` + columns

	got, err := scanUser(r.db.QueryRowContext(ctx, query,
		u.ID, u.Name, u.Username, u.Email, u.Phone, u.Website,
		u.Address.Street, u.Address.Suite, u.Address.City, u.Address.Zipcode,
		u.Company.Name, u.Company.CatchPhrase, u.Company.BS))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return got, nil
}
