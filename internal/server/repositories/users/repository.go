package users

import (
	"context"

	"github.com/dmitrijs2005/userdesk/internal/directory"
)

type Repository interface {
	List(ctx context.Context) ([]directory.User, error)
	GetByID(ctx context.Context, id int) (*directory.User, error)
	Update(ctx context.Context, u directory.User) (*directory.User, error)
}
