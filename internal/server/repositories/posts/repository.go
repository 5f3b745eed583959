package posts

import (
	"context"

	"github.com/dmitrijs2005/userdesk/internal/directory"
)

type Repository interface {
	ListByUserID(ctx context.Context, userID int) ([]directory.Post, error)
}
