package directory

import "context"

// Source is the data collaborator. Implementations report every failure
// wrapped in common.ErrDataLoad and do not retry.
type Source interface {
	Users(ctx context.Context) ([]User, error)
	UserByID(ctx context.Context, id int) (*User, error)
	PostsByUserID(ctx context.Context, userID int) ([]Post, error)
	UpdateUser(ctx context.Context, u User) (*User, error)
}
