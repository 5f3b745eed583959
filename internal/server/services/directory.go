package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/directory"
	"github.com/dmitrijs2005/userdesk/internal/listing"
	"github.com/dmitrijs2005/userdesk/internal/logging"
	"golang.org/x/sync/errgroup"
)

// UserDetail is a user together with their posts.
type UserDetail struct {
	User  directory.User   `json:"user"`
	Posts []directory.Post `json:"posts"`
}

// DirectoryService reads and edits the user directory through a
// directory.Source and shapes list views with the listing pipeline.
type DirectoryService struct {
	source   directory.Source
	pipeline *listing.Pipeline
	log      logging.Logger
}

func NewDirectoryService(src directory.Source, p *listing.Pipeline, log logging.Logger) *DirectoryService {
	return &DirectoryService{source: src, pipeline: p, log: log.With("module", "directory")}
}

// asLoadErr guarantees callers can match the failure with common.ErrDataLoad.
func asLoadErr(err error) error {
	if errors.Is(err, common.ErrDataLoad) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrDataLoad, err)
}

func (s *DirectoryService) AllUsers(ctx context.Context) ([]directory.User, error) {
	users, err := s.source.Users(ctx)
	if err != nil {
		s.log.Error(ctx, "loading users failed", "error", err)
		return nil, asLoadErr(err)
	}
	return users, nil
}

// ListUsers fetches the collection and returns the page q selects.
// Unsupported sort input is reported before anything is fetched.
func (s *DirectoryService) ListUsers(ctx context.Context, q listing.Query) (listing.Page, error) {
	if _, err := listing.ParseSortField(string(q.SortField)); err != nil {
		return listing.Page{}, err
	}
	if _, err := listing.ParseDirection(string(q.Direction)); err != nil {
		return listing.Page{}, err
	}

	users, err := s.AllUsers(ctx)
	if err != nil {
		return listing.Page{}, err
	}
	return s.pipeline.Paginate(users, q)
}

// UserDetail loads the user and their posts concurrently. Either failing
// fails the whole detail.
func (s *DirectoryService) UserDetail(ctx context.Context, id int) (*UserDetail, error) {
	var (
		user  *directory.User
		posts []directory.Post
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.source.UserByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = s.source.PostsByUserID(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error(ctx, "loading user detail failed", "user_id", id, "error", err)
		return nil, asLoadErr(err)
	}

	if posts == nil {
		posts = []directory.Post{}
	}
	return &UserDetail{User: *user, Posts: posts}, nil
}

// UpdateUser validates and stores the whole record. The last submission wins.
func (s *DirectoryService) UpdateUser(ctx context.Context, u directory.User) (*directory.User, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.source.UpdateUser(ctx, u)
	if err != nil {
		s.log.Error(ctx, "updating user failed", "user_id", u.ID, "error", err)
		return nil, asLoadErr(err)
	}

	s.log.Info(ctx, "user updated", "user_id", u.ID)
	return updated, nil
}
