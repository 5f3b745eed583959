package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/directory"
	"github.com/dmitrijs2005/userdesk/internal/listing"
)

// DirectoryService keeps the fetched collection and the current list query,
// and recomputes the visible page whenever either changes.
type DirectoryService struct {
	client   client.Client
	pipeline *listing.Pipeline

	mu     sync.Mutex
	users  []directory.User
	loaded bool
	query  listing.Query
}

func NewDirectoryService(c client.Client, p *listing.Pipeline) *DirectoryService {
	return &DirectoryService{client: c, pipeline: p, query: listing.NewQuery()}
}

// Refresh fetches the collection again. On failure the previous collection
// is kept.
func (s *DirectoryService) Refresh(ctx context.Context) error {
	users, err := s.client.Users(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
	s.loaded = true
	return nil
}

// Reset drops the cached collection and restores the initial query.
func (s *DirectoryService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = nil
	s.loaded = false
	s.query = listing.NewQuery()
}

func (s *DirectoryService) Query() listing.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// View returns the current page, fetching the collection on first use.
func (s *DirectoryService) View(ctx context.Context) (listing.Page, error) {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()

	if !loaded {
		if err := s.Refresh(ctx); err != nil {
			return listing.Page{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pipeline.Paginate(s.users, s.query)
}

func (s *DirectoryService) apply(ctx context.Context, f func(listing.Query) listing.Query) (listing.Page, error) {
	s.mu.Lock()
	s.query = f(s.query)
	s.mu.Unlock()
	return s.View(ctx)
}

// Search sets the search term and goes back to page 1.
func (s *DirectoryService) Search(ctx context.Context, term string) (listing.Page, error) {
	return s.apply(ctx, func(q listing.Query) listing.Query { return q.WithSearch(term) })
}

// ToggleSort applies the header-click rule for field.
func (s *DirectoryService) ToggleSort(ctx context.Context, field listing.SortField) (listing.Page, error) {
	return s.apply(ctx, func(q listing.Query) listing.Query { return q.ToggleSort(field) })
}

func (s *DirectoryService) GoTo(ctx context.Context, page int) (listing.Page, error) {
	return s.apply(ctx, func(q listing.Query) listing.Query { return q.WithPage(page) })
}

// Next moves forward unless the current page is already the last one.
func (s *DirectoryService) Next(ctx context.Context) (listing.Page, error) {
	cur, err := s.View(ctx)
	if err != nil {
		return listing.Page{}, err
	}
	if cur.Page >= cur.TotalPages {
		return cur, nil
	}
	return s.apply(ctx, listing.Query.Next)
}

func (s *DirectoryService) Prev(ctx context.Context) (listing.Page, error) {
	return s.apply(ctx, listing.Query.Prev)
}

func (s *DirectoryService) Detail(ctx context.Context, id int) (*client.UserDetail, error) {
	return s.client.UserDetail(ctx, id)
}

// Update validates u, stores it, and replaces the cached copy.
func (s *DirectoryService) Update(ctx context.Context, u directory.User) (*directory.User, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.client.UpdateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == updated.ID {
			s.users[i] = *updated
			break
		}
	}
	return updated, nil
}
