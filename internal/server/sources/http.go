// Package sources implements directory.Source on top of the places the
// directory can live: a JSONPlaceholder-compatible REST API, PostgreSQL,
// or JSON snapshots in an S3 bucket.
package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/directory"
)

// HTTPSource reads and writes the directory through a REST API exposing
// /users, /users/{id} and /posts?userId={id}.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func loadErr(cause error) error {
	return fmt.Errorf("%w: %w", common.ErrDataLoad, cause)
}

func (s *HTTPSource) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return loadErr(err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return loadErr(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return loadErr(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return loadErr(common.ErrorNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return loadErr(fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return loadErr(fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}

func (s *HTTPSource) Users(ctx context.Context) ([]directory.User, error) {
	users := []directory.User{}
	if err := s.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *HTTPSource) UserByID(ctx context.Context, id int) (*directory.User, error) {
	u := &directory.User{}
	if err := s.do(ctx, http.MethodGet, "/users/"+strconv.Itoa(id), nil, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *HTTPSource) PostsByUserID(ctx context.Context, userID int) ([]directory.Post, error) {
	posts := []directory.Post{}
	q := url.Values{"userId": {strconv.Itoa(userID)}}
	if err := s.do(ctx, http.MethodGet, "/posts?"+q.Encode(), nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateUser sends the whole record and returns what the API echoed back.
func (s *HTTPSource) UpdateUser(ctx context.Context, u directory.User) (*directory.User, error) {
	out := &directory.User{}
	if err := s.do(ctx, http.MethodPut, "/users/"+strconv.Itoa(u.ID), u, out); err != nil {
		return nil, err
	}
	return out, nil
}
