// Package httpapi exposes the auth gate and the user directory as a JSON
// HTTP API routed with gorilla/mux.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/directory"
	"github.com/dmitrijs2005/userdesk/internal/listing"
	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/dmitrijs2005/userdesk/internal/server/models"
	"github.com/dmitrijs2005/userdesk/internal/server/services"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

// AuthGate is the part of services.AuthService the API needs.
type AuthGate interface {
	Authenticate(ctx context.Context, username, password string) (*services.Session, error)
	CheckToken(token string) (*models.Identity, error)
}

// Directory is the part of services.DirectoryService the API needs.
type Directory interface {
	AllUsers(ctx context.Context) ([]directory.User, error)
	ListUsers(ctx context.Context, q listing.Query) (listing.Page, error)
	UserDetail(ctx context.Context, id int) (*services.UserDetail, error)
	UpdateUser(ctx context.Context, u directory.User) (*directory.User, error)
}

type HTTPServer struct {
	address       string
	auth          AuthGate
	directory     Directory
	logger        logging.Logger
	tokenValidity time.Duration
}

func NewHTTPServer(a string, l logging.Logger, ag AuthGate, d Directory, tokenValidity time.Duration) *HTTPServer {
	return &HTTPServer{
		address:       a,
		logger:        l.With("module", "http_server"),
		auth:          ag,
		directory:     d,
		tokenValidity: tokenValidity,
	}
}

// Handler builds the router with every route and middleware attached.
func (s *HTTPServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestID, s.accessLog)

	r.HandleFunc("/", s.redirect).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/ping", s.ping).Methods(http.MethodGet)
	api.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", s.logout).Methods(http.MethodPost)
	api.HandleFunc("/session", s.session).Methods(http.MethodGet)

	users := api.PathPrefix("/users").Subrouter()
	users.Use(s.requireAuth)
	users.HandleFunc("", s.listAll).Methods(http.MethodGet)
	users.HandleFunc("/view", s.listView).Methods(http.MethodGet)
	users.HandleFunc("/{id:[0-9]+}", s.userDetail).Methods(http.MethodGet)
	users.HandleFunc("/{id:[0-9]+}", s.updateUser).Methods(http.MethodPut)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(context.Background(), "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
