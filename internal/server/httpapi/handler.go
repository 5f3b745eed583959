package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/directory"
	"github.com/dmitrijs2005/userdesk/internal/listing"
	"github.com/dmitrijs2005/userdesk/internal/server/models"
	"github.com/gorilla/mux"
)

// Fixed client-facing messages.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgInternal           = "Internal server error"
	msgLoadFailed         = "Failed to load"
)

type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User models.Identity `json:"user"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *HTTPServer) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn(r.Context(), "malformed login body", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	session, err := s.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	cookie := &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if s.tokenValidity > 0 {
		cookie.MaxAge = int(s.tokenValidity.Seconds())
	}
	http.SetCookie(w, cookie)

	writeJSON(w, http.StatusOK, session)
}

func (s *HTTPServer) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// redirect only looks at whether the session cookie exists. Routes under
// /api/users verify the token itself.
func (s *HTTPServer) redirect(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(common.SessionCookieName); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *HTTPServer) session(w http.ResponseWriter, r *http.Request) {
	id, err := s.checkRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: *id})
}

func (s *HTTPServer) listAll(w http.ResponseWriter, r *http.Request) {
	users, err := s.directory.AllUsers(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// parseQuery reads search, sort, dir and page. Absent parameters keep the
// defaults of listing.NewQuery.
func parseQuery(r *http.Request) (listing.Query, error) {
	values := r.URL.Query()
	q := listing.NewQuery()

	q.Search = values.Get("search")

	if vs, ok := values["sort"]; ok {
		field, err := listing.ParseSortField(vs[0])
		if err != nil {
			return q, err
		}
		q.SortField = field
	}

	if v := values.Get("dir"); v != "" {
		dir, err := listing.ParseDirection(v)
		if err != nil {
			return q, err
		}
		q.Direction = dir
	}

	if v := values.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, err
		}
		q.Page = n
	}

	return q, nil
}

func (s *HTTPServer) listView(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := s.directory.ListUsers(r.Context(), q)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

func (s *HTTPServer) userDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	detail, err := s.directory.UserDetail(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *HTTPServer) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var u directory.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "malformed user")
		return
	}
	if u.ID == 0 {
		u.ID = id
	}
	if u.ID != id {
		writeError(w, http.StatusBadRequest, "user id does not match the path")
		return
	}

	updated, err := s.directory.UpdateUser(r.Context(), u)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if who := identityFrom(r.Context()); who != nil {
		s.logger.Info(r.Context(), "user edited", "user_id", id, "by", who.Username)
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, listing.ErrUnsupportedSortField),
		errors.Is(err, listing.ErrUnsupportedDirection):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrDataLoad):
		writeError(w, http.StatusBadGateway, msgLoadFailed)
	default:
		s.logger.Error(r.Context(), "unhandled error", "error", err, "request_id", requestIDFrom(r.Context()))
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
