// Package mockapi serves the users/posts backend API from in-memory data.
// It backs local runs (cmd/mock-api) and the API client tests.
package mockapi

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rshade/postdeck/internal/api"
)

// Query defaults applied when the caller omits them.
const (
	defaultPage  = 1
	defaultLimit = 10
)

var (
	errNotFound   = errors.New("not found")
	errBadRequest = errors.New("bad request")
)

// Server is an in-memory backend. The zero value is not usable; use New.
type Server struct {
	mu         sync.RWMutex
	users      []api.User
	posts      []api.Post
	nextPostID int
	logger     zerolog.Logger
}

// New creates a server holding users and posts.
func New(users []api.User, posts []api.Post, logger zerolog.Logger) *Server {
	next := 1
	for _, p := range posts {
		if n, err := strconv.Atoi(p.ID.String()); err == nil && n >= next {
			next = n + 1
		}
	}
	return &Server{
		users:      append([]api.User(nil), users...),
		posts:      append([]api.Post(nil), posts...),
		nextPostID: next,
		logger:     logger.With().Str("component", "mockapi").Logger(),
	}
}

// Handler returns the chi router for the backend routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.listUsers)
		r.Get("/count", s.countUsers)
		r.Get("/{userID}", s.getUser)
	})
	r.Route("/posts", func(r chi.Router) {
		r.Get("/", s.listPosts)
		r.Post("/", s.createPost)
		r.Delete("/{postID}", s.deletePost)
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", chimw.GetReqID(r.Context())).
			Dur("elapsed", time.Since(start)).
			Msg("handled request")
	})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", defaultPage)
	if err != nil || page < 1 {
		s.fail(w, http.StatusBadRequest, "invalid page number")
		return
	}
	limit, err := queryInt(r, "limit", defaultLimit)
	if err != nil || limit < 1 {
		s.fail(w, http.StatusBadRequest, "invalid limit number")
		return
	}

	s.mu.RLock()
	total := len(s.users)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	users := append([]api.User{}, s.users[start:end]...)
	s.mu.RUnlock()

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	s.ok(w, "Users fetched successfully", api.UsersPage{
		Users:      users,
		Count:      total,
		TotalPages: totalPages,
		Page:       page,
		Limit:      limit,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	})
}

func (s *Server) countUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	n := len(s.users)
	s.mu.RUnlock()
	s.ok(w, "Users count fetched successfully", api.UserCount{Count: n})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id := api.ID(chi.URLParam(r, "userID"))

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			s.ok(w, "User fetched successfully", u)
			return
		}
	}
	s.fail(w, http.StatusNotFound, errNotFound.Error())
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	userID := api.ID(r.URL.Query().Get("user_id"))
	if userID == "" {
		s.fail(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	s.mu.RLock()
	posts := []api.Post{}
	for _, p := range s.posts {
		if p.UserID == userID {
			posts = append(posts, p)
		}
	}
	s.mu.RUnlock()

	s.ok(w, "Posts fetched successfully", posts)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	var in api.NewPost
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&in); err != nil {
		s.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		s.fail(w, http.StatusBadRequest, errBadRequest.Error())
		return
	}
	in = in.Normalize()

	s.mu.Lock()
	if !s.hasUserLocked(in.UserID) {
		s.mu.Unlock()
		s.fail(w, http.StatusNotFound, "user not found")
		return
	}
	post := api.Post{
		ID:        api.ID(strconv.Itoa(s.nextPostID)),
		UserID:    in.UserID,
		Title:     in.Title,
		Body:      in.Body,
		CreatedAt: time.Now().UTC(),
	}
	s.nextPostID++
	s.posts = append(s.posts, post)
	s.mu.Unlock()

	s.ok(w, "Post created successfully", post)
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	id := api.ID(chi.URLParam(r, "postID"))

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i:i], s.posts[i+1:]...)
			s.ok(w, "Post deleted successfully", nil)
			return
		}
	}
	s.fail(w, http.StatusNotFound, errNotFound.Error())
}

func (s *Server) hasUserLocked(id api.ID) bool {
	for _, u := range s.users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func (s *Server) ok(w http.ResponseWriter, msg string, data any) {
	s.write(w, http.StatusOK, api.Envelope[any]{Success: true, Message: msg, Data: data})
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string) {
	s.write(w, status, api.Envelope[any]{Success: false, Message: msg})
}

func (s *Server) write(w http.ResponseWriter, status int, env api.Envelope[any]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
