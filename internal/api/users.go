package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ListUsers fetches one page of users. page is 1-based.
func (c *Client) ListUsers(ctx context.Context, page, limit int) (UsersPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("page", strconv.Itoa(page))

	data, _, err := call[UsersPage](ctx, c, request{
		endpoint: "users.list",
		method:   http.MethodGet,
		path:     "/users",
		query:    q,
	})
	return data, err
}

// GetUser fetches a single user.
func (c *Client) GetUser(ctx context.Context, id ID) (User, error) {
	if strings.TrimSpace(id.String()) == "" {
		return User{}, errors.New("user id is required")
	}
	data, _, err := call[User](ctx, c, request{
		endpoint: "users.get",
		method:   http.MethodGet,
		path:     "/users/" + url.PathEscape(id.String()),
	})
	return data, err
}

// CountUsers returns the total number of users.
func (c *Client) CountUsers(ctx context.Context) (int, error) {
	data, _, err := call[UserCount](ctx, c, request{
		endpoint: "users.count",
		method:   http.MethodGet,
		path:     "/users/count",
	})
	return data.Count, err
}
