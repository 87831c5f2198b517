package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"
)

func postsRequest(userID ID) request {
	q := url.Values{}
	q.Set("user_id", userID.String())
	return request{
		endpoint: "posts.list",
		method:   http.MethodGet,
		path:     "/posts",
		query:    q,
	}
}

// ListPosts fetches every post owned by userID.
func (c *Client) ListPosts(ctx context.Context, userID ID) ([]Post, error) {
	if strings.TrimSpace(userID.String()) == "" {
		return nil, errors.New("user id is required")
	}
	data, _, err := call[[]Post](ctx, c, postsRequest(userID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []Post{}
	}
	return data, nil
}

// CreatePost validates p and creates it. The returned message is the
// backend's confirmation text.
func (c *Client) CreatePost(ctx context.Context, p NewPost) (Post, string, error) {
	if err := p.Validate(); err != nil {
		return Post{}, "", err
	}
	p = p.Normalize()

	post, msg, err := call[Post](ctx, c, request{
		endpoint: "posts.create",
		method:   http.MethodPost,
		path:     "/posts",
		body:     p,
	})
	if err != nil {
		return Post{}, "", err
	}

	c.invalidate(postsRequest(p.UserID).pathWithQuery())
	if msg == "" {
		msg = "Post created successfully"
	}
	return post, msg, nil
}

// DeletePost removes a post and returns the backend's confirmation text.
func (c *Client) DeletePost(ctx context.Context, id ID) (string, error) {
	if strings.TrimSpace(id.String()) == "" {
		return "", errors.New("post id is required")
	}

	_, msg, err := call[*struct{}](ctx, c, request{
		endpoint: "posts.delete",
		method:   http.MethodDelete,
		path:     "/posts/" + url.PathEscape(id.String()),
	})
	if err != nil {
		return "", err
	}

	// The owning user is unknown here, so every cached listing goes.
	c.invalidateAll()
	if msg == "" {
		msg = "Post deleted successfully"
	}
	return msg, nil
}

// LoadUserPosts fetches a user and their posts concurrently.
func (c *Client) LoadUserPosts(ctx context.Context, userID ID) (UserPosts, error) {
	var out UserPosts
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := c.GetUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("loading user %s: %w", userID, err)
		}
		out.User = user
		return nil
	})
	g.Go(func() error {
		posts, err := c.ListPosts(gctx, userID)
		if err != nil {
			return fmt.Errorf("loading posts for user %s: %w", userID, err)
		}
		out.Posts = posts
		return nil
	})

	if err := g.Wait(); err != nil {
		return UserPosts{}, err
	}
	return out, nil
}
