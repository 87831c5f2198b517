package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/postdeck/internal/api"
)

// Backend is the part of the API client the browser uses.
type Backend interface {
	ListUsers(ctx context.Context, page, limit int) (api.UsersPage, error)
	LoadUserPosts(ctx context.Context, userID api.ID) (api.UserPosts, error)
	CreatePost(ctx context.Context, p api.NewPost) (api.Post, string, error)
	DeletePost(ctx context.Context, id api.ID) (string, error)
}

// usersKey identifies a users request. A response is applied only while its
// key is still the one the view wants.
type usersKey struct {
	page  int
	limit int
}

type usersLoadedMsg struct {
	key  usersKey
	page api.UsersPage
	err  error
}

type userPostsLoadedMsg struct {
	userID api.ID
	data   api.UserPosts
	err    error
}

type postCreatedMsg struct {
	userID  api.ID
	post    api.Post
	message string
	err     error
}

type postDeletedMsg struct {
	userID  api.ID
	postID  api.ID
	message string
	err     error
}

// notificationsChangedMsg is sent by the store subscription so that expired
// toasts disappear without a keypress.
type notificationsChangedMsg struct{}

func loadUsersCmd(ctx context.Context, b Backend, key usersKey) tea.Cmd {
	return func() tea.Msg {
		page, err := b.ListUsers(ctx, key.page, key.limit)
		return usersLoadedMsg{key: key, page: page, err: err}
	}
}

func loadUserPostsCmd(ctx context.Context, b Backend, userID api.ID) tea.Cmd {
	return func() tea.Msg {
		data, err := b.LoadUserPosts(ctx, userID)
		return userPostsLoadedMsg{userID: userID, data: data, err: err}
	}
}

func createPostCmd(ctx context.Context, b Backend, p api.NewPost) tea.Cmd {
	return func() tea.Msg {
		post, msg, err := b.CreatePost(ctx, p)
		return postCreatedMsg{userID: p.UserID, post: post, message: msg, err: err}
	}
}

func deletePostCmd(ctx context.Context, b Backend, userID, postID api.ID) tea.Cmd {
	return func() tea.Msg {
		msg, err := b.DeletePost(ctx, postID)
		return postDeletedMsg{userID: userID, postID: postID, message: msg, err: err}
	}
}
