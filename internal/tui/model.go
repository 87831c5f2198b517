package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/postdeck/internal/api"
	"github.com/rshade/postdeck/internal/cli/pagination"
	"github.com/rshade/postdeck/internal/notify"
	listview "github.com/rshade/postdeck/internal/tui/list"
)

// Options configures the browser.
type Options struct {
	Backend  Backend
	Store    *notify.Store
	Logger   zerolog.Logger
	PageSize int
	Pick     int
	Page     int
}

// AppModel is the root Bubble Tea model of the browser. It owns the
// notification store and the backend for the whole session.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type AppModel struct {
	ctx     context.Context
	backend Backend
	store   *notify.Store
	logger  zerolog.Logger

	state  ViewState
	width  int
	height int

	// Users list
	usersKey     usersKey
	users        api.UsersPage
	usersLoading bool
	table        table.Model
	pick         int

	// Posts of the selected user
	postsKey     api.ID
	userPosts    api.UserPosts
	postsLoading bool
	posts        listview.Model[api.Post]

	form postForm

	loading *LoadingState
	err     error
}

// NewAppModel creates the browser model. The first users page is requested
// by Init.
func NewAppModel(ctx context.Context, opts Options) AppModel {
	limit := opts.PageSize
	if limit < pagination.MinLimit || limit > pagination.MaxLimit {
		limit = pagination.DefaultLimit
	}
	page := max(opts.Page, pagination.DefaultPage)
	pick := pagination.NormalizePick(opts.Pick)
	store := opts.Store
	if store == nil {
		store = notify.NewStore()
	}

	m := AppModel{
		ctx:          ctx,
		backend:      opts.Backend,
		store:        store,
		logger:       opts.Logger.With().Str("component", "tui").Logger(),
		state:        ViewStateLoading,
		width:        defaultWidth,
		height:       defaultHeight,
		usersKey:     usersKey{page: page, limit: limit},
		usersLoading: true,
		pick:         pick,
		loading:      NewLoadingState(),
	}
	m.loading.SetMessage("Loading users...")
	m.table = m.buildUsersTable()
	m.posts = listview.New(nil, m.postsHeight(), m.width, renderPost)
	return m
}

// Init starts the spinner and the first users fetch.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), loadUsersCmd(m.ctx, m.backend, m.usersKey))
}

// Update handles messages and updates the model state.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.buildUsersTable()
		m.posts.SetSize(m.postsHeight(), m.width)
		return m, nil
	case usersLoadedMsg:
		return m.handleUsersLoaded(msg)
	case userPostsLoadedMsg:
		return m.handleUserPostsLoaded(msg)
	case postCreatedMsg:
		return m.handlePostCreated(msg)
	case postDeletedMsg:
		return m.handlePostDeleted(msg)
	case notificationsChangedMsg:
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, m.loading.Update(msg)
	}
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}

	switch m.state {
	case ViewStateLoading:
		return m.handleLoadingKey(msg)
	case ViewStateList:
		return m.handleListKey(msg)
	case ViewStateDetail:
		return m.handleDetailKey(msg)
	case ViewStateForm:
		return m.handleFormKey(msg)
	case ViewStateError:
		return m.handleErrorKey(msg)
	case ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

func (m AppModel) handleLoadingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyQuit {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}
	return m, nil
}

func (m AppModel) handleErrorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyEsc:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyReload:
		m.state = ViewStateLoading
		m.err = nil
		return m.requestUsers(m.usersKey.page)
	}
	return m, nil
}

// requestUsers makes page the wanted page and fetches it. Any response for a
// different page that arrives later is ignored.
func (m AppModel) requestUsers(page int) (tea.Model, tea.Cmd) {
	m.usersKey = usersKey{page: page, limit: m.usersKey.limit}
	m.usersLoading = true
	return m, loadUsersCmd(m.ctx, m.backend, m.usersKey)
}

func (m AppModel) handleUsersLoaded(msg usersLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.key != m.usersKey {
		m.logger.Debug().
			Int("page", msg.key.page).
			Int("wanted_page", m.usersKey.page).
			Msg("dropping stale users response")
		return m, nil
	}
	m.usersLoading = false

	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Int("page", msg.key.page).Msg("loading users failed")
		m.store.Notify(api.UserMessage(msg.err), false)
		if m.state == ViewStateLoading {
			m.err = msg.err
			m.state = ViewStateError
		}
		return m, nil
	}

	m.users = msg.page
	m.table = m.buildUsersTable()
	if m.state == ViewStateLoading {
		m.state = ViewStateList
	}
	return m, nil
}

func (m AppModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	current := m.usersKey.page
	switch msg.String() {
	case keyQuit:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyLeft, keyH:
		if current > pagination.MinPage {
			return m.requestUsers(current - 1)
		}
		return m, nil
	case keyRight, keyL:
		if current < m.users.TotalPages {
			return m.requestUsers(current + 1)
		}
		return m, nil
	case keyFirst:
		if current != pagination.MinPage {
			return m.requestUsers(pagination.MinPage)
		}
		return m, nil
	case keyLast:
		if m.users.TotalPages > 0 && current != m.users.TotalPages {
			return m.requestUsers(m.users.TotalPages)
		}
		return m, nil
	case keyReload:
		return m.requestUsers(current)
	case keyDismiss:
		m.store.DismissLatest()
		return m, nil
	case keyEnter:
		return m.openUser()
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
}

// openUser switches to the posts of the user under the cursor.
func (m AppModel) openUser() (tea.Model, tea.Cmd) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.users.Users) {
		return m, nil
	}
	user := m.users.Users[cursor]

	m.state = ViewStateDetail
	m.postsKey = user.ID
	m.userPosts = api.UserPosts{User: user}
	m.posts.SetItems(nil)
	m.postsLoading = true
	m.loading.SetMessage("Loading posts...")
	return m, loadUserPostsCmd(m.ctx, m.backend, user.ID)
}

func (m AppModel) handleUserPostsLoaded(msg userPostsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.userID != m.postsKey {
		m.logger.Debug().
			Str("user_id", msg.userID.String()).
			Str("wanted_user_id", m.postsKey.String()).
			Msg("dropping stale posts response")
		return m, nil
	}
	m.postsLoading = false

	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("user_id", msg.userID.String()).Msg("loading posts failed")
		m.store.Notify(api.UserMessage(msg.err), false)
		return m, nil
	}

	m.userPosts = msg.data
	m.posts.SetItems(msg.data.Posts)
	return m, nil
}

func (m AppModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEsc:
		m.state = ViewStateList
		m.postsKey = ""
		m.postsLoading = false
		m.table.Focus()
		return m, nil
	case keyReload:
		m.postsLoading = true
		return m, loadUserPostsCmd(m.ctx, m.backend, m.postsKey)
	case keyNew:
		if m.postsLoading {
			return m, nil
		}
		m.form = newPostForm(m.width)
		m.state = ViewStateForm
		return m, nil
	case keyDelete:
		post, ok := m.posts.Selected()
		if !ok || m.postsLoading {
			return m, nil
		}
		return m, deletePostCmd(m.ctx, m.backend, m.postsKey, post.ID)
	case keyDismiss:
		m.store.DismissLatest()
		return m, nil
	default:
		m.posts = m.posts.Update(msg)
		return m, nil
	}
}

func (m AppModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		m.state = ViewStateDetail
		return m, nil
	case keyTab, keyShiftTab:
		m.form.toggleFocus()
		return m, nil
	case keySubmit:
		return m.submitForm()
	default:
		if m.form.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
}

// submitForm validates the form locally and sends it. Validation failures
// become notifications and leave the form open.
func (m AppModel) submitForm() (tea.Model, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}
	post := m.form.value(m.userPosts.User.ID)
	if err := post.Validate(); err != nil {
		m.store.Notify(api.UserMessage(err), false)
		return m, nil
	}
	m.form.submitting = true
	return m, createPostCmd(m.ctx, m.backend, post.Normalize())
}

func (m AppModel) handlePostCreated(msg postCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("user_id", msg.userID.String()).Msg("creating post failed")
		m.store.Notify(api.UserMessage(msg.err), false)
		m.form.submitting = false
		return m, nil
	}

	m.store.Notify(msg.message, true)
	if msg.userID != m.postsKey {
		return m, nil
	}
	if m.state == ViewStateForm {
		m.state = ViewStateDetail
	}
	m.postsLoading = true
	return m, loadUserPostsCmd(m.ctx, m.backend, m.postsKey)
}

func (m AppModel) handlePostDeleted(msg postDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("post_id", msg.postID.String()).Msg("deleting post failed")
		m.store.Notify(api.UserMessage(msg.err), false)
		return m, nil
	}

	m.store.Notify(msg.message, true)
	if msg.userID != m.postsKey {
		return m, nil
	}
	m.postsLoading = true
	return m, loadUserPostsCmd(m.ctx, m.backend, m.postsKey)
}

// Err returns the error that ended the session, if any.
func (m AppModel) Err() error {
	return m.err
}

// State returns the current view.
func (m AppModel) State() ViewState {
	return m.state
}
