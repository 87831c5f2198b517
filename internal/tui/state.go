package tui

// ViewState is the screen the browser is showing.
type ViewState int

const (
	// ViewStateLoading is the first users fetch.
	ViewStateLoading ViewState = iota
	// ViewStateList is the paginated users table.
	ViewStateList
	// ViewStateDetail is one user's posts.
	ViewStateDetail
	// ViewStateForm is the new post form.
	ViewStateForm
	// ViewStateError is shown when the first users fetch fails.
	ViewStateError
	// ViewStateQuitting is set just before the program exits.
	ViewStateQuitting
)

// String returns a short name for logs.
func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "users"
	case ViewStateDetail:
		return "posts"
	case ViewStateForm:
		return "new-post"
	case ViewStateError:
		return "error"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}
