package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// View renders the current view (Bubble Tea interface) with the toast stack
// above it.
func (m AppModel) View() string {
	var body string
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		body = RenderLoading(m.loading)
	case ViewStateError:
		body = m.renderErrorView()
	case ViewStateList:
		body = m.renderUsersView()
	case ViewStateDetail:
		body = m.renderPostsView()
	case ViewStateForm:
		body = m.form.view(m.userPosts.User, m.width)
	default:
		return ""
	}

	toasts := RenderToasts(m.store.State(), m.width)
	if toasts == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, toasts, body)
}
