package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/postdeck/internal/api"
	"github.com/rshade/postdeck/internal/cli/pagination"
)

// chromeLines is the space taken by the header, paginator, help and toasts
// around the users table.
const chromeLines = 9

// Column shares of the table width, in percent.
const (
	nameShare  = 25
	emailShare = 30
)

// NewUsersTable creates the users table for one page of results.
func NewUsersTable(users []api.User, width, height int) table.Model {
	inner := max(width-borderPadding, 30) //nolint:mnd // Narrowest usable table.
	nameWidth := inner * nameShare / 100
	emailWidth := inner * emailShare / 100
	addressWidth := max(inner-nameWidth-emailWidth, 10) //nolint:mnd // Column width.

	columns := []table.Column{
		{Title: "Name", Width: nameWidth},
		{Title: "Email", Width: emailWidth},
		{Title: "Address", Width: addressWidth},
	}

	rows := make([]table.Row, len(users))
	for i, u := range users {
		rows[i] = table.Row{
			fitWidth(u.Name, nameWidth),
			fitWidth(u.Email, emailWidth),
			fitWidth(u.Address.String(), addressWidth),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(height, minHeight)),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

// buildUsersTable rebuilds the table for the current page and size, keeping
// the cursor where it was when the row still exists.
func (m AppModel) buildUsersTable() table.Model {
	cursor := m.table.Cursor()
	t := NewUsersTable(m.users.Users, m.width, m.height-chromeLines)
	if cursor > 0 && cursor < len(m.users.Users) {
		t.SetCursor(cursor)
	}
	return t
}

// RenderPaginator renders the page bar for current of total, highlighting
// the current page. It renders nothing when there are no pages.
func RenderPaginator(current, total, pick int) string {
	window := pagination.ComputeWindow(current, total, pick)
	if len(window) == 0 {
		return ""
	}

	parts := make([]string, 0, len(window))
	for _, marker := range window {
		switch {
		case marker.IsEllipsis():
			parts = append(parts, EllipsisStyle.Render(marker.String()))
		case int(marker) == current:
			parts = append(parts, CurrentPageStyle.Render(marker.String()))
		default:
			parts = append(parts, PageStyle.Render(marker.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m AppModel) renderUsersView() string {
	var sections []string

	title := HeaderStyle.Render("USERS")
	if m.users.Count > 0 {
		title += SubtleStyle.Render(fmt.Sprintf("  %d total", m.users.Count))
	}
	if m.usersLoading {
		title += "  " + RenderLoading(m.loading)
	}
	sections = append(sections, title, "")

	if len(m.users.Users) == 0 {
		sections = append(sections, SubtleStyle.Render("No users."))
	} else {
		sections = append(sections, m.table.View())
	}

	// The bar follows the loaded page so it never pairs a requested page
	// with the previous response's total.
	shown := m.users.Page
	if shown == 0 {
		shown = m.usersKey.page
	}
	if bar := RenderPaginator(shown, m.users.TotalPages, m.pick); bar != "" {
		status := SubtleStyle.Render(fmt.Sprintf("Page %d of %d", shown, m.users.TotalPages))
		sections = append(sections, "", bar, status)
	}

	help := []string{"[←/h] Prev", "[→/l] Next", "[g/G] First/Last", "[enter] Posts", "[r] Reload"}
	if m.store.Len() > 0 {
		help = append(help, "[x] Dismiss")
	}
	help = append(help, "[q] Quit")
	sections = append(sections, HelpStyle.Render(strings.Join(help, "  ")))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m AppModel) renderErrorView() string {
	msg := CriticalStyle.Render("Could not load users: " + api.UserMessage(m.err))
	help := HelpStyle.Render("[r] Retry  [q] Quit")
	return lipgloss.JoinVertical(lipgloss.Left, msg, help)
}
