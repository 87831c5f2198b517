package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/postdeck/internal/api"
)

// postCardLines is the height of one rendered post card including borders.
const postCardLines = 5

// detailChromeLines is the space taken by the user header and help.
const detailChromeLines = 10

// postsHeight returns how many post cards fit on screen.
func (m AppModel) postsHeight() int {
	return max((m.height-detailChromeLines)/postCardLines, 1)
}

// renderPost renders one post as a bordered card.
func renderPost(p api.Post, selected bool, width int) string {
	inner := max(width-borderPadding*2, 20) //nolint:mnd // Narrowest usable card.

	title := ValueStyle.Render(fitWidth(FormatPostText(p.Title, true), inner))
	body := FormatPostText(strings.Join(strings.Fields(p.Body), " "), false)
	body = fitWidth(body, inner*2) //nolint:mnd // Two wrapped lines of body.

	style := BoxStyle.Width(inner + 2) //nolint:mnd // Card padding.
	if selected {
		style = style.BorderForeground(colorAccent)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.NewStyle().Width(inner).Render(body),
	))
}

// RenderUserHeader renders the name, email and post count of a user.
func RenderUserHeader(user api.User, postCount int, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(user.Name))
	if user.Username != "" {
		content.WriteString(SubtleStyle.Render("  @" + user.Username))
	}
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Email:   "))
	content.WriteString(ValueStyle.Render(user.Email))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Address: "))
	content.WriteString(ValueStyle.Render(user.Address.String()))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Posts:   "))
	content.WriteString(ValueStyle.Render(strconv.Itoa(postCount)))

	return BoxStyle.Width(max(width-borderPadding, 20)).Render(content.String()) //nolint:mnd // Narrowest box.
}

func (m AppModel) renderPostsView() string {
	user := m.userPosts.User
	sections := []string{RenderUserHeader(user, len(m.userPosts.Posts), m.width)}

	switch {
	case m.postsLoading && m.posts.Len() == 0:
		sections = append(sections, RenderLoading(m.loading))
	case m.posts.Len() == 0:
		sections = append(sections, SubtleStyle.Render(user.Name+" has no posts yet."))
	default:
		sections = append(sections, m.posts.View())
		if m.postsLoading {
			sections = append(sections, RenderLoading(m.loading))
		}
	}

	help := []string{"[↑/↓] Move", "[n] New post", "[d] Delete", "[r] Reload"}
	if m.store.Len() > 0 {
		help = append(help, "[x] Dismiss")
	}
	help = append(help, "[esc] Back", "[q] Quit")
	sections = append(sections, HelpStyle.Render(strings.Join(help, "  ")))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
