package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/postdeck/internal/api"
)

const (
	titleCharLimit = 200
	formBodyHeight = 6
)

// postForm collects a new post's title and body.
type postForm struct {
	title      textinput.Model
	body       textarea.Model
	focusBody  bool
	submitting bool
}

func newPostForm(width int) postForm {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = titleCharLimit
	ti.Width = max(width-borderPadding*2, 20)
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Write something..."
	ta.SetWidth(max(width-borderPadding*2, 20))
	ta.SetHeight(formBodyHeight)
	ta.ShowLineNumbers = false

	return postForm{title: ti, body: ta}
}

// toggleFocus moves focus between the title and body fields.
func (f *postForm) toggleFocus() {
	f.focusBody = !f.focusBody
	if f.focusBody {
		f.title.Blur()
		f.body.Focus()
		return
	}
	f.body.Blur()
	f.title.Focus()
}

// update forwards msg to the focused field.
func (f postForm) update(msg tea.Msg) (postForm, tea.Cmd) {
	var cmd tea.Cmd
	if f.focusBody {
		f.body, cmd = f.body.Update(msg)
	} else {
		f.title, cmd = f.title.Update(msg)
	}
	return f, cmd
}

// value returns the post described by the form.
func (f postForm) value(userID api.ID) api.NewPost {
	return api.NewPost{UserID: userID, Title: f.title.Value(), Body: f.body.Value()}
}

func (f postForm) view(user api.User, width int) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("NEW POST for " + user.Name))
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render("Title"))
	b.WriteString("\n")
	b.WriteString(f.title.View())
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render("Body"))
	b.WriteString("\n")
	b.WriteString(f.body.View())
	if f.submitting {
		b.WriteString("\n\n")
		b.WriteString(SubtleStyle.Render("Saving..."))
	}

	help := HelpStyle.Render("[tab] Switch field  [ctrl+s] Save  [esc] Cancel")
	return lipgloss.JoinVertical(lipgloss.Left,
		BoxStyle.Width(max(width-borderPadding, 20)).Render(b.String()),
		help,
	)
}
