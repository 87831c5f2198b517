package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/postdeck/internal/notify"
)

const toastMaxWidth = 40

// RenderToasts renders notifications as a stack aligned to the right edge of
// a screen width columns wide, oldest on top. It renders nothing for an empty
// state.
func RenderToasts(state notify.State, width int) string {
	if state.Len() == 0 {
		return ""
	}

	toastWidth := min(toastMaxWidth, max(width-borderPadding, 10)) //nolint:mnd // Narrowest toast.
	toasts := make([]string, 0, state.Len())
	for _, n := range state.Notifications {
		style := ToastFailureStyle
		if n.IsSuccess {
			style = ToastSuccessStyle
		}
		toasts = append(toasts, style.Width(toastWidth).Render(n.Text))
	}

	stack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
}
