package tui

import "strings"

const (
	singleWordLimit = 17
	titleLimit      = 50
	ellipsisSuffix  = "..."
)

// FormatPostText shortens post text for cards. A single long word is cut to
// 17 characters, and titles to 50; longer multi-word bodies are left alone
// for the layout to wrap.
func FormatPostText(text string, isTitle bool) string {
	words := strings.Fields(text)
	switch {
	case len(words) == 0:
		return text
	case len(words) == 1:
		return truncateWithSuffix(text, singleWordLimit)
	case isTitle:
		return truncateWithSuffix(text, titleLimit)
	default:
		return text
	}
}

// truncateWithSuffix keeps the first n runes of s and appends "..." when
// anything was cut.
func truncateWithSuffix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + ellipsisSuffix
}

// fitWidth cuts s to at most width runes, marking the cut with "…".
func fitWidth(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
