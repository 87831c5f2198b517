package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected marks the row under the cursor.
type RenderFunc[T any] func(item T, selected bool, width int) string

// Model is a scrolling list of T. It is a value type like the bubbles
// components: Update returns the changed copy.
type Model[T any] struct {
	items  []T
	render RenderFunc[T]

	cursor int
	offset int
	height int
	width  int
}

// New creates a list showing height items at a time.
func New[T any](items []T, height, width int, render RenderFunc[T]) Model[T] {
	m := Model[T]{render: render, height: max(height, 1), width: width}
	m.SetItems(items)
	return m
}

// SetItems replaces the items, keeping the cursor in range.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.moveTo(m.cursor)
}

// SetSize changes the viewport.
func (m *Model[T]) SetSize(height, width int) {
	m.height = max(height, 1)
	m.width = width
	m.moveTo(m.cursor)
}

// Update moves the cursor on navigation keys.
func (m Model[T]) Update(msg tea.Msg) Model[T] {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return m
	}

	switch keyMsg.String() {
	case "up", "k":
		m.moveTo(m.cursor - 1)
	case "down", "j":
		m.moveTo(m.cursor + 1)
	case "pgup":
		m.moveTo(m.cursor - m.height)
	case "pgdown":
		m.moveTo(m.cursor + m.height)
	case "home":
		m.moveTo(0)
	case "end":
		m.moveTo(len(m.items) - 1)
	}
	return m
}

// moveTo places the cursor at i, clamped, and scrolls it into view.
func (m *Model[T]) moveTo(i int) {
	if len(m.items) == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = min(max(i, 0), len(m.items)-1)

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	m.offset = min(m.offset, max(len(m.items)-m.height, 0))
}

// View renders the visible items, one per block, separated by newlines.
func (m Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	end := min(m.offset+m.height, len(m.items))
	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.render(m.items[i], i == m.cursor, m.width))
	}
	return strings.Join(rows, "\n")
}

// Len returns the number of items.
func (m Model[T]) Len() int {
	return len(m.items)
}

// Cursor returns the index of the selected item.
func (m Model[T]) Cursor() int {
	return m.cursor
}

// Offset returns the index of the first visible item.
func (m Model[T]) Offset() int {
	return m.offset
}

// Selected returns the item under the cursor.
func (m Model[T]) Selected() (T, bool) {
	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	return m.items[m.cursor], true
}
