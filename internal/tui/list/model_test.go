package listview

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func renderInt(item int, selected bool, _ int) string {
	if selected {
		return fmt.Sprintf("> %d", item)
	}
	return fmt.Sprintf("  %d", item)
}

func keys(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestModel_Navigation(t *testing.T) {
	m := New([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 3, 20, renderInt)

	m = m.Update(keys("down"))
	m = m.Update(keys("j"))
	assert.Equal(t, 2, m.Cursor())
	assert.Equal(t, 0, m.Offset())

	m = m.Update(keys("j"))
	assert.Equal(t, 3, m.Cursor())
	assert.Equal(t, 1, m.Offset(), "cursor scrolls into view")

	m = m.Update(keys("end"))
	assert.Equal(t, 9, m.Cursor())
	assert.Equal(t, 7, m.Offset())

	m = m.Update(keys("down"))
	assert.Equal(t, 9, m.Cursor(), "clamped at the end")

	m = m.Update(keys("home"))
	m = m.Update(keys("k"))
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, 0, m.Offset())

	m = m.Update(keys("pgdown"))
	assert.Equal(t, 3, m.Cursor())
}

func TestModel_View(t *testing.T) {
	m := New([]int{10, 20, 30, 40}, 2, 20, renderInt)
	assert.Equal(t, "> 10\n  20", m.View())

	m = m.Update(keys("end"))
	assert.Equal(t, "  30\n> 40", m.View())
	assert.Equal(t, 2, strings.Count(m.View(), "\n")+1)
}

func TestModel_SetItemsClampsCursor(t *testing.T) {
	m := New([]int{1, 2, 3}, 5, 20, renderInt)
	m = m.Update(keys("end"))
	assert.Equal(t, 2, m.Cursor())

	m.SetItems([]int{1})
	assert.Equal(t, 0, m.Cursor())
	v, ok := m.Selected()
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	m.SetItems(nil)
	_, ok = m.Selected()
	assert.False(t, ok)
	assert.Empty(t, m.View())
	assert.Equal(t, 0, m.Update(keys("down")).Cursor())
}
