package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/postdeck/internal/notify"
)

func TestFormatPostText(t *testing.T) {
	longTitle := strings.Repeat("word ", 15)

	tests := []struct {
		name    string
		text    string
		isTitle bool
		want    string
	}{
		{"empty", "", false, ""},
		{"short single word", "hello", false, "hello"},
		{"single word at limit", "abcdefghijklmnopq", true, "abcdefghijklmnopq"},
		{"long single word", "supercalifragilisticexpialidocious", false, "supercalifragilis..."},
		{"long single word title", "supercalifragilisticexpialidocious", true, "supercalifragilis..."},
		{"short title", "Hello world", true, "Hello world"},
		{"long title", longTitle, true, longTitle[:50] + "..."},
		{"long body untouched", longTitle, false, longTitle},
		{"multibyte word", strings.Repeat("é", 20), false, strings.Repeat("é", 17) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPostText(tt.text, tt.isTitle))
		})
	}
}

func TestFitWidth(t *testing.T) {
	assert.Equal(t, "abc", fitWidth("abc", 5))
	assert.Equal(t, "abc", fitWidth("abc", 0))
	assert.Equal(t, "ab…", fitWidth("abcdef", 3))
	assert.Equal(t, "…", fitWidth("abcdef", 1))
}

func TestRenderPaginator(t *testing.T) {
	assert.Empty(t, RenderPaginator(1, 0, 5))
	assert.Empty(t, RenderPaginator(4, 3, 5))

	bar := RenderPaginator(10, 20, 5)
	for _, want := range []string{"1", "…", "9", "10", "11", "20"} {
		assert.Contains(t, bar, want)
	}
	assert.NotContains(t, bar, "12")

	small := RenderPaginator(2, 3, 5)
	assert.NotContains(t, small, "…")
}

func TestRenderToasts(t *testing.T) {
	assert.Empty(t, RenderToasts(notify.State{}, 80))

	state := notify.State{Notifications: []notify.Notification{
		{Text: "Post created", IsSuccess: true, CreatedAt: time.Now()},
		{Text: "Network error", IsSuccess: false, CreatedAt: time.Now()},
	}}
	out := RenderToasts(state, 80)

	assert.Contains(t, out, "Post created")
	assert.Contains(t, out, "Network error")
	assert.Less(t, strings.Index(out, "Post created"), strings.Index(out, "Network error"),
		"oldest toast is on top")
}
