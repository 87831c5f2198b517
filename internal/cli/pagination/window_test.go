package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const E = Ellipsis

func pages(from, to int) []PageMarker {
	return pageRange(from, to)
}

func TestComputeWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		pick    int
		want    []PageMarker
	}{
		{name: "no pages", current: 1, total: 0, pick: 5, want: []PageMarker{}},
		{name: "page zero", current: 0, total: 10, pick: 5, want: []PageMarker{}},
		{name: "negative page", current: -3, total: 10, pick: 5, want: []PageMarker{}},
		{name: "past the end", current: 11, total: 10, pick: 5, want: []PageMarker{}},
		{name: "single page", current: 1, total: 1, pick: 5, want: []PageMarker{1}},
		{name: "small range", current: 3, total: 7, pick: 5, want: pages(1, 7)},
		{name: "first page", current: 1, total: 20, pick: 5, want: []PageMarker{1, 2, 3, 4, 5, E, 20}},
		{name: "near start", current: 4, total: 20, pick: 5, want: []PageMarker{1, 2, 3, 4, 5, E, 20}},
		{name: "middle", current: 10, total: 20, pick: 5, want: []PageMarker{1, E, 9, 10, 11, E, 20}},
		{name: "first middle page", current: 5, total: 20, pick: 5, want: []PageMarker{1, E, 4, 5, 6, E, 20}},
		{name: "last middle page", current: 16, total: 20, pick: 5, want: []PageMarker{1, E, 15, 16, 17, E, 20}},
		{name: "near end", current: 17, total: 20, pick: 5, want: []PageMarker{1, E, 16, 17, 18, 19, 20}},
		{name: "last page", current: 20, total: 20, pick: 5, want: []PageMarker{1, E, 16, 17, 18, 19, 20}},
		{name: "smallest condensed range", current: 2, total: 8, pick: 5, want: []PageMarker{1, 2, 3, 4, 5, E, 8}},
		{
			name:    "wider pick",
			current: 50,
			total:   100,
			pick:    7,
			want:    []PageMarker{1, E, 49, 50, 51, 52, 53, E, 100},
		},
		{name: "pick clamped", current: 10, total: 20, pick: 1, want: []PageMarker{1, E, 9, 10, E, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeWindow(tt.current, tt.total, tt.pick))
		})
	}
}

func TestComputeWindow_NearEndShape(t *testing.T) {
	for n := 8; n <= 40; n++ {
		got := ComputeWindow(n, n, DefaultPick)
		assert.Equal(t, []PageMarker{1, E, PageMarker(n - 4), PageMarker(n - 3), PageMarker(n - 2), PageMarker(n - 1), PageMarker(n)}, got)
	}
}

func TestComputeWindow_Properties(t *testing.T) {
	for n := 0; n <= 30; n++ {
		for p := -1; p <= n+1; p++ {
			got := ComputeWindow(p, n, DefaultPick)
			assert.Equal(t, got, ComputeWindow(p, n, DefaultPick), "pure for p=%d n=%d", p, n)

			if p < 1 || p > n {
				assert.Empty(t, got)
				continue
			}

			assert.Contains(t, got, PageMarker(p), "current page shown for p=%d n=%d", p, n)
			assert.Equal(t, PageMarker(1), got[0])
			assert.Equal(t, PageMarker(n), got[len(got)-1])
			assert.LessOrEqual(t, len(got), DefaultPick+2)

			prev := PageMarker(0)
			for i, m := range got {
				if m.IsEllipsis() {
					assert.False(t, i > 0 && got[i-1].IsEllipsis(), "no adjacent ellipses")
					continue
				}
				assert.Greater(t, m, prev, "pages ascend for p=%d n=%d", p, n)
				prev = m
			}
		}
	}
}

func TestNormalizePick(t *testing.T) {
	for _, tt := range []struct{ in, want int }{
		{-1, MinPick}, {0, MinPick}, {3, MinPick}, {4, 4}, {DefaultPick, DefaultPick}, {9, 9},
	} {
		assert.Equal(t, tt.want, NormalizePick(tt.in), "pick %d", tt.in)
		assert.Equal(t, ComputeWindow(10, 40, tt.in), ComputeWindow(10, 40, NormalizePick(tt.in)))
	}
}

func TestRenderWindow(t *testing.T) {
	assert.Equal(t, "1 … 9 [10] 11 … 20", RenderWindow(ComputeWindow(10, 20, 5), 10))
	assert.Equal(t, "[1] 2 3", RenderWindow(ComputeWindow(1, 3, 5), 1))
	assert.Empty(t, RenderWindow(ComputeWindow(4, 3, 5), 4))
}

func TestPageMarker_String(t *testing.T) {
	assert.Equal(t, "7", PageMarker(7).String())
	assert.Equal(t, "…", Ellipsis.String())
}
