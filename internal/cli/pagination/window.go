package pagination

import (
	"strconv"
	"strings"
)

// PageMarker is one slot of the page-number bar: a 1-based page number or
// Ellipsis.
type PageMarker int

// Ellipsis marks a gap of one or more hidden pages.
const Ellipsis PageMarker = -1

// MinPick is the smallest window width ComputeWindow accepts.
const MinPick = 4

// IsEllipsis reports whether m is the gap marker.
func (m PageMarker) IsEllipsis() bool {
	return m == Ellipsis
}

// String renders a page number, or "…" for the gap marker.
func (m PageMarker) String() string {
	if m.IsEllipsis() {
		return "…"
	}
	return strconv.Itoa(int(m))
}

// NormalizePick raises pick to MinPick. Every caller that stores a pick
// should normalise it the same way ComputeWindow does.
func NormalizePick(pick int) int {
	return max(pick, MinPick)
}

// ComputeWindow returns the condensed list of page numbers to show for
// currentPage out of totalPages. The first and last pages are always shown
// once the list is condensed, and runs of hidden pages collapse into a single
// Ellipsis. pick controls the width of the window; values below MinPick are
// raised to MinPick.
//
// The result is empty when currentPage is outside [1, totalPages].
//
// With pick 5 and 20 pages:
//
//	page 2:  1 2 3 4 5 … 20
//	page 10: 1 … 9 10 11 … 20
//	page 18: 1 … 16 17 18 19 20
func ComputeWindow(currentPage, totalPages, pick int) []PageMarker {
	if currentPage < 1 || currentPage > totalPages {
		return []PageMarker{}
	}
	pick = NormalizePick(pick)

	// Few enough pages to list them all.
	if totalPages-1 < pick+2 {
		return pageRange(1, totalPages)
	}

	// Near the start: leading run, then jump to the last page.
	if currentPage < pick {
		out := pageRange(1, pick)
		return append(out, Ellipsis, PageMarker(totalPages))
	}

	// Near the end: first page, then the trailing run.
	if currentPage+pick > totalPages+1 {
		out := []PageMarker{1, Ellipsis}
		return append(out, pageRange(totalPages-pick+1, totalPages)...)
	}

	// Middle: first page, pick-2 pages starting just before current, last page.
	out := []PageMarker{1, Ellipsis}
	out = append(out, pageRange(currentPage-1, currentPage+pick-4)...)
	return append(out, Ellipsis, PageMarker(totalPages))
}

func pageRange(from, to int) []PageMarker {
	out := make([]PageMarker, 0, to-from+1)
	for p := from; p <= to; p++ {
		out = append(out, PageMarker(p))
	}
	return out
}

// RenderWindow formats a window as plain text, bracketing the current page:
// "1 … 9 [10] 11 … 20".
func RenderWindow(window []PageMarker, currentPage int) string {
	parts := make([]string, 0, len(window))
	for _, m := range window {
		if int(m) == currentPage {
			parts = append(parts, "["+m.String()+"]")
			continue
		}
		parts = append(parts, m.String())
	}
	return strings.Join(parts, " ")
}
