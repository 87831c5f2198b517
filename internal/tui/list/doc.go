// Package listview is a small scrolling list for Bubble Tea views whose rows
// are rendered by the caller. Only the rows inside the viewport are drawn,
// and the cursor is always kept on screen.
package listview
