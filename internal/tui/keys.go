package tui

// Key bindings, as reported by tea.KeyMsg.String.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyLeft     = "left"
	keyRight    = "right"
	keyH        = "h"
	keyL        = "l"
	keyFirst    = "g"
	keyLast     = "G"
	keyReload   = "r"
	keyNew      = "n"
	keyDelete   = "d"
	keyDismiss  = "x"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keySubmit   = "ctrl+s"
)
