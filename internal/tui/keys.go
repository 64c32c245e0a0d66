package tui

// Keybinding constants
const (
	KeyTab      = "tab"
	KeyShiftTab = "shift+tab"
	KeyQuit     = "q"
	KeyCtrlC    = "ctrl+c"
	KeyLeft     = "left"
	KeyRight    = "right"
	KeyEsc      = "esc"
	KeyNextMode = "v"
	KeyPrevMode = "V"
	KeyReload   = "r"
	KeySettings = "s"
)

// HelpView returns a one-line help bar with common keybindings.
func HelpView() string {
	return StyleHelp.Render("drag: move | drag edge: resize | ctrl+drag: progress | v/V: view | ←/→: scroll | esc: unselect | r: reload | Tab: focus | s: settings | q: quit")
}
