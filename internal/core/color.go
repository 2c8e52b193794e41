package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI colors in the tui package.
type Color uint8

// Colors used by the snake board and HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorCyan
	ColorBrightGreen
	ColorBrightYellow
	ColorGray
)
