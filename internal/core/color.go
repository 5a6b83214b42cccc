package core

// Color represents a foreground color for a screen cell.
// Values are mapped to ANSI colors by the platform layer.
type Color uint8

// Colors used by the board renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorGray
	ColorBrightWhite
)

// String returns the color name, mostly for test output.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorCyan:
		return "cyan"
	case ColorGray:
		return "gray"
	case ColorBrightWhite:
		return "bright-white"
	default:
		return "unknown"
	}
}
