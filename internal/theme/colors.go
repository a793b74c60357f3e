package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "39" // Sea blue - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Grade colors
const (
	ColorGradeA Color = "46"  // Green
	ColorGradeB Color = "118" // Light green
	ColorGradeC Color = "226" // Yellow
	ColorGradeD Color = "214" // Orange
	ColorGradeF Color = "196" // Red
)

// Feedback polarity colors
const (
	ColorNegative Color = "1" // Red
	ColorNeutral  Color = "3" // Yellow
	ColorPositive Color = "2" // Green
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
)
