package theme

import (
	"github.com/charmbracelet/lipgloss"

	"tideline/internal/domain"
)

// Main UI styles
var (
	ContextStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0, 0, 0)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)
)

// Feedback styles
var (
	NegativeStyle = lipgloss.NewStyle().
			Foreground(ColorNegative)

	NeutralStyle = lipgloss.NewStyle().
			Foreground(ColorNeutral)

	PositiveStyle = lipgloss.NewStyle().
			Foreground(ColorPositive)
)

var gradeColors = map[domain.Grade]Color{
	domain.GradeA: ColorGradeA,
	domain.GradeB: ColorGradeB,
	domain.GradeC: ColorGradeC,
	domain.GradeD: ColorGradeD,
	domain.GradeF: ColorGradeF,
}

// GradeStyle returns the badge style for a letter grade
func GradeStyle(g domain.Grade) lipgloss.Style {
	color, ok := gradeColors[g]
	if !ok {
		color = ColorMuted
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(color).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
}

// PolarityStyle returns the text style for a feedback polarity
func PolarityStyle(p domain.Polarity) lipgloss.Style {
	switch p {
	case domain.PolarityPositive:
		return PositiveStyle
	case domain.PolarityNeutral:
		return NeutralStyle
	default:
		return NegativeStyle
	}
}

// RatingStyle returns the text style for a safety rating
func RatingStyle(rating int) lipgloss.Style {
	return PolarityStyle(domain.PolarityFor(rating))
}
