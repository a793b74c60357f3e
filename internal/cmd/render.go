package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"tideline/internal/domain"
	"tideline/internal/ports"
	"tideline/internal/services"
	"tideline/internal/theme"
)

func renderScenario(w io.Writer, sc domain.Scenario, index int) {
	fmt.Fprintln(w, theme.TitleStyle.Render(fmt.Sprintf("Scenario %d: %s", index+1, sc.Title)))
	if sc.ContextNote != "" {
		fmt.Fprintln(w, theme.ContextStyle.Render(sc.ContextNote))
	}
	fmt.Fprintln(w, theme.NormalStyle.Render(sc.Description))
}

func renderChoices(w io.Writer, sc domain.Scenario) {
	for _, c := range sc.Choices {
		fmt.Fprintf(w, "  %s  %s\n", theme.LabelStyle.Render(c.ID), c.Text)
	}
}

func renderOutcome(w io.Writer, outcome *ports.ChoiceOutcome, rating int) {
	fmt.Fprintln(w, theme.RatingStyle(rating).Render(outcome.ImmediateConsequence))
	if outcome.Feedback != "" {
		fmt.Fprintln(w, theme.MutedStyle.Render(outcome.Feedback))
	}
}

func renderReport(w io.Writer, report domain.AnalysisReport) {
	fmt.Fprintln(w, theme.TitleStyle.Render("Safety analysis"))
	fmt.Fprintf(w, "%s  %s\n",
		theme.GradeStyle(report.Grade).Render(string(report.Grade)),
		theme.HighlightStyle.Render(fmt.Sprintf("%d / %d points (%.0f%%)", report.TotalScore, report.MaxScore, report.Percentage())))
	if report.SummaryText != "" {
		fmt.Fprintln(w, report.SummaryText)
	}

	renderList(w, "Strengths", report.Strengths, theme.PositiveStyle.Render("+"))
	renderList(w, "Improvements", report.Improvements, theme.NegativeStyle.Render("-"))

	if len(report.PerScenarioFeedback) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, theme.LabelStyle.Render("Per scenario"))
		for _, fb := range report.PerScenarioFeedback {
			marker := theme.PolarityStyle(fb.Polarity).Render(string(fb.Polarity))
			fmt.Fprintf(w, "  %s  %s (best: %s) %s\n", fb.ScenarioID, fb.ChosenChoiceID, fb.OptimalChoiceID, marker)
			if fb.Note != "" {
				fmt.Fprintf(w, "    %s\n", theme.MutedStyle.Render(fb.Note))
			}
		}
	}
}

func renderList(w io.Writer, title string, items []string, bullet string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.LabelStyle.Render(title))
	for _, item := range items {
		fmt.Fprintf(w, "  %s %s\n", bullet, item)
	}
}

func renderState(w io.Writer, state services.GameState) {
	if state.Session == nil {
		fmt.Fprintln(w, theme.MutedStyle.Render("No active session. Start one with 'tideline play' or 'tideline game start'."))
		return
	}
	s := state.Session
	fmt.Fprintf(w, "Session:      %s\n", s.ID)
	fmt.Fprintf(w, "Activity:     %s (%s)\n", s.Setup.Activity, s.Setup.Participants)
	fmt.Fprintf(w, "Phase:        %s\n", s.Phase)
	fmt.Fprintf(w, "Progress:     %d choices, %d scenarios\n", len(s.ChoiceHistory), len(s.ScenarioLog))
	if !s.LastSavedAt.IsZero() {
		fmt.Fprintf(w, "Last saved:   %s\n", s.LastSavedAt.Local().Format(time.RFC1123))
	}
	if state.Error != "" {
		fmt.Fprintln(w, theme.ErrorStyle.Render("Error: "+state.Error))
	}

	switch s.Phase {
	case domain.PhasePlaying:
		if sc, ok := s.ActiveScenario(); ok {
			renderScenario(w, sc, s.CurrentIndex)
			renderChoices(w, sc)
		}
	case domain.PhaseAnalysis:
		fmt.Fprintln(w, theme.MutedStyle.Render("All scenarios answered. Run 'tideline game analyze' for the report."))
	case domain.PhaseFinished:
		if state.Report != nil {
			renderReport(w, *state.Report)
		}
	}
}

func renderSummaries(w io.Writer, summaries []domain.SessionSummary, activeID string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tACTIVITY\tPARTICIPANTS\tPHASE\tPROGRESS\tLAST SAVED")
	for _, s := range summaries {
		marker := ""
		if s.ID == activeID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d/%d\t%s\n",
			marker,
			s.ID,
			s.Setup.Activity,
			s.Setup.Participants,
			s.Phase,
			s.ChoiceCount,
			s.ScenarioCount,
			formatAge(s.LastSavedAt, time.Now()),
		)
	}
	return tw.Flush()
}

// formatAge renders how long ago t was, in the coarsest sensible unit
func formatAge(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func choiceLabel(c domain.Choice) string {
	return strings.TrimSpace(c.Text)
}
