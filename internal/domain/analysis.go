package domain

import "fmt"

// Grade is the letter grade of a finished session
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Polarity classifies the feedback for one answered scenario
type Polarity string

const (
	PolarityNegative Polarity = "negative"
	PolarityNeutral  Polarity = "neutral"
	PolarityPositive Polarity = "positive"
)

// ScenarioFeedback compares the chosen answer of a scenario with its best answer
type ScenarioFeedback struct {
	ChosenChoiceID  string
	Note            string
	OptimalChoiceID string
	Polarity        Polarity
	ScenarioID      string
}

// AnalysisReport is the aggregate result of a finished session
type AnalysisReport struct {
	Grade               Grade
	Improvements        []string
	MaxScore            int
	PerScenarioFeedback []ScenarioFeedback
	Strengths           []string
	SummaryText         string
	TotalScore          int
}

// Percentage returns the score as a percentage of the maximum
func (r AnalysisReport) Percentage() float64 {
	return Percentage(r.TotalScore, r.MaxScore)
}

// Percentage returns 100*total/max, or 0 when max is not positive
func Percentage(total, max int) float64 {
	if max <= 0 {
		return 0
	}
	return float64(total) / float64(max) * 100
}

// GradeFor maps a percentage to a letter grade.
// Thresholds are inclusive lower bounds: 90 A, 80 B, 70 C, 60 D.
func GradeFor(percentage float64) Grade {
	switch {
	case percentage >= 90:
		return GradeA
	case percentage >= 80:
		return GradeB
	case percentage >= 70:
		return GradeC
	case percentage >= 60:
		return GradeD
	default:
		return GradeF
	}
}

// PolarityFor classifies a safety rating
func PolarityFor(rating int) Polarity {
	switch {
	case rating >= 4:
		return PolarityPositive
	case rating == 3:
		return PolarityNeutral
	default:
		return PolarityNegative
	}
}

// EstimateReport derives a report from the session's own choice history.
// It is always available without calling the provider.
func EstimateReport(s *Session) AnalysisReport {
	report := AnalysisReport{
		Improvements:        []string{},
		MaxScore:            MaxSafetyRating * len(s.ChoiceHistory),
		PerScenarioFeedback: make([]ScenarioFeedback, 0, len(s.ChoiceHistory)),
		Strengths:           []string{},
	}

	safest := 0
	risky := 0
	for _, rc := range s.ChoiceHistory {
		report.TotalScore += rc.SafetyRating
		if rc.SafetyRating >= MaxSafetyRating {
			safest++
		}
		if rc.SafetyRating <= 2 {
			risky++
		}

		fb := ScenarioFeedback{
			ChosenChoiceID:  rc.ChoiceID,
			OptimalChoiceID: rc.ChoiceID,
			Polarity:        PolarityFor(rc.SafetyRating),
			ScenarioID:      rc.ScenarioID,
		}
		sc, ok := s.ScenarioByID(rc.ScenarioID)
		if ok {
			if best, ok := sc.OptimalChoice(); ok {
				fb.OptimalChoiceID = best.ID
				if best.ID != rc.ChoiceID && rc.SafetyRating <= 3 {
					report.Improvements = append(report.Improvements,
						fmt.Sprintf("%s: %q was the safer option", sc.Title, best.Text))
				}
			}
			if chosen, ok := sc.FindChoice(rc.ChoiceID); ok {
				fb.Note = chosen.Explanation
			}
		}
		if fb.Note == "" {
			fb.Note = "Choice recorded."
		}
		report.PerScenarioFeedback = append(report.PerScenarioFeedback, fb)
	}

	n := len(s.ChoiceHistory)
	if safest > 0 {
		report.Strengths = append(report.Strengths,
			fmt.Sprintf("Picked the safest option in %d of %d scenarios", safest, n))
	}
	if n > 0 && risky == 0 {
		report.Strengths = append(report.Strengths, "Avoided every high-risk option")
	}
	if risky > 0 {
		report.Improvements = append(report.Improvements,
			"Check sea and weather conditions with a lifeguard or official source before acting")
	}

	report.Grade = GradeFor(report.Percentage())
	report.SummaryText = summarize(report)
	return report
}

func summarize(r AnalysisReport) string {
	pct := r.Percentage()
	awareness := "needs improvement"
	if pct > 70 {
		awareness = "is high"
	}
	return fmt.Sprintf("Overall safety grade %s with %d of %d points (%.0f%%). Your safety awareness %s.",
		r.Grade, r.TotalScore, r.MaxScore, pct, awareness)
}

// RemoteReport is an analysis returned by the provider.
// Nil fields were not supplied and fall back to the local estimate.
type RemoteReport struct {
	Grade               *Grade
	Improvements        []string
	MaxScore            *int
	PerScenarioFeedback []ScenarioFeedback
	Strengths           []string
	SummaryText         *string
	TotalScore          *int
}

// CompleteRemoteReport wraps a full report as a RemoteReport with every field set
func CompleteRemoteReport(r AnalysisReport) *RemoteReport {
	grade, total, max, summary := r.Grade, r.TotalScore, r.MaxScore, r.SummaryText
	return &RemoteReport{
		Grade:               &grade,
		Improvements:        append([]string{}, r.Improvements...),
		MaxScore:            &max,
		PerScenarioFeedback: append([]ScenarioFeedback{}, r.PerScenarioFeedback...),
		Strengths:           append([]string{}, r.Strengths...),
		SummaryText:         &summary,
		TotalScore:          &total,
	}
}

// MergeReport overlays remote onto local field by field.
//
//   - TotalScore, MaxScore, Grade, SummaryText: remote when non-nil.
//   - Strengths, Improvements, PerScenarioFeedback: remote when non-nil.
//   - Grade: recomputed from the merged scores when the remote changed a
//     score but sent no grade.
func MergeReport(local AnalysisReport, remote *RemoteReport) AnalysisReport {
	if remote == nil {
		return local
	}
	merged := local
	scoresChanged := false
	if remote.TotalScore != nil {
		merged.TotalScore = *remote.TotalScore
		scoresChanged = true
	}
	if remote.MaxScore != nil {
		merged.MaxScore = *remote.MaxScore
		scoresChanged = true
	}
	switch {
	case remote.Grade != nil:
		merged.Grade = *remote.Grade
	case scoresChanged:
		merged.Grade = GradeFor(merged.Percentage())
	}
	if remote.SummaryText != nil {
		merged.SummaryText = *remote.SummaryText
	}
	if remote.Strengths != nil {
		merged.Strengths = remote.Strengths
	}
	if remote.Improvements != nil {
		merged.Improvements = remote.Improvements
	}
	if remote.PerScenarioFeedback != nil {
		merged.PerScenarioFeedback = remote.PerScenarioFeedback
	}
	return merged
}
