package wire

import (
	"fmt"
	"time"

	"tideline/internal/domain"
	"tideline/internal/logging"
)

// ScenarioFromDomain converts a domain scenario for the wire
func ScenarioFromDomain(sc domain.Scenario) ScenarioDTO {
	dto := ScenarioDTO{
		BackgroundImage: sc.BackgroundRef,
		Choices:         make([]ChoiceDTO, 0, len(sc.Choices)),
		Context:         sc.ContextNote,
		Description:     sc.Description,
		ID:              sc.ID,
		Title:           sc.Title,
	}
	for _, c := range sc.Choices {
		dto.Choices = append(dto.Choices, ChoiceDTO{
			Explanation:  c.Explanation,
			ID:           c.ID,
			SafetyRating: c.SafetyRating,
			Text:         c.Text,
		})
	}
	return dto
}

// ToDomain converts a wire scenario into a domain scenario
func (dto ScenarioDTO) ToDomain() domain.Scenario {
	sc := domain.Scenario{
		BackgroundRef: dto.BackgroundImage,
		ContextNote:   dto.Context,
		Description:   dto.Description,
		ID:            dto.ID,
		Title:         dto.Title,
	}
	if len(dto.Choices) > 0 {
		sc.Choices = make([]domain.Choice, 0, len(dto.Choices))
	}
	for _, c := range dto.Choices {
		sc.Choices = append(sc.Choices, domain.Choice{
			Explanation:  c.Explanation,
			ID:           c.ID,
			SafetyRating: c.SafetyRating,
			Text:         c.Text,
		})
	}
	return sc
}

// AnalysisRequestFromSession builds the analysis body for a session
func AnalysisRequestFromSession(s domain.Session) AnalysisRequest {
	req := AnalysisRequest{
		ChoiceHistory: make([]RecordedChoiceDTO, 0, len(s.ChoiceHistory)),
		Scenarios:     make([]ScenarioDTO, 0, len(s.ScenarioLog)),
	}
	for _, sc := range s.ScenarioLog {
		req.Scenarios = append(req.Scenarios, ScenarioFromDomain(sc))
	}
	for _, rc := range s.ChoiceHistory {
		req.ChoiceHistory = append(req.ChoiceHistory, RecordedChoiceDTO{
			ChoiceID:     rc.ChoiceID,
			SafetyRating: rc.SafetyRating,
			ScenarioID:   rc.ScenarioID,
			Timestamp:    rc.SelectedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return req
}

// ToSession rebuilds the parts of a session the analysis needs. Each
// recorded rating is taken from the submitted scenario it answers, never
// from the request's own rating.
func (req AnalysisRequest) ToSession(id string) (domain.Session, error) {
	s := domain.Session{ID: id}
	byID := make(map[string]domain.Scenario, len(req.Scenarios))
	for _, dto := range req.Scenarios {
		sc := dto.ToDomain()
		s.ScenarioLog = append(s.ScenarioLog, sc)
		byID[sc.ID] = sc
	}
	for i, rc := range req.ChoiceHistory {
		selectedAt, err := time.Parse(time.RFC3339Nano, rc.Timestamp)
		if err != nil {
			return domain.Session{}, fmt.Errorf("%w: choice %d has invalid timestamp %q", domain.ErrValidation, i, rc.Timestamp)
		}
		choice, ok := byID[rc.ScenarioID].FindChoice(rc.ChoiceID)
		if !ok {
			return domain.Session{}, fmt.Errorf("%w: choice %d (%s) is not offered by scenario %q", domain.ErrValidation, i, rc.ChoiceID, rc.ScenarioID)
		}
		if choice.SafetyRating != rc.SafetyRating {
			logging.Logger.Warn("Ignoring submitted safety rating", "session", id, "choice", rc.ChoiceID, "submitted", rc.SafetyRating, "rating", choice.SafetyRating)
		}
		s.ChoiceHistory = append(s.ChoiceHistory, domain.RecordedChoice{
			ChoiceID:     rc.ChoiceID,
			SafetyRating: choice.SafetyRating,
			ScenarioID:   rc.ScenarioID,
			SelectedAt:   selectedAt,
		})
	}
	return s, nil
}

// AnalysisResponseFromReport converts a provider report for the wire
func AnalysisResponseFromReport(r *domain.RemoteReport) AnalysisResponse {
	resp := AnalysisResponse{
		Improvements: r.Improvements,
		MaxScore:     r.MaxScore,
		Strengths:    r.Strengths,
		SummaryText:  r.SummaryText,
		TotalScore:   r.TotalScore,
	}
	if r.Grade != nil {
		g := string(*r.Grade)
		resp.Grade = &g
	}
	if r.PerScenarioFeedback != nil {
		resp.PerScenarioFeedback = make([]FeedbackDTO, 0, len(r.PerScenarioFeedback))
		for _, fb := range r.PerScenarioFeedback {
			resp.PerScenarioFeedback = append(resp.PerScenarioFeedback, FeedbackDTO{
				ChosenChoiceID:  fb.ChosenChoiceID,
				Note:            fb.Note,
				OptimalChoiceID: fb.OptimalChoiceID,
				Polarity:        string(fb.Polarity),
				ScenarioID:      fb.ScenarioID,
			})
		}
	}
	return resp
}

// ToRemoteReport converts a wire analysis into a provider report.
// Unknown grades are dropped so the caller recomputes one.
func (resp AnalysisResponse) ToRemoteReport() *domain.RemoteReport {
	r := &domain.RemoteReport{
		Improvements: resp.Improvements,
		MaxScore:     resp.MaxScore,
		Strengths:    resp.Strengths,
		SummaryText:  resp.SummaryText,
		TotalScore:   resp.TotalScore,
	}
	if resp.Grade != nil {
		if g, ok := parseGrade(*resp.Grade); ok {
			r.Grade = &g
		}
	}
	if resp.PerScenarioFeedback != nil {
		r.PerScenarioFeedback = make([]domain.ScenarioFeedback, 0, len(resp.PerScenarioFeedback))
		for _, fb := range resp.PerScenarioFeedback {
			r.PerScenarioFeedback = append(r.PerScenarioFeedback, domain.ScenarioFeedback{
				ChosenChoiceID:  fb.ChosenChoiceID,
				Note:            fb.Note,
				OptimalChoiceID: fb.OptimalChoiceID,
				Polarity:        domain.Polarity(fb.Polarity),
				ScenarioID:      fb.ScenarioID,
			})
		}
	}
	return r
}

func parseGrade(s string) (domain.Grade, bool) {
	switch g := domain.Grade(s); g {
	case domain.GradeA, domain.GradeB, domain.GradeC, domain.GradeD, domain.GradeF:
		return g, true
	}
	return "", false
}
