package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"tideline/internal/domain"
)

// EncodeSnapshot serializes a session to its stored JSON form.
// Pending operations are not persisted.
func EncodeSnapshot(s *domain.Session) ([]byte, error) {
	snap := sessionSnapshot{
		ChoiceHistory: make([]recordedChoiceSnapshot, len(s.ChoiceHistory)),
		CurrentIndex:  s.CurrentIndex,
		ID:            s.ID,
		Phase:         string(s.Phase),
		ScenarioLog:   make([]scenarioSnapshot, len(s.ScenarioLog)),
		Setup: setupSnapshot{
			Activity:     string(s.Setup.Activity),
			Participants: string(s.Setup.Participants),
		},
		Version: snapshotVersion,
	}
	for i, sc := range s.ScenarioLog {
		snap.ScenarioLog[i] = scenarioToSnapshot(sc)
	}
	for i, rc := range s.ChoiceHistory {
		snap.ChoiceHistory[i] = recordedChoiceSnapshot{
			ChoiceID:     rc.ChoiceID,
			SafetyRating: rc.SafetyRating,
			ScenarioID:   rc.ScenarioID,
			SelectedAt:   rc.SelectedAt.UTC().Format(time.RFC3339Nano),
		}
	}
	return json.Marshal(snap)
}

// DecodeSnapshot rebuilds a session from its stored JSON form,
// rehydrating choice timestamps.
func DecodeSnapshot(data []byte) (*domain.Session, error) {
	var snap sessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	if snap.ID == "" {
		return nil, fmt.Errorf("invalid snapshot: missing id")
	}
	phase, err := domain.ParsePhase(snap.Phase)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}

	s := &domain.Session{
		CurrentIndex: snap.CurrentIndex,
		ID:           snap.ID,
		Phase:        phase,
		Setup: domain.SessionSetup{
			Activity:     domain.Activity(snap.Setup.Activity),
			Participants: domain.Participants(snap.Setup.Participants),
		},
	}
	// Empty lists stay nil so a decoded session equals the one encoded
	if len(snap.ScenarioLog) > 0 {
		s.ScenarioLog = make([]domain.Scenario, len(snap.ScenarioLog))
	}
	for i, sc := range snap.ScenarioLog {
		s.ScenarioLog[i] = scenarioFromSnapshot(sc)
	}
	if len(snap.ChoiceHistory) > 0 {
		s.ChoiceHistory = make([]domain.RecordedChoice, len(snap.ChoiceHistory))
	}
	for i, rc := range snap.ChoiceHistory {
		at, err := time.Parse(time.RFC3339Nano, rc.SelectedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid snapshot: choice %d: %w", i, err)
		}
		s.ChoiceHistory[i] = domain.RecordedChoice{
			ChoiceID:     rc.ChoiceID,
			SafetyRating: rc.SafetyRating,
			ScenarioID:   rc.ScenarioID,
			SelectedAt:   at.UTC(),
		}
	}
	return s, nil
}

func scenarioToSnapshot(sc domain.Scenario) scenarioSnapshot {
	out := scenarioSnapshot{
		BackgroundRef: sc.BackgroundRef,
		Choices:       make([]choiceSnapshot, len(sc.Choices)),
		ContextNote:   sc.ContextNote,
		Description:   sc.Description,
		ID:            sc.ID,
		Title:         sc.Title,
	}
	for i, c := range sc.Choices {
		out.Choices[i] = choiceSnapshot{
			Explanation:  c.Explanation,
			ID:           c.ID,
			SafetyRating: c.SafetyRating,
			Text:         c.Text,
		}
	}
	return out
}

func scenarioFromSnapshot(sc scenarioSnapshot) domain.Scenario {
	out := domain.Scenario{
		BackgroundRef: sc.BackgroundRef,
		ContextNote:   sc.ContextNote,
		Description:   sc.Description,
		ID:            sc.ID,
		Title:         sc.Title,
	}
	if len(sc.Choices) > 0 {
		out.Choices = make([]domain.Choice, len(sc.Choices))
	}
	for i, c := range sc.Choices {
		out.Choices[i] = domain.Choice{
			Explanation:  c.Explanation,
			ID:           c.ID,
			SafetyRating: c.SafetyRating,
			Text:         c.Text,
		}
	}
	return out
}

// encodeReport serializes an analysis report
func encodeReport(r domain.AnalysisReport) ([]byte, error) {
	snap := reportSnapshot{
		Grade:               string(r.Grade),
		Improvements:        r.Improvements,
		MaxScore:            r.MaxScore,
		PerScenarioFeedback: make([]feedbackSnapshot, len(r.PerScenarioFeedback)),
		Strengths:           r.Strengths,
		SummaryText:         r.SummaryText,
		TotalScore:          r.TotalScore,
	}
	for i, fb := range r.PerScenarioFeedback {
		snap.PerScenarioFeedback[i] = feedbackSnapshot{
			ChosenChoiceID:  fb.ChosenChoiceID,
			Note:            fb.Note,
			OptimalChoiceID: fb.OptimalChoiceID,
			Polarity:        string(fb.Polarity),
			ScenarioID:      fb.ScenarioID,
		}
	}
	return json.Marshal(snap)
}

// decodeReport rebuilds an analysis report
func decodeReport(data []byte) (*domain.AnalysisReport, error) {
	var snap reportSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid report: %w", err)
	}
	r := &domain.AnalysisReport{
		Grade:               domain.Grade(snap.Grade),
		Improvements:        snap.Improvements,
		MaxScore:            snap.MaxScore,
		PerScenarioFeedback: make([]domain.ScenarioFeedback, len(snap.PerScenarioFeedback)),
		Strengths:           snap.Strengths,
		SummaryText:         snap.SummaryText,
		TotalScore:          snap.TotalScore,
	}
	if r.Improvements == nil {
		r.Improvements = []string{}
	}
	if r.Strengths == nil {
		r.Strengths = []string{}
	}
	for i, fb := range snap.PerScenarioFeedback {
		r.PerScenarioFeedback[i] = domain.ScenarioFeedback{
			ChosenChoiceID:  fb.ChosenChoiceID,
			Note:            fb.Note,
			OptimalChoiceID: fb.OptimalChoiceID,
			Polarity:        domain.Polarity(fb.Polarity),
			ScenarioID:      fb.ScenarioID,
		}
	}
	return r, nil
}

// sessionToModel builds the row stored for a session
func sessionToModel(s *domain.Session, snapshot []byte, savedAt time.Time) SessionModel {
	return SessionModel{
		Activity:      string(s.Setup.Activity),
		ChoiceCount:   len(s.ChoiceHistory),
		ID:            s.ID,
		LastSavedAt:   savedAt,
		Participants:  string(s.Setup.Participants),
		Phase:         string(s.Phase),
		ScenarioCount: len(s.ScenarioLog),
		Snapshot:      string(snapshot),
	}
}

// modelToSummary converts a row to its list-view projection
func modelToSummary(m SessionModel) domain.SessionSummary {
	return domain.SessionSummary{
		ChoiceCount:   m.ChoiceCount,
		ID:            m.ID,
		LastSavedAt:   m.LastSavedAt.UTC(),
		Phase:         domain.Phase(m.Phase),
		ScenarioCount: m.ScenarioCount,
		Setup: domain.SessionSetup{
			Activity:     domain.Activity(m.Activity),
			Participants: domain.Participants(m.Participants),
		},
	}
}
