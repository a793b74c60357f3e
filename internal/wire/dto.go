package wire

// ChoiceDTO is a selectable answer
type ChoiceDTO struct {
	Explanation  string `json:"explanation,omitempty"`
	ID           string `json:"id"`
	SafetyRating int    `json:"safetyRating"`
	Text         string `json:"text"`
}

// ScenarioDTO is one situation presented to the player
type ScenarioDTO struct {
	BackgroundImage string      `json:"backgroundImage,omitempty"`
	Choices         []ChoiceDTO `json:"choices"`
	Context         string      `json:"context,omitempty"`
	Description     string      `json:"description"`
	ID              string      `json:"id"`
	Title           string      `json:"title"`
}

// CreateSessionRequest is the body of POST /sessions
type CreateSessionRequest struct {
	Activity     string `json:"activity"`
	Participants string `json:"participants"`
}

// CreateSessionResponse is the data of POST /sessions
type CreateSessionResponse struct {
	InitialScenario ScenarioDTO `json:"initialScenario"`
	SessionID       string      `json:"sessionId"`
}

// ChoiceRequest is the body of POST /sessions/{id}/choices
type ChoiceRequest struct {
	ChoiceID string `json:"choiceId"`
}

// ChoiceResponse is the data of POST /sessions/{id}/choices
type ChoiceResponse struct {
	Feedback             string       `json:"feedback"`
	ImmediateConsequence string       `json:"immediateConsequence"`
	IsComplete           bool         `json:"isComplete"`
	NextScenario         *ScenarioDTO `json:"nextScenario,omitempty"`
}

// RecordedChoiceDTO is one entry of a session's choice history
type RecordedChoiceDTO struct {
	ChoiceID     string `json:"choiceId"`
	SafetyRating int    `json:"safetyRating"`
	ScenarioID   string `json:"scenarioId"`
	Timestamp    string `json:"timestamp"`
}

// AnalysisRequest is the body of POST /sessions/{id}/analysis
type AnalysisRequest struct {
	ChoiceHistory []RecordedChoiceDTO `json:"choiceHistory"`
	Scenarios     []ScenarioDTO       `json:"scenarios"`
}

// FeedbackDTO is the per-scenario part of an analysis
type FeedbackDTO struct {
	ChosenChoiceID  string `json:"chosenChoiceId"`
	Note            string `json:"note"`
	OptimalChoiceID string `json:"optimalChoiceId"`
	Polarity        string `json:"polarity"`
	ScenarioID      string `json:"scenarioId"`
}

// AnalysisResponse is the data of POST /sessions/{id}/analysis.
// Absent fields are left to the caller's own estimate; slices are not
// omitted so an empty list stays distinguishable from a missing one.
type AnalysisResponse struct {
	Grade               *string       `json:"grade,omitempty"`
	Improvements        []string      `json:"improvements"`
	MaxScore            *int          `json:"maxScore,omitempty"`
	PerScenarioFeedback []FeedbackDTO `json:"perScenarioFeedback"`
	Strengths           []string      `json:"strengths"`
	SummaryText         *string       `json:"summaryText,omitempty"`
	TotalScore          *int          `json:"totalScore,omitempty"`
}
