package storage

import "time"

// SessionModel is the GORM model for sessions table.
// Snapshot holds the full JSON session; the other columns serve listings.
type SessionModel struct {
	Activity      string    `gorm:"not null"`
	ChoiceCount   int       `gorm:"not null;default:0"`
	CreatedAt     time.Time
	ID            string    `gorm:"primaryKey"`
	LastSavedAt   time.Time `gorm:"not null;index:idx_last_saved_at"`
	Participants  string    `gorm:"not null"`
	Phase         string    `gorm:"not null;index:idx_phase"`
	ScenarioCount int       `gorm:"not null;default:0"`
	Snapshot      string    `gorm:"not null"`
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string { return "sessions" }

// ActiveSessionModel is the single-row table holding the active session id
type ActiveSessionModel struct {
	SessionID string `gorm:"not null"`
	Slot      int    `gorm:"primaryKey;autoIncrement:false"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (ActiveSessionModel) TableName() string { return "active_session" }

// AnalysisReportModel is the GORM model for cached analysis reports
type AnalysisReportModel struct {
	CreatedAt time.Time
	Report    string `gorm:"not null"`
	SessionID string `gorm:"primaryKey"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (AnalysisReportModel) TableName() string { return "analysis_reports" }

// activeSlot is the primary key of the only active_session row
const activeSlot = 1

// snapshotVersion is written into every snapshot
const snapshotVersion = 1

type sessionSnapshot struct {
	ChoiceHistory []recordedChoiceSnapshot `json:"choiceHistory"`
	CurrentIndex  int                      `json:"currentIndex"`
	ID            string                   `json:"id"`
	Phase         string                   `json:"phase"`
	ScenarioLog   []scenarioSnapshot       `json:"scenarioLog"`
	Setup         setupSnapshot            `json:"setup"`
	Version       int                      `json:"version"`
}

type setupSnapshot struct {
	Activity     string `json:"activity"`
	Participants string `json:"participants"`
}

type scenarioSnapshot struct {
	BackgroundRef string           `json:"backgroundRef"`
	Choices       []choiceSnapshot `json:"choices"`
	ContextNote   string           `json:"contextNote"`
	Description   string           `json:"description"`
	ID            string           `json:"id"`
	Title         string           `json:"title"`
}

type choiceSnapshot struct {
	Explanation  string `json:"explanation,omitempty"`
	ID           string `json:"id"`
	SafetyRating int    `json:"safetyRating"`
	Text         string `json:"text"`
}

// SelectedAt is kept as RFC 3339 text with nanoseconds
type recordedChoiceSnapshot struct {
	ChoiceID     string `json:"choiceId"`
	SafetyRating int    `json:"safetyRating"`
	ScenarioID   string `json:"scenarioId"`
	SelectedAt   string `json:"selectedAt"`
}

type reportSnapshot struct {
	Grade               string             `json:"grade"`
	Improvements        []string           `json:"improvements"`
	MaxScore            int                `json:"maxScore"`
	PerScenarioFeedback []feedbackSnapshot `json:"perScenarioFeedback"`
	Strengths           []string           `json:"strengths"`
	SummaryText         string             `json:"summaryText"`
	TotalScore          int                `json:"totalScore"`
}

type feedbackSnapshot struct {
	ChosenChoiceID  string `json:"chosenChoiceId"`
	Note            string `json:"note"`
	OptimalChoiceID string `json:"optimalChoiceId"`
	Polarity        string `json:"polarity"`
	ScenarioID      string `json:"scenarioId"`
}
