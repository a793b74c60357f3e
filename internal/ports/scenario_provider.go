package ports

import (
	"context"

	"tideline/internal/domain"
)

// CreatedSession is the provider's answer to a session creation request
type CreatedSession struct {
	ID              string
	InitialScenario domain.Scenario
}

// ChoiceOutcome is the provider's resolution of a selected choice.
// NextScenario is nil when IsComplete is true.
type ChoiceOutcome struct {
	Feedback             string
	ImmediateConsequence string
	IsComplete           bool
	NextScenario         *domain.Scenario
}

// ScenarioProvider generates scenarios and scores sessions.
// Failures are returned as errors; implementations never panic.
type ScenarioProvider interface {
	CreateSession(ctx context.Context, setup domain.SessionSetup) (*CreatedSession, error)
	GetAnalysis(ctx context.Context, session domain.Session) (*domain.RemoteReport, error)
	ResolveChoice(ctx context.Context, sessionID, choiceID string) (*ChoiceOutcome, error)
}
