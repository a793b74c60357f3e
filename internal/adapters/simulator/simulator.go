package simulator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tideline/internal/domain"
	"tideline/internal/logging"
	"tideline/internal/ports"
)

// Immediate consequence texts, one per safety tier
const (
	ConsequenceDangerous = "Dangerous: that choice could cost a life."
	ConsequenceExcellent = "Excellent: a very safe choice!"
	ConsequenceGood      = "Good judgement!"
	ConsequenceMiddling  = "A middling choice. It could have gone better."
	ConsequenceRisky     = "Risky: that could turn dangerous."
)

const (
	choiceNotFoundFeedback    = "Choice not found."
	choiceNotFoundConsequence = "The game has ended."
	defaultFeedback           = "Choice recorded."
)

// Simulator is a local ScenarioProvider backed by a fixed catalog
type Simulator struct {
	catalog *Catalog
	latency time.Duration
	now     func() time.Time
}

// Verify interface compliance at compile time
var _ ports.ScenarioProvider = (*Simulator)(nil)

// NewSimulator creates a simulator over catalog. A positive latency delays
// every call, which makes in-flight guards observable from a terminal.
func NewSimulator(catalog *Catalog, latency time.Duration) *Simulator {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Simulator{catalog: catalog, latency: latency, now: time.Now}
}

// CreateSession implements ScenarioProvider.CreateSession
func (s *Simulator) CreateSession(ctx context.Context, setup domain.SessionSetup) (*ports.CreatedSession, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if err := setup.Validate(); err != nil {
		return nil, err
	}

	scenarios := s.catalog.ForActivity(setup.Activity)
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios for activity %s", setup.Activity)
	}

	id := s.newSessionID()
	logging.Logger.Info("Simulated session created", "session", id, "activity", setup.Activity, "participants", setup.Participants)

	return &ports.CreatedSession{
		ID:              id,
		InitialScenario: cloneScenario(scenarios[0]),
	}, nil
}

// ResolveChoice implements ScenarioProvider.ResolveChoice. The choice is
// searched across every activity and the first match wins; the next scenario
// is its successor in that flattened order.
func (s *Simulator) ResolveChoice(ctx context.Context, sessionID, choiceID string) (*ports.ChoiceOutcome, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	idx, choice, ok := s.catalog.FindByChoice(choiceID)
	if !ok {
		logging.Logger.Warn("Choice not found in catalog, ending session", "session", sessionID, "choice", choiceID)
		return &ports.ChoiceOutcome{
			Feedback:             choiceNotFoundFeedback,
			ImmediateConsequence: choiceNotFoundConsequence,
			IsComplete:           true,
		}, nil
	}

	feedback := choice.Explanation
	if feedback == "" {
		feedback = defaultFeedback
	}
	outcome := &ports.ChoiceOutcome{
		Feedback:             feedback,
		ImmediateConsequence: ConsequenceFor(choice.SafetyRating),
		IsComplete:           true,
	}

	flat := s.catalog.Flattened()
	if idx < len(flat)-1 {
		next := cloneScenario(flat[idx+1])
		outcome.NextScenario = &next
		outcome.IsComplete = false
	}

	logging.Logger.Debug("Simulated choice resolved", "session", sessionID, "choice", choiceID, "complete", outcome.IsComplete)
	return outcome, nil
}

// GetAnalysis implements ScenarioProvider.GetAnalysis from the session's
// own choice history.
func (s *Simulator) GetAnalysis(ctx context.Context, session domain.Session) (*domain.RemoteReport, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	report := domain.EstimateReport(&session)
	return domain.CompleteRemoteReport(report), nil
}

// ConsequenceFor maps a safety rating to its immediate consequence text.
// Tiers are inclusive lower bounds evaluated from the top.
func ConsequenceFor(rating int) string {
	switch {
	case rating >= 5:
		return ConsequenceExcellent
	case rating >= 4:
		return ConsequenceGood
	case rating >= 3:
		return ConsequenceMiddling
	case rating >= 2:
		return ConsequenceRisky
	default:
		return ConsequenceDangerous
	}
}

func (s *Simulator) newSessionID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("game_%d_%s", s.now().UnixMilli(), suffix)
}

func (s *Simulator) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func cloneScenario(sc domain.Scenario) domain.Scenario {
	sc.Choices = append([]domain.Choice(nil), sc.Choices...)
	return sc
}
