package domain

import (
	"fmt"
	"time"
)

// Phase is the position of a session in its lifecycle
type Phase string

const (
	PhaseAnalysis Phase = "analysis"
	PhaseFinished Phase = "finished"
	PhasePlaying  Phase = "playing"
	PhaseSetup    Phase = "setup"
)

// PendingOperation names the provider call a session is waiting on.
// It is transient and never restored from storage.
type PendingOperation string

const (
	PendingAdvancing PendingOperation = "advancing"
	PendingAnalyzing PendingOperation = "analyzing"
	PendingCreating  PendingOperation = "creating"
	PendingNone      PendingOperation = ""
)

// ParsePhase converts a stored phase string back into a Phase
func ParsePhase(s string) (Phase, error) {
	switch p := Phase(s); p {
	case PhaseSetup, PhasePlaying, PhaseAnalysis, PhaseFinished:
		return p, nil
	}
	return "", fmt.Errorf("unknown phase %q", s)
}

// RecordedChoice is appended once per scenario advancement.
// SafetyRating is copied from the choice at selection time.
type RecordedChoice struct {
	ChoiceID     string
	SafetyRating int
	ScenarioID   string
	SelectedAt   time.Time
}

// Session is one play-through, from setup to analysis
type Session struct {
	ChoiceHistory []RecordedChoice
	CurrentIndex  int
	ID            string
	LastSavedAt   time.Time
	Pending       PendingOperation
	Phase         Phase
	ScenarioLog   []Scenario
	Setup         SessionSetup
}

// SessionSummary is the list-view projection of a stored session
type SessionSummary struct {
	ChoiceCount   int
	ID            string
	LastSavedAt   time.Time
	Phase         Phase
	ScenarioCount int
	Setup         SessionSetup
}

// NewSetupSession returns the empty shell used while the provider creates a session
func NewSetupSession(setup SessionSetup) *Session {
	return &Session{
		Pending: PendingCreating,
		Phase:   PhaseSetup,
		Setup:   setup,
	}
}

// ActiveScenario returns the scenario at CurrentIndex
func (s *Session) ActiveScenario() (Scenario, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.ScenarioLog) {
		return Scenario{}, false
	}
	return s.ScenarioLog[s.CurrentIndex], true
}

// ScenarioByID finds a scenario previously issued in this session
func (s *Session) ScenarioByID(id string) (Scenario, bool) {
	for _, sc := range s.ScenarioLog {
		if sc.ID == id {
			return sc, true
		}
	}
	return Scenario{}, false
}

// Summary builds the list-view entry for this session
func (s *Session) Summary() SessionSummary {
	return SessionSummary{
		ChoiceCount:   len(s.ChoiceHistory),
		ID:            s.ID,
		LastSavedAt:   s.LastSavedAt,
		Phase:         s.Phase,
		ScenarioCount: len(s.ScenarioLog),
		Setup:         s.Setup,
	}
}

// Clone returns a deep copy so callers cannot mutate shared slices
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.ScenarioLog = make([]Scenario, len(s.ScenarioLog))
	for i, sc := range s.ScenarioLog {
		sc.Choices = append([]Choice(nil), sc.Choices...)
		c.ScenarioLog[i] = sc
	}
	c.ChoiceHistory = append([]RecordedChoice(nil), s.ChoiceHistory...)
	return &c
}

// Validate checks the structural invariants of a settled session.
// Sessions in the setup phase have not been created yet and are never valid
// snapshots.
func (s *Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: session has no id", ErrValidation)
	}
	if err := s.Setup.Validate(); err != nil {
		return err
	}
	if len(s.ScenarioLog) == 0 {
		return fmt.Errorf("%w: session has no scenarios", ErrValidation)
	}

	seen := make(map[string]bool, len(s.ScenarioLog))
	for _, sc := range s.ScenarioLog {
		if seen[sc.ID] {
			return fmt.Errorf("%w: duplicate scenario %s", ErrValidation, sc.ID)
		}
		seen[sc.ID] = true
	}

	if s.CurrentIndex != len(s.ScenarioLog)-1 {
		return fmt.Errorf("%w: current index %d does not point at last scenario", ErrValidation, s.CurrentIndex)
	}

	switch s.Phase {
	case PhasePlaying:
		if len(s.ChoiceHistory) != s.CurrentIndex {
			return fmt.Errorf("%w: %d choices recorded for index %d", ErrValidation, len(s.ChoiceHistory), s.CurrentIndex)
		}
	case PhaseAnalysis, PhaseFinished:
		if len(s.ChoiceHistory) != len(s.ScenarioLog) {
			return fmt.Errorf("%w: %d choices recorded for %d scenarios", ErrValidation, len(s.ChoiceHistory), len(s.ScenarioLog))
		}
	default:
		return fmt.Errorf("%w: session in phase %q cannot be restored", ErrValidation, s.Phase)
	}

	for i, rc := range s.ChoiceHistory {
		if rc.ScenarioID != s.ScenarioLog[i].ID {
			return fmt.Errorf("%w: choice %d answers %s, expected %s", ErrValidation, i, rc.ScenarioID, s.ScenarioLog[i].ID)
		}
	}
	return nil
}
