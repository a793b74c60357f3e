package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"tideline/internal/domain"
	"tideline/internal/logging"
	"tideline/internal/ports"
)

// GameState is a read-only snapshot of the game service
type GameState struct {
	Error    string
	Estimate *domain.AnalysisReport
	Pending  domain.PendingOperation
	Phase    domain.Phase
	Report   *domain.AnalysisReport
	Session  *domain.Session
}

// GameServiceOptions tunes a GameService
type GameServiceOptions struct {
	// CallTimeout bounds each provider call. Zero means no limit.
	CallTimeout time.Duration
	Now         func() time.Time
}

// GameService drives a session through setup, play and analysis.
// The mutex is never held across a provider call; the pending operation on
// the session rejects concurrent duplicates instead.
type GameService struct {
	callTimeout time.Duration
	errMsg      string
	generation  uint64
	mu          sync.Mutex
	now         func() time.Time
	provider    ports.ScenarioProvider
	report      *domain.AnalysisReport
	session     *domain.Session
	store       ports.SessionStore
}

// NewGameService creates a new GameService
func NewGameService(
	store ports.SessionStore,
	provider ports.ScenarioProvider,
	opts GameServiceOptions,
) *GameService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &GameService{
		callTimeout: opts.CallTimeout,
		now:         now,
		provider:    provider,
		store:       store,
	}
}

// State returns a copy of the current state
func (s *GameService) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := GameState{
		Error: s.errMsg,
		Phase: domain.PhaseSetup,
	}
	if s.session == nil {
		return state
	}

	state.Session = s.session.Clone()
	state.Phase = s.session.Phase
	state.Pending = s.session.Pending
	if s.report != nil {
		r := *s.report
		state.Report = &r
	}
	if s.session.Phase == domain.PhaseAnalysis || s.session.Phase == domain.PhaseFinished {
		estimate := domain.EstimateReport(s.session)
		state.Estimate = &estimate
	}
	return state
}

// StartSetup asks the provider for a new session and enters the playing phase
func (s *GameService) StartSetup(ctx context.Context, setup domain.SessionSetup) (*domain.Session, error) {
	s.mu.Lock()
	if s.busy() {
		s.mu.Unlock()
		return nil, domain.ErrOperationInProgress
	}
	s.errMsg = ""
	if err := setup.Validate(); err != nil {
		defer s.mu.Unlock()
		return nil, s.fail(err)
	}

	s.generation++
	gen := s.generation
	s.session = domain.NewSetupSession(setup)
	s.report = nil
	s.mu.Unlock()

	logging.Logger.Info("Creating session", "activity", setup.Activity, "participants", setup.Participants)
	callCtx, cancel := s.callContext(ctx)
	created, err := s.provider.CreateSession(callCtx, setup)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		logging.Logger.Debug("Discarding stale session creation")
		return nil, domain.ErrStaleResult
	}

	if err == nil && (created == nil || created.ID == "" || len(created.InitialScenario.Choices) == 0) {
		err = errors.New("provider returned an incomplete session")
	}
	if err != nil {
		s.session = nil
		logging.Logger.Warn("Session creation failed", "error", err)
		return nil, s.fail(domain.NewProviderError("create session", err))
	}

	s.session = &domain.Session{
		CurrentIndex: 0,
		ID:           created.ID,
		Phase:        domain.PhasePlaying,
		ScenarioLog:  []domain.Scenario{created.InitialScenario},
		Setup:        setup,
	}
	s.store.Save(context.WithoutCancel(ctx), s.session)
	logging.Logger.Info("Session started", "session", created.ID, "scenario", created.InitialScenario.ID)
	return s.session.Clone(), nil
}

// SelectChoice records an answer to the active scenario and advances the
// session by the provider's outcome.
func (s *GameService) SelectChoice(ctx context.Context, choiceID string) (*ports.ChoiceOutcome, error) {
	s.mu.Lock()
	if s.busy() {
		s.mu.Unlock()
		return nil, domain.ErrOperationInProgress
	}
	s.errMsg = ""
	if s.session == nil {
		defer s.mu.Unlock()
		return nil, s.fail(domain.ErrNoSession)
	}
	if s.session.Phase != domain.PhasePlaying {
		defer s.mu.Unlock()
		return nil, s.fail(fmt.Errorf("%w: cannot choose in phase %s", domain.ErrInvalidPhase, s.session.Phase))
	}

	scenario, ok := s.session.ActiveScenario()
	if !ok {
		defer s.mu.Unlock()
		return nil, s.fail(fmt.Errorf("%w: no active scenario", domain.ErrValidation))
	}
	choice, ok := scenario.FindChoice(choiceID)
	if !ok {
		defer s.mu.Unlock()
		return nil, s.fail(fmt.Errorf("%w: %s", domain.ErrChoiceNotFound, choiceID))
	}

	recorded := domain.RecordedChoice{
		ChoiceID:     choice.ID,
		SafetyRating: choice.SafetyRating,
		ScenarioID:   scenario.ID,
		SelectedAt:   s.now().UTC(),
	}
	s.session.Pending = domain.PendingAdvancing
	gen := s.generation
	sessionID := s.session.ID
	s.mu.Unlock()

	callCtx, cancel := s.callContext(ctx)
	outcome, err := s.provider.ResolveChoice(callCtx, sessionID, choice.ID)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || s.session == nil || s.session.ID != sessionID {
		logging.Logger.Debug("Discarding stale choice outcome", "session", sessionID)
		return nil, domain.ErrStaleResult
	}
	s.session.Pending = domain.PendingNone

	if err == nil {
		err = validateOutcome(s.session, outcome)
	}
	if err != nil {
		logging.Logger.Warn("Choice resolution failed", "session", sessionID, "choice", choice.ID, "error", err)
		return nil, s.fail(domain.NewProviderError("select choice", err))
	}

	s.session.ChoiceHistory = append(s.session.ChoiceHistory, recorded)
	if outcome.IsComplete {
		s.session.Phase = domain.PhaseAnalysis
	} else {
		s.session.ScenarioLog = append(s.session.ScenarioLog, *outcome.NextScenario)
		s.session.CurrentIndex++
	}
	s.store.Save(context.WithoutCancel(ctx), s.session)

	logging.Logger.Info("Choice recorded",
		"session", sessionID,
		"choice", choice.ID,
		"rating", choice.SafetyRating,
		"complete", outcome.IsComplete)

	result := *outcome
	if outcome.NextScenario != nil && !outcome.IsComplete {
		next := *outcome.NextScenario
		result.NextScenario = &next
	} else {
		result.NextScenario = nil
	}
	return &result, nil
}

// RequestAnalysis asks the provider to score a completed session and caches
// the merged report. Finished sessions return their cached report.
func (s *GameService) RequestAnalysis(ctx context.Context) (*domain.AnalysisReport, error) {
	s.mu.Lock()
	if s.busy() {
		s.mu.Unlock()
		return nil, domain.ErrOperationInProgress
	}
	s.errMsg = ""
	if s.session == nil {
		defer s.mu.Unlock()
		return nil, s.fail(domain.ErrNoSession)
	}
	if s.session.Phase == domain.PhaseFinished {
		defer s.mu.Unlock()
		report := s.finishedReport(ctx)
		return &report, nil
	}
	if s.session.Phase != domain.PhaseAnalysis {
		defer s.mu.Unlock()
		return nil, s.fail(fmt.Errorf("%w: cannot analyze in phase %s", domain.ErrInvalidPhase, s.session.Phase))
	}

	s.session.Pending = domain.PendingAnalyzing
	snapshot := *s.session.Clone()
	snapshot.Pending = domain.PendingNone
	gen := s.generation
	s.mu.Unlock()

	callCtx, cancel := s.callContext(ctx)
	remote, err := s.provider.GetAnalysis(callCtx, snapshot)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || s.session == nil || s.session.ID != snapshot.ID {
		logging.Logger.Debug("Discarding stale analysis", "session", snapshot.ID)
		return nil, domain.ErrStaleResult
	}
	s.session.Pending = domain.PendingNone

	if err != nil {
		logging.Logger.Warn("Analysis failed", "session", snapshot.ID, "error", err)
		return nil, s.fail(domain.NewProviderError("analyze session", err))
	}

	report := domain.MergeReport(domain.EstimateReport(s.session), remote)
	s.session.Phase = domain.PhaseFinished
	// Persist even if the caller has gone away
	saveCtx := context.WithoutCancel(ctx)
	s.store.Save(saveCtx, s.session)
	s.store.SaveReport(saveCtx, s.session.ID, report)
	s.report = &report

	logging.Logger.Info("Session analyzed", "session", snapshot.ID, "grade", report.Grade, "score", report.TotalScore, "max", report.MaxScore)
	result := report
	return &result, nil
}

// Reset forgets the in-memory session. Stored sessions are kept.
func (s *GameService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.session = nil
	s.report = nil
	s.errMsg = ""
}

// Resume loads a stored session and continues at its recorded phase
func (s *GameService) Resume(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errMsg = ""
	s.generation++
	s.session = nil
	s.report = nil

	loaded, ok := s.store.Load(ctx, id)
	if !ok {
		return nil, s.fail(domain.ErrSessionNotFound)
	}
	if err := loaded.Validate(); err != nil {
		logging.Logger.Warn("Refusing to resume malformed session", "session", id, "error", err)
		return nil, s.fail(domain.ErrSessionNotFound)
	}

	loaded.Pending = domain.PendingNone
	s.session = loaded
	s.store.SetActive(ctx, id)
	if loaded.Phase == domain.PhaseFinished {
		report := s.finishedReport(ctx)
		s.report = &report
	}

	logging.Logger.Info("Session resumed", "session", id, "phase", loaded.Phase)
	return s.session.Clone(), nil
}

// ResumeActive resumes the store's active session. It reports whether a
// session was resumed and never records an error.
func (s *GameService) ResumeActive(ctx context.Context) bool {
	id, ok := s.store.ActiveID(ctx)
	if !ok {
		return false
	}
	if _, err := s.Resume(ctx, id); err != nil {
		s.mu.Lock()
		s.errMsg = ""
		s.mu.Unlock()
		logging.Logger.Debug("Active session could not be resumed", "session", id, "error", err)
		return false
	}
	return true
}

// DeleteSession removes a stored session, leaving the in-memory session
// alone unless it is the deleted one.
func (s *GameService) DeleteSession(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Delete(ctx, id)
	if s.session != nil && s.session.ID == id {
		s.generation++
		s.session = nil
		s.report = nil
		s.errMsg = ""
	}
	logging.Logger.Info("Session deleted", "session", id)
}

// ListSessions returns stored session summaries, most recently saved first
func (s *GameService) ListSessions(ctx context.Context) []domain.SessionSummary {
	summaries := s.store.ListSummaries(ctx)
	slices.SortStableFunc(summaries, func(a, b domain.SessionSummary) int {
		return b.LastSavedAt.Compare(a.LastSavedAt)
	})
	return summaries
}

// busy reports whether a provider call is in flight. Caller holds mu.
func (s *GameService) busy() bool {
	return s.session != nil && s.session.Pending != domain.PendingNone
}

// fail records err as the state's error message. Caller holds mu.
func (s *GameService) fail(err error) error {
	s.errMsg = err.Error()
	return err
}

// finishedReport returns the cached report of the finished session,
// rebuilding it from the local estimate when none was stored. Caller holds mu.
func (s *GameService) finishedReport(ctx context.Context) domain.AnalysisReport {
	if s.report != nil {
		return *s.report
	}
	if cached, ok := s.store.LoadReport(ctx, s.session.ID); ok {
		return *cached
	}
	logging.Logger.Debug("No cached report, using local estimate", "session", s.session.ID)
	return domain.EstimateReport(s.session)
}

func (s *GameService) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout > 0 {
		return context.WithTimeout(ctx, s.callTimeout)
	}
	return context.WithCancel(ctx)
}

func validateOutcome(session *domain.Session, outcome *ports.ChoiceOutcome) error {
	if outcome == nil {
		return errors.New("provider returned no outcome")
	}
	if outcome.IsComplete {
		return nil
	}
	if outcome.NextScenario == nil {
		return errors.New("provider returned neither a next scenario nor completion")
	}
	if _, dup := session.ScenarioByID(outcome.NextScenario.ID); dup {
		return fmt.Errorf("provider repeated scenario %s", outcome.NextScenario.ID)
	}
	if len(outcome.NextScenario.Choices) == 0 {
		return fmt.Errorf("provider returned scenario %s without choices", outcome.NextScenario.ID)
	}
	return nil
}
