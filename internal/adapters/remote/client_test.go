package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tideline/internal/adapters/simulator"
	"tideline/internal/domain"
	"tideline/internal/server"
)

func newSimulatorServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(server.NewServer("", simulator.NewSimulator(nil, 0)).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestClient_RoundTripAgainstSimulatorServer(t *testing.T) {
	ts := newSimulatorServer(t)
	client := NewClient(ts.URL+"/", time.Second)
	ctx := context.Background()

	created, err := client.CreateSession(ctx, domain.SessionSetup{
		Activity:     domain.ActivityFishing,
		Participants: domain.ParticipantsSingle,
	})
	require.NoError(t, err)
	assert.Equal(t, "fish_1", created.InitialScenario.ID)
	assert.Equal(t, simulator.DefaultCatalog().ForActivity(domain.ActivityFishing)[0], created.InitialScenario)

	outcome, err := client.ResolveChoice(ctx, created.ID, "fish_1_b")
	require.NoError(t, err)
	require.NotNil(t, outcome.NextScenario)
	assert.Equal(t, "fish_2", outcome.NextScenario.ID)
	assert.Equal(t, simulator.ConsequenceExcellent, outcome.ImmediateConsequence)

	outcome, err = client.ResolveChoice(ctx, created.ID, "leisure_1_b")
	require.NoError(t, err)
	assert.True(t, outcome.IsComplete)
	assert.Nil(t, outcome.NextScenario)

	session := domain.Session{
		ID:          created.ID,
		ScenarioLog: []domain.Scenario{created.InitialScenario},
		ChoiceHistory: []domain.RecordedChoice{
			{ScenarioID: "fish_1", ChoiceID: "fish_1_b", SafetyRating: 5, SelectedAt: time.Now()},
		},
	}
	report, err := client.GetAnalysis(ctx, session)
	require.NoError(t, err)
	require.NotNil(t, report.Grade)
	assert.Equal(t, domain.GradeA, *report.Grade)
	assert.Len(t, report.PerScenarioFeedback, 1)
}

func TestClient_ErrorEnvelopeCarriesMessage(t *testing.T) {
	ts := newSimulatorServer(t)
	client := NewClient(ts.URL, time.Second)

	_, err := client.CreateSession(context.Background(), domain.SessionSetup{
		Activity:     "surfing",
		Participants: domain.ParticipantsSingle,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown activity")
}

func TestClient_NonEnvelopeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	defer ts.Close()
	client := NewClient(ts.URL, time.Second)

	_, err := client.ResolveChoice(context.Background(), "g", "c")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_MissingSessionID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"initialScenario":{"id":"x"}},"timestamp":"2026-01-01T00:00:00Z"}`))
	}))
	defer ts.Close()
	client := NewClient(ts.URL, time.Second)

	_, err := client.CreateSession(context.Background(), domain.SessionSetup{})

	assert.EqualError(t, err, "provider returned no session id")
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)
	client := NewClient(ts.URL, 50*time.Millisecond)

	_, err := client.ResolveChoice(context.Background(), "g", "c")

	assert.Error(t, err)
}

func TestClient_AnalysisCallsAreShared(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"totalScore":3},"timestamp":"2026-01-01T00:00:00Z"}`))
	}))
	defer ts.Close()
	client := NewClient(ts.URL, 5*time.Second)
	session := domain.Session{ID: "game_shared"}

	const callers = 5
	var wg sync.WaitGroup
	results := make([]*domain.RemoteReport, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := client.GetAnalysis(context.Background(), session)
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	// Give the remaining callers time to join the in-flight request
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		require.NotNil(t, r)
		require.NotNil(t, r.TotalScore)
		assert.Equal(t, 3, *r.TotalScore)
		assert.Nil(t, r.Grade)
	}
}

func TestClient_SharedAnalysisSurvivesFirstCallerCancel(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"totalScore":4},"timestamp":"2026-01-01T00:00:00Z"}`))
	}))
	defer ts.Close()
	client := NewClient(ts.URL, 5*time.Second)
	session := domain.Session{ID: "game_cancel"}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := client.GetAnalysis(firstCtx, session)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	type result struct {
		report *domain.RemoteReport
		err    error
	}
	second := make(chan result, 1)
	go func() {
		r, err := client.GetAnalysis(context.Background(), session)
		second <- result{r, err}
	}()
	// Give the second caller time to join the in-flight request
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	res := <-second
	require.NoError(t, res.err)
	require.NotNil(t, res.report.TotalScore)
	assert.Equal(t, 4, *res.report.TotalScore)
	assert.Equal(t, int32(1), calls.Load())
}
