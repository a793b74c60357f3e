package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tideline/internal/adapters/simulator"
	"tideline/internal/domain"
	"tideline/internal/ports/mocks"
	"tideline/internal/wire"
)

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) wire.Envelope[T] {
	t.Helper()
	var env wire.Envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	_, err := time.Parse(time.RFC3339, env.Timestamp)
	require.NoError(t, err, "timestamp must be RFC 3339")
	return env
}

func TestCreateSession(t *testing.T) {
	h := NewServer("", simulator.NewSimulator(nil, 0)).Handler()

	rec := post(t, h, "/sessions", `{"participants":"double","activity":"fishing"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope[wire.CreateSessionResponse](t, rec)
	assert.True(t, env.Success)
	require.NotNil(t, env.Data)
	assert.NotEmpty(t, env.Data.SessionID)
	assert.Equal(t, "fish_1", env.Data.InitialScenario.ID)
	assert.Len(t, env.Data.InitialScenario.Choices, 3)
}

func TestCreateSession_BadInput(t *testing.T) {
	h := NewServer("", simulator.NewSimulator(nil, 0)).Handler()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"unknown activity", `{"participants":"single","activity":"surfing"}`},
		{"unknown participants", `{"participants":"many","activity":"fishing"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, "/sessions", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			env := decodeEnvelope[struct{}](t, rec)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestResolveChoice(t *testing.T) {
	h := NewServer("", simulator.NewSimulator(nil, 0)).Handler()

	rec := post(t, h, "/sessions/game_1/choices", `{"choiceId":"fish_1_b"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope[wire.ChoiceResponse](t, rec)
	require.NotNil(t, env.Data)
	assert.False(t, env.Data.IsComplete)
	require.NotNil(t, env.Data.NextScenario)
	assert.Equal(t, "fish_2", env.Data.NextScenario.ID)
}

func TestResolveChoice_MissingChoiceID(t *testing.T) {
	h := NewServer("", simulator.NewSimulator(nil, 0)).Handler()

	rec := post(t, h, "/sessions/game_1/choices", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveChoice_PassesPathID(t *testing.T) {
	provider := mocks.NewMockScenarioProvider(t)
	provider.EXPECT().ResolveChoice(mock.Anything, "game_42", "c1").
		Return(nil, errors.New("provider down"))
	h := NewServer("", provider).Handler()

	rec := post(t, h, "/sessions/game_42/choices", `{"choiceId":"c1"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope[struct{}](t, rec)
	assert.Equal(t, "provider down", env.Error)
}

func TestAnalysis(t *testing.T) {
	h := NewServer("", simulator.NewSimulator(nil, 0)).Handler()
	body := `{
		"scenarios":[{"id":"fish_1","title":"t","description":"d","choices":[{"id":"fish_1_b","text":"x","safetyRating":5}]}],
		"choiceHistory":[{"scenarioId":"fish_1","choiceId":"fish_1_b","safetyRating":5,"timestamp":"2026-03-01T10:00:00Z"}]
	}`

	rec := post(t, h, "/sessions/game_1/analysis", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope[wire.AnalysisResponse](t, rec)
	require.NotNil(t, env.Data)
	require.NotNil(t, env.Data.TotalScore)
	require.NotNil(t, env.Data.Grade)
	assert.Equal(t, 5, *env.Data.TotalScore)
	assert.Equal(t, "A", *env.Data.Grade)
}

func TestAnalysis_BadTimestamp(t *testing.T) {
	h := NewServer("", simulator.NewSimulator(nil, 0)).Handler()

	rec := post(t, h, "/sessions/game_1/analysis", `{"scenarios":[],"choiceHistory":[{"timestamp":"later"}]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysis_IgnoresSubmittedRatings(t *testing.T) {
	h := NewServer("", simulator.NewSimulator(nil, 0)).Handler()
	body := `{
		"scenarios":[{"id":"fish_1","title":"t","description":"d","choices":[
			{"id":"fish_1_a","text":"x","safetyRating":1},
			{"id":"fish_1_b","text":"y","safetyRating":5}
		]}],
		"choiceHistory":[{"scenarioId":"fish_1","choiceId":"fish_1_a","safetyRating":5,"timestamp":"2026-03-01T10:00:00Z"}]
	}`

	rec := post(t, h, "/sessions/game_1/analysis", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope[wire.AnalysisResponse](t, rec)
	require.NotNil(t, env.Data)
	require.NotNil(t, env.Data.TotalScore)
	require.NotNil(t, env.Data.Grade)
	assert.Equal(t, 1, *env.Data.TotalScore)
	assert.Equal(t, "F", *env.Data.Grade)
}

func TestAnalysis_UnknownChoiceIsBadRequest(t *testing.T) {
	h := NewServer("", simulator.NewSimulator(nil, 0)).Handler()
	body := `{"scenarios":[],"choiceHistory":[{"scenarioId":"fish_1","choiceId":"fish_1_b","safetyRating":5,"timestamp":"2026-03-01T10:00:00Z"}]}`

	rec := post(t, h, "/sessions/game_1/analysis", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	h := NewServer("", simulator.NewSimulator(nil, 0)).Handler()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope[struct{}](t, rec)
	assert.False(t, env.Success)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrInvalidSetup))
	assert.Equal(t, http.StatusNotFound, statusFor(domain.ErrSessionNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("x")))
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := NewServer(listener.Addr().String(), simulator.NewSimulator(nil, 0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	resp, err := http.Post("http://"+listener.Addr().String()+"/sessions", "application/json",
		strings.NewReader(`{"participants":"single","activity":"leisure"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
