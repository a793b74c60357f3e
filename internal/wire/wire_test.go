package wire

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tideline/internal/domain"
)

func TestEnvelope_SuccessJSON(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	body, err := json.Marshal(Success(ChoiceRequest{ChoiceID: "a"}, now))
	require.NoError(t, err)

	assert.JSONEq(t, `{"success":true,"data":{"choiceId":"a"},"timestamp":"2026-03-01T10:00:00Z"}`, string(body))
}

func TestEnvelope_FailureJSON(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	body, err := json.Marshal(Failure("boom", now))
	require.NoError(t, err)

	assert.JSONEq(t, `{"success":false,"error":"boom","timestamp":"2026-03-01T10:00:00Z"}`, string(body))
}

func TestScenario_RoundTrip(t *testing.T) {
	sc := domain.Scenario{
		BackgroundRef: "beach",
		ContextNote:   "Windy",
		Description:   "Waves",
		ID:            "s1",
		Title:         "Beach",
		Choices: []domain.Choice{
			{ID: "s1_a", Text: "Go", SafetyRating: 1, Explanation: "No"},
			{ID: "s1_b", Text: "Stay", SafetyRating: 5},
		},
	}

	assert.Equal(t, sc, ScenarioFromDomain(sc).ToDomain())
}

func TestAnalysisRequest_ToSession(t *testing.T) {
	selected := time.Date(2026, 3, 1, 10, 0, 0, 123456789, time.UTC)
	s := domain.Session{
		ID:          "g1",
		ScenarioLog: []domain.Scenario{{ID: "s1", Choices: []domain.Choice{{ID: "s1_a", SafetyRating: 4}}}},
		ChoiceHistory: []domain.RecordedChoice{
			{ScenarioID: "s1", ChoiceID: "s1_a", SafetyRating: 4, SelectedAt: selected},
		},
	}

	got, err := AnalysisRequestFromSession(s).ToSession("g1")

	require.NoError(t, err)
	assert.Equal(t, s.ScenarioLog, got.ScenarioLog)
	assert.Equal(t, s.ChoiceHistory, got.ChoiceHistory)
}

func TestAnalysisRequest_InvalidTimestamp(t *testing.T) {
	req := AnalysisRequest{ChoiceHistory: []RecordedChoiceDTO{{ChoiceID: "a", Timestamp: "yesterday"}}}

	_, err := req.ToSession("g1")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAnalysisRequest_RatingComesFromScenario(t *testing.T) {
	req := AnalysisRequest{
		Scenarios: []ScenarioDTO{{ID: "s1", Choices: []ChoiceDTO{{ID: "s1_a", SafetyRating: 1}}}},
		ChoiceHistory: []RecordedChoiceDTO{
			{ScenarioID: "s1", ChoiceID: "s1_a", SafetyRating: 5, Timestamp: "2026-03-01T10:00:00Z"},
		},
	}

	got, err := req.ToSession("g1")

	require.NoError(t, err)
	require.Len(t, got.ChoiceHistory, 1)
	assert.Equal(t, 1, got.ChoiceHistory[0].SafetyRating)
}

func TestAnalysisRequest_UnknownChoiceRejected(t *testing.T) {
	tests := []struct {
		name       string
		scenarioID string
		choiceID   string
	}{
		{name: "scenario not submitted", scenarioID: "s2", choiceID: "s1_a"},
		{name: "choice not offered", scenarioID: "s1", choiceID: "s1_z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := AnalysisRequest{
				Scenarios: []ScenarioDTO{{ID: "s1", Choices: []ChoiceDTO{{ID: "s1_a", SafetyRating: 3}}}},
				ChoiceHistory: []RecordedChoiceDTO{
					{ScenarioID: tt.scenarioID, ChoiceID: tt.choiceID, SafetyRating: 5, Timestamp: "2026-03-01T10:00:00Z"},
				},
			}

			_, err := req.ToSession("g1")
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestAnalysisResponse_PartialFieldsStayNil(t *testing.T) {
	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal([]byte(`{"totalScore":7,"strengths":[]}`), &resp))

	r := resp.ToRemoteReport()

	require.NotNil(t, r.TotalScore)
	assert.Equal(t, 7, *r.TotalScore)
	assert.Nil(t, r.MaxScore)
	assert.Nil(t, r.Grade)
	assert.Nil(t, r.SummaryText)
	assert.NotNil(t, r.Strengths)
	assert.Empty(t, r.Strengths)
	assert.Nil(t, r.Improvements)
	assert.Nil(t, r.PerScenarioFeedback)
}

func TestAnalysisResponse_UnknownGradeDropped(t *testing.T) {
	g := "Z"
	r := AnalysisResponse{Grade: &g}.ToRemoteReport()
	assert.Nil(t, r.Grade)
}

func TestAnalysisResponse_FromCompleteReport(t *testing.T) {
	report := domain.AnalysisReport{
		Grade:        domain.GradeB,
		Improvements: []string{"more care"},
		MaxScore:     10,
		PerScenarioFeedback: []domain.ScenarioFeedback{
			{ScenarioID: "s1", ChosenChoiceID: "a", OptimalChoiceID: "b", Polarity: domain.PolarityNeutral, Note: "ok"},
		},
		Strengths:   []string{},
		SummaryText: "fine",
		TotalScore:  8,
	}

	body, err := json.Marshal(AnalysisResponseFromReport(domain.CompleteRemoteReport(report)))
	require.NoError(t, err)
	var decoded AnalysisResponse
	require.NoError(t, json.Unmarshal(body, &decoded))

	merged := domain.MergeReport(domain.AnalysisReport{}, decoded.ToRemoteReport())
	assert.Equal(t, report, merged)
}
