package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tideline/internal/domain"
)

func TestCreateSession_StartsWithFirstScenarioOfActivity(t *testing.T) {
	sim := NewSimulator(nil, 0)

	tests := []struct {
		activity domain.Activity
		expected string
	}{
		{domain.ActivitySwimming, "swim_1"},
		{domain.ActivityFishing, "fish_1"},
		{domain.ActivityLeisure, "leisure_1"},
	}

	for _, tt := range tests {
		t.Run(string(tt.activity), func(t *testing.T) {
			created, err := sim.CreateSession(context.Background(), domain.SessionSetup{
				Participants: domain.ParticipantsSingle,
				Activity:     tt.activity,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, created.InitialScenario.ID)
			assert.Regexp(t, `^game_\d+_[0-9a-f]{9}$`, created.ID)
		})
	}
}

func TestCreateSession_UniqueIDs(t *testing.T) {
	sim := NewSimulator(nil, 0)
	setup := domain.SessionSetup{Participants: domain.ParticipantsGroup, Activity: domain.ActivitySwimming}

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		created, err := sim.CreateSession(context.Background(), setup)
		require.NoError(t, err)
		assert.False(t, seen[created.ID], "duplicate id %s", created.ID)
		seen[created.ID] = true
	}
}

func TestCreateSession_RejectsInvalidSetup(t *testing.T) {
	sim := NewSimulator(nil, 0)

	_, err := sim.CreateSession(context.Background(), domain.SessionSetup{Participants: "crowd", Activity: domain.ActivityFishing})
	assert.ErrorIs(t, err, domain.ErrInvalidSetup)
}

func TestCreateSession_ReturnsCopyOfCatalog(t *testing.T) {
	sim := NewSimulator(nil, 0)
	setup := domain.SessionSetup{Participants: domain.ParticipantsSingle, Activity: domain.ActivityFishing}

	created, err := sim.CreateSession(context.Background(), setup)
	require.NoError(t, err)
	created.InitialScenario.Choices[0].Text = "mutated"

	again, err := sim.CreateSession(context.Background(), setup)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again.InitialScenario.Choices[0].Text)
}

func TestResolveChoice_AdvancesThroughFlattenedCatalog(t *testing.T) {
	sim := NewSimulator(nil, 0)
	ctx := context.Background()

	out, err := sim.ResolveChoice(ctx, "g", "fish_1_b")
	require.NoError(t, err)
	assert.False(t, out.IsComplete)
	require.NotNil(t, out.NextScenario)
	assert.Equal(t, "fish_2", out.NextScenario.ID)
	assert.Equal(t, ConsequenceExcellent, out.ImmediateConsequence)
	assert.Equal(t, "Perfect preparation. A life jacket is essential safety gear.", out.Feedback)

	// The last swimming scenario is followed by the first fishing one
	out, err = sim.ResolveChoice(ctx, "g", "swim_2_a")
	require.NoError(t, err)
	require.NotNil(t, out.NextScenario)
	assert.Equal(t, "fish_1", out.NextScenario.ID)

	out, err = sim.ResolveChoice(ctx, "g", "fish_2_c")
	require.NoError(t, err)
	require.NotNil(t, out.NextScenario)
	assert.Equal(t, "leisure_1", out.NextScenario.ID)
}

func TestResolveChoice_FinalScenarioCompletes(t *testing.T) {
	sim := NewSimulator(nil, 0)

	out, err := sim.ResolveChoice(context.Background(), "g", "leisure_1_b")

	require.NoError(t, err)
	assert.True(t, out.IsComplete)
	assert.Nil(t, out.NextScenario)
}

func TestResolveChoice_UnknownChoiceDegradesToCompletion(t *testing.T) {
	sim := NewSimulator(nil, 0)

	out, err := sim.ResolveChoice(context.Background(), "g", "does_not_exist")

	require.NoError(t, err)
	assert.True(t, out.IsComplete)
	assert.Nil(t, out.NextScenario)
	assert.Equal(t, choiceNotFoundFeedback, out.Feedback)
}

func TestResolveChoice_DefaultFeedback(t *testing.T) {
	catalog := NewCatalog(map[domain.Activity][]domain.Scenario{
		domain.ActivityLeisure: {{ID: "only", Choices: []domain.Choice{{ID: "only_a", SafetyRating: 3}}}},
	})
	sim := NewSimulator(catalog, 0)

	out, err := sim.ResolveChoice(context.Background(), "g", "only_a")

	require.NoError(t, err)
	assert.Equal(t, defaultFeedback, out.Feedback)
	assert.Equal(t, ConsequenceMiddling, out.ImmediateConsequence)
}

func TestConsequenceFor_Tiers(t *testing.T) {
	assert.Equal(t, ConsequenceExcellent, ConsequenceFor(5))
	assert.Equal(t, ConsequenceExcellent, ConsequenceFor(6))
	assert.Equal(t, ConsequenceGood, ConsequenceFor(4))
	assert.Equal(t, ConsequenceMiddling, ConsequenceFor(3))
	assert.Equal(t, ConsequenceRisky, ConsequenceFor(2))
	assert.Equal(t, ConsequenceDangerous, ConsequenceFor(1))
	assert.Equal(t, ConsequenceDangerous, ConsequenceFor(0))
}

func TestGetAnalysis_ComputedFromHistory(t *testing.T) {
	sim := NewSimulator(nil, 0)
	session := domain.Session{
		ID:          "g",
		ScenarioLog: []domain.Scenario{fishingScenarios[0]},
		ChoiceHistory: []domain.RecordedChoice{
			{ScenarioID: "fish_1", ChoiceID: "fish_1_b", SafetyRating: 5, SelectedAt: time.Now()},
		},
	}

	report, err := sim.GetAnalysis(context.Background(), session)

	require.NoError(t, err)
	require.NotNil(t, report.TotalScore)
	require.NotNil(t, report.MaxScore)
	require.NotNil(t, report.Grade)
	assert.Equal(t, 5, *report.TotalScore)
	assert.Equal(t, 5, *report.MaxScore)
	assert.Equal(t, domain.GradeA, *report.Grade)
}

func TestLatency_RespectsContext(t *testing.T) {
	sim := NewSimulator(nil, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.ResolveChoice(ctx, "g", "fish_1_b")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCatalog_FlattenedOrder(t *testing.T) {
	ids := make([]string, 0)
	for _, sc := range DefaultCatalog().Flattened() {
		ids = append(ids, sc.ID)
	}
	assert.Equal(t, []string{"swim_1", "swim_2", "fish_1", "fish_2", "leisure_1"}, ids)
}
