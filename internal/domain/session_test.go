package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSetupValues(t *testing.T) {
	p, err := ParseParticipants(" Group ")
	require.NoError(t, err)
	assert.Equal(t, ParticipantsGroup, p)

	a, err := ParseActivity("fishing")
	require.NoError(t, err)
	assert.Equal(t, ActivityFishing, a)

	_, err = ParseParticipants("crowd")
	assert.True(t, errors.Is(err, ErrInvalidSetup))
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = ParseActivity("surfing")
	assert.True(t, errors.Is(err, ErrInvalidSetup))
}

func TestSession_ValidateAcceptsSettledSessions(t *testing.T) {
	s := finishedSession()
	require.NoError(t, s.Validate())

	playing := finishedSession()
	playing.Phase = PhasePlaying
	playing.ChoiceHistory = playing.ChoiceHistory[:1]
	require.NoError(t, playing.Validate())
}

func TestSession_ValidateRejectsBrokenInvariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Session)
	}{
		{"missing id", func(s *Session) { s.ID = "" }},
		{"bad setup", func(s *Session) { s.Setup.Activity = "surfing" }},
		{"no scenarios", func(s *Session) { s.ScenarioLog = nil }},
		{"duplicate scenario", func(s *Session) { s.ScenarioLog[1].ID = "s1"; s.ChoiceHistory[1].ScenarioID = "s1" }},
		{"index behind log", func(s *Session) { s.CurrentIndex = 0 }},
		{"playing with too many choices", func(s *Session) { s.Phase = PhasePlaying }},
		{"analysis missing a choice", func(s *Session) { s.ChoiceHistory = s.ChoiceHistory[:1] }},
		{"mismatched scenario", func(s *Session) { s.ChoiceHistory[0].ScenarioID = "s2" }},
		{"setup phase", func(s *Session) { s.Phase = PhaseSetup }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := finishedSession()
			tt.mutate(s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestSession_CloneIsDeep(t *testing.T) {
	s := finishedSession()
	c := s.Clone()

	c.ScenarioLog[0].Choices[0].Text = "changed"
	c.ChoiceHistory[0].ChoiceID = "changed"

	assert.Equal(t, "Stand at the edge", s.ScenarioLog[0].Choices[0].Text)
	assert.Equal(t, "s1_a", s.ChoiceHistory[0].ChoiceID)
	assert.Nil(t, (*Session)(nil).Clone())
}

func TestSession_ActiveScenarioAndSummary(t *testing.T) {
	s := finishedSession()

	active, ok := s.ActiveScenario()
	require.True(t, ok)
	assert.Equal(t, "s2", active.ID)

	sum := s.Summary()
	assert.Equal(t, "game_1", sum.ID)
	assert.Equal(t, 2, sum.ScenarioCount)
	assert.Equal(t, 2, sum.ChoiceCount)
	assert.Equal(t, PhaseAnalysis, sum.Phase)

	_, ok = (&Session{}).ActiveScenario()
	assert.False(t, ok)
}

func TestProviderError_Wrapping(t *testing.T) {
	err := NewProviderError("resolve choice", errors.New("connection refused"))
	assert.Equal(t, "resolve choice: connection refused", err.Error())

	again := NewProviderError("select choice", err)
	assert.Equal(t, "select choice: connection refused", again.Error())

	var pe *ProviderError
	assert.True(t, errors.As(error(again), &pe))
}
