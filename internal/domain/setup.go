package domain

import (
	"fmt"
	"strings"
)

// Participants is the size of the group taking part in the activity
type Participants string

const (
	ParticipantsDouble Participants = "double"
	ParticipantsGroup  Participants = "group"
	ParticipantsSingle Participants = "single"
)

// Activity selects the scenario catalog a session plays through
type Activity string

const (
	ActivityFishing  Activity = "fishing"
	ActivityLeisure  Activity = "leisure"
	ActivitySwimming Activity = "swimming"
)

// AllParticipants lists the accepted participant values in display order
var AllParticipants = []Participants{ParticipantsSingle, ParticipantsDouble, ParticipantsGroup}

// AllActivities lists the accepted activities in catalog order
var AllActivities = []Activity{ActivitySwimming, ActivityFishing, ActivityLeisure}

// SessionSetup holds the parameters chosen before a session is created.
// It never changes once the provider has created the session.
type SessionSetup struct {
	Activity     Activity
	Participants Participants
}

// ParseParticipants converts user input into a Participants value
func ParseParticipants(s string) (Participants, error) {
	p := Participants(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllParticipants {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown participants %q", ErrInvalidSetup, s)
}

// ParseActivity converts user input into an Activity value
func ParseActivity(s string) (Activity, error) {
	a := Activity(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllActivities {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: unknown activity %q", ErrInvalidSetup, s)
}

// Validate checks both fields hold known values
func (s SessionSetup) Validate() error {
	if _, err := ParseParticipants(string(s.Participants)); err != nil {
		return err
	}
	if _, err := ParseActivity(string(s.Activity)); err != nil {
		return err
	}
	return nil
}
