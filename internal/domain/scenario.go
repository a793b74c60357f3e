package domain

const (
	MinSafetyRating = 1
	MaxSafetyRating = 5
)

// Choice is one selectable answer of a scenario.
// SafetyRating ranges from 1 (dangerous) to 5 (safest).
type Choice struct {
	Explanation  string
	ID           string
	SafetyRating int
	Text         string
}

// Scenario is a single narrative decision point issued by the provider
type Scenario struct {
	BackgroundRef string
	Choices       []Choice
	ContextNote   string
	Description   string
	ID            string
	Title         string
}

// FindChoice returns the choice with the given id, if the scenario offers it
func (s Scenario) FindChoice(choiceID string) (Choice, bool) {
	for _, c := range s.Choices {
		if c.ID == choiceID {
			return c, true
		}
	}
	return Choice{}, false
}

// OptimalChoice returns the highest rated choice. Ties keep the first one.
func (s Scenario) OptimalChoice() (Choice, bool) {
	if len(s.Choices) == 0 {
		return Choice{}, false
	}
	best := s.Choices[0]
	for _, c := range s.Choices[1:] {
		if c.SafetyRating > best.SafetyRating {
			best = c
		}
	}
	return best, true
}
