package simulator

import "tideline/internal/domain"

// Background references understood by the presentation layer
const (
	BackgroundBeach   = "beach"
	BackgroundBoat    = "boat"
	BackgroundFishing = "fishing"
	BackgroundLeisure = "leisure"
	BackgroundOcean   = "ocean"
)

var swimmingScenarios = []domain.Scenario{
	{
		ID:            "swim_1",
		Title:         "Arriving at the beach",
		Description:   "You arrive at the beach with your family. The waves are high and a strong wind is blowing. What do you do?",
		BackgroundRef: BackgroundBeach,
		ContextNote:   "Peak summer season, 2 PM, strong south-westerly wind",
		Choices: []domain.Choice{
			{ID: "swim_1_a", Text: "The waves look fun, so head straight into the water", SafetyRating: 2,
				Explanation: "High waves can be dangerous. Check conditions first."},
			{ID: "swim_1_b", Text: "Ask the beach lifeguard about sea conditions", SafetyRating: 5,
				Explanation: "Excellent choice. Asking a professional is the safest option."},
			{ID: "swim_1_c", Text: "Wait on the beach until the waves calm down", SafetyRating: 4,
				Explanation: "A careful call. Observing the situation is a good approach."},
		},
	},
	{
		ID:            "swim_2",
		Title:         "Trouble in the water",
		Description:   "While you are in the water the waves suddenly grow. A child further out has been swept by a wave and is panicking.",
		BackgroundRef: BackgroundOcean,
		ContextNote:   "Water depth 1.5 m, waves building, child about 20 m away",
		Choices: []domain.Choice{
			{ID: "swim_2_a", Text: "Swim out to the child right away", SafetyRating: 2,
				Explanation: "A direct rescue is risky. Rescue equipment or a professional is needed."},
			{ID: "swim_2_b", Text: "Alert the lifeguard immediately and ask for a rescue", SafetyRating: 5,
				Explanation: "A perfect response. Trained rescuers are the safest help."},
			{ID: "swim_2_c", Text: "Shout to the child to stay calm and call nearby people for help", SafetyRating: 4,
				Explanation: "Good judgement. Working together makes a safer rescue possible."},
		},
	},
}

var fishingScenarios = []domain.Scenario{
	{
		ID:            "fish_1",
		Title:         "Choosing a fishing spot",
		Description:   "You reach the breakwater for some sea fishing. Waves are washing over it and the rocks look slippery.",
		BackgroundRef: BackgroundFishing,
		ContextNote:   "11 PM, high tide, wet rocks",
		Choices: []domain.Choice{
			{ID: "fish_1_a", Text: "The waves look promising, so fish from the very end", SafetyRating: 1,
				Explanation: "Very dangerous. The end of a breakwater is where waves sweep people away."},
			{ID: "fish_1_b", Text: "Find a safe spot and fish wearing a life jacket", SafetyRating: 5,
				Explanation: "Perfect preparation. A life jacket is essential safety gear."},
			{ID: "fish_1_c", Text: "Wait in the car until the waves die down", SafetyRating: 4,
				Explanation: "A safe choice. Waiting for conditions to improve is wise."},
		},
	},
	{
		ID:            "fish_2",
		Title:         "Sudden change in the weather",
		Description:   "While fishing, the wind picks up and the waves grow. Your weather app shows a typhoon approaching.",
		BackgroundRef: BackgroundBoat,
		ContextNote:   "4 AM, typhoon warning, wind 15 m/s",
		Choices: []domain.Choice{
			{ID: "fish_2_a", Text: "You came all this way, so fish a little longer before leaving", SafetyRating: 1,
				Explanation: "A very dangerous decision. Evacuate immediately when a typhoon approaches."},
			{ID: "fish_2_b", Text: "Stop fishing at once and move to safety", SafetyRating: 5,
				Explanation: "The right call. Nothing matters more than your life."},
			{ID: "fish_2_c", Text: "Move to the sheltered inner side of the breakwater", SafetyRating: 3,
				Explanation: "Partly safer, but a typhoon calls for full evacuation."},
		},
	},
}

var leisureScenarios = []domain.Scenario{
	{
		ID:            "leisure_1",
		Title:         "Trying water-skiing",
		Description:   "You are about to try water-skiing. The instructor is giving a quick safety briefing and seems to be in a hurry.",
		BackgroundRef: BackgroundLeisure,
		ContextNote:   "3 PM, wind 5 m/s, waves 1 m",
		Choices: []domain.Choice{
			{ID: "leisure_1_a", Text: "Half-listen and start as soon as possible", SafetyRating: 1,
				Explanation: "Very dangerous. Skipping the safety briefing greatly raises the risk of an accident."},
			{ID: "leisure_1_b", Text: "Ask detailed questions about anything unclear", SafetyRating: 5,
				Explanation: "The right approach. Understand safety fully before you start."},
			{ID: "leisure_1_c", Text: "Watch how others do it first", SafetyRating: 4,
				Explanation: "A good approach. Learning by observation is part of safety training."},
		},
	},
}

// Catalog maps each activity to its ordered scenarios
type Catalog struct {
	byActivity map[domain.Activity][]domain.Scenario
	flat       []domain.Scenario
}

// DefaultCatalog returns the built-in marine safety catalog
func DefaultCatalog() *Catalog {
	return NewCatalog(map[domain.Activity][]domain.Scenario{
		domain.ActivitySwimming: swimmingScenarios,
		domain.ActivityFishing:  fishingScenarios,
		domain.ActivityLeisure:  leisureScenarios,
	})
}

// NewCatalog builds a catalog. The flattened order follows
// domain.AllActivities so lookups are deterministic.
func NewCatalog(byActivity map[domain.Activity][]domain.Scenario) *Catalog {
	c := &Catalog{byActivity: byActivity}
	for _, a := range domain.AllActivities {
		c.flat = append(c.flat, byActivity[a]...)
	}
	return c
}

// ForActivity returns the ordered scenarios of one activity
func (c *Catalog) ForActivity(a domain.Activity) []domain.Scenario {
	return c.byActivity[a]
}

// Flattened returns every scenario across all activities in catalog order
func (c *Catalog) Flattened() []domain.Scenario {
	return c.flat
}

// FindByChoice returns the position in the flattened catalog of the first
// scenario offering choiceID, along with that choice.
func (c *Catalog) FindByChoice(choiceID string) (int, domain.Choice, bool) {
	for i, sc := range c.flat {
		if choice, ok := sc.FindChoice(choiceID); ok {
			return i, choice, true
		}
	}
	return -1, domain.Choice{}, false
}
