package hunt

type EventType string

const (
	EventStarted            EventType = "started"
	EventLocationUnlocked   EventType = "location_unlocked"
	EventChallengeCompleted EventType = "challenge_completed"
	EventRiddleSolved       EventType = "riddle_solved"
	EventAdvanced           EventType = "advanced"
	EventGameCompleted      EventType = "game_completed"
)

// Event describes a state change caused by a transition. A transition that
// changes nothing returns the zero Event.
type Event struct {
	Type      EventType `json:"type"`
	Location  int       `json:"location"`
	Challenge *int      `json:"challenge,omitempty"`
	Phase     Phase     `json:"phase"`
}

// Changed reports whether the transition did anything.
func (e Event) Changed() bool { return e.Type != "" }
