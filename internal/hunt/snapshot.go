package hunt

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Snapshot is the storable form of a Session.
type Snapshot struct {
	ContentVersion       string `json:"contentVersion"`
	Started              bool   `json:"started"`
	CurrentLocationIndex int    `json:"currentLocationIndex"`
	LocationUnlocked     bool   `json:"locationUnlocked"`
	CompletedChallenges  []int  `json:"completedChallenges"`
	RiddleSolved         bool   `json:"riddleSolved"`
	NextLocationRevealed bool   `json:"nextLocationRevealed"`
	GameCompleted        bool   `json:"gameCompleted"`
	RevealedMap          Grid   `json:"revealedMap"`
	Input                string `json:"input,omitempty"`
	Notice               Notice `json:"notice"`
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ContentVersion:       s.content.Version,
		Started:              s.started,
		CurrentLocationIndex: s.index,
		LocationUnlocked:     s.unlocked,
		CompletedChallenges:  s.CompletedChallenges(),
		RiddleSolved:         s.riddleSolved,
		NextLocationRevealed: s.nextRevealed,
		GameCompleted:        s.gameCompleted,
		RevealedMap:          s.grid,
		Input:                s.input,
		Notice:               s.notice,
	}
}

// Restore rebuilds a session from snap against the content it was started
// with.
func Restore(c *Content, snap Snapshot, opts ...Option) (*Session, error) {
	if snap.ContentVersion != c.Version {
		return nil, fmt.Errorf("snapshot content %q does not match %q", snap.ContentVersion, c.Version)
	}
	if snap.CurrentLocationIndex < 0 || snap.CurrentLocationIndex > c.Last() {
		return nil, fmt.Errorf("location index %d out of range", snap.CurrentLocationIndex)
	}
	if snap.RiddleSolved != snap.NextLocationRevealed {
		return nil, errors.New("riddle solved and next location revealed disagree")
	}
	if !snap.Started && (snap.CurrentLocationIndex != 0 || snap.LocationUnlocked) {
		return nil, errors.New("session not started but has progress")
	}
	if !snap.LocationUnlocked && len(snap.CompletedChallenges) > 0 {
		return nil, errors.New("challenges completed at a locked location")
	}
	if snap.GameCompleted && snap.CurrentLocationIndex != c.Last() {
		return nil, errors.New("game completed before the final location")
	}

	s := NewSession(c, opts...)
	s.started = snap.Started
	s.index = snap.CurrentLocationIndex
	s.unlocked = snap.LocationUnlocked
	s.riddleSolved = snap.RiddleSolved
	s.nextRevealed = snap.NextLocationRevealed
	s.gameCompleted = snap.GameCompleted
	s.grid = snap.RevealedMap
	s.input = snap.Input
	s.notice = snap.Notice

	n := len(s.Location().Challenges)
	s.completed = mapset.New[int]()
	for _, i := range snap.CompletedChallenges {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("completed challenge %d out of range", i)
		}
		s.completed.Put(i)
	}
	if (snap.RiddleSolved || snap.GameCompleted) && s.completed.Size() < n {
		return nil, errors.New("location finished with challenges outstanding")
	}
	return s, nil
}
