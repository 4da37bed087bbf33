package server

import (
	"time"

	"github.com/playperu/treasurehunt/internal/hunt"
)

// Responses never carry passcodes or answers; they only expose what the
// player is allowed to see in the current phase.

type ContentResponse struct {
	Version       string            `json:"version"`
	Title         string            `json:"title"`
	Introduction  hunt.Introduction `json:"introduction"`
	LocationCount int               `json:"locationCount"`
}

type ChallengeView struct {
	Index     int                `json:"index"`
	Type      hunt.ChallengeType `json:"type"`
	Prompt    string             `json:"prompt"`
	Completed bool               `json:"completed"`
}

type RiddleView struct {
	Prompt     string   `json:"prompt"`
	LetterBank []string `json:"letterBank"`
}

type LocationView struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Challenges   []ChallengeView `json:"challenges,omitempty"`
	Riddle       *RiddleView     `json:"riddle,omitempty"`
	NextLocation string          `json:"nextLocation,omitempty"`
	FinalMessage string          `json:"finalMessage,omitempty"`
}

type NoticeView struct {
	Text      string          `json:"text"`
	Kind      hunt.NoticeKind `json:"kind"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

type SessionResponse struct {
	ID                   string        `json:"id"`
	ContentVersion       string        `json:"contentVersion"`
	Phase                hunt.Phase    `json:"phase"`
	Started              bool          `json:"started"`
	Progress             string        `json:"progress"`
	CurrentLocationIndex int           `json:"currentLocationIndex"`
	LocationCount        int           `json:"locationCount"`
	LocationUnlocked     bool          `json:"locationUnlocked"`
	CompletedChallenges  []int         `json:"completedChallenges"`
	RiddleSolved         bool          `json:"riddleSolved"`
	NextLocationRevealed bool          `json:"nextLocationRevealed"`
	GameCompleted        bool          `json:"gameCompleted"`
	Location             *LocationView `json:"location,omitempty"`
	Map                  *hunt.Grid    `json:"map,omitempty"`
	Input                string        `json:"input"`
	Notice               *NoticeView   `json:"notice,omitempty"`
}

func newContentResponse(c *hunt.Content) ContentResponse {
	return ContentResponse{
		Version:       c.Version,
		Title:         c.Title,
		Introduction:  c.Introduction,
		LocationCount: len(c.Locations),
	}
}

func newSessionResponse(id string, s *hunt.Session) SessionResponse {
	resp := SessionResponse{
		ID:                   id,
		ContentVersion:       s.Content().Version,
		Phase:                s.Phase(),
		Started:              s.Started(),
		Progress:             s.Progress(),
		CurrentLocationIndex: s.Index(),
		LocationCount:        len(s.Content().Locations),
		LocationUnlocked:     s.Unlocked(),
		CompletedChallenges:  s.CompletedChallenges(),
		RiddleSolved:         s.RiddleSolved(),
		NextLocationRevealed: s.NextLocationRevealed(),
		GameCompleted:        s.GameCompleted(),
		Input:                s.Input(),
	}
	if n, ok := s.Notice(); ok {
		resp.Notice = &NoticeView{Text: n.Text, Kind: n.Kind, ExpiresAt: n.ExpiresAt(s.NoticeTTL())}
	}
	if !s.Started() {
		return resp
	}

	m := s.Map()
	resp.Map = &m
	resp.Location = newLocationView(s)
	return resp
}

func newLocationView(s *hunt.Session) *LocationView {
	loc := s.Location()
	v := &LocationView{ID: loc.ID, Name: loc.Name, Description: loc.Description}
	if !s.Unlocked() {
		return v
	}

	v.Challenges = make([]ChallengeView, len(loc.Challenges))
	for i, ch := range loc.Challenges {
		v.Challenges[i] = ChallengeView{Index: i, Type: ch.Type, Prompt: ch.Prompt, Completed: s.ChallengeCompleted(i)}
	}

	switch s.Phase() {
	case hunt.PhaseRiddlePending, hunt.PhaseAdvanceable:
		v.Riddle = &RiddleView{Prompt: loc.FinalRiddle.Prompt, LetterBank: loc.FinalRiddle.Letters()}
	case hunt.PhaseFinalAction, hunt.PhaseCompleted:
		v.FinalMessage = loc.FinalMessage
	}
	if s.NextLocationRevealed() {
		v.NextLocation = loc.NextLocation
	}
	return v
}
