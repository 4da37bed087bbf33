// Package hunt holds the treasure hunt core: the content table, the grid map
// and the progression state machine. Nothing in here knows about HTTP or
// storage.
package hunt

import (
	"errors"
	"fmt"
	"strings"
)

type ChallengeType string

const (
	ChallengeQuestion   ChallengeType = "question"
	ChallengeTask       ChallengeType = "task"
	ChallengeCompletion ChallengeType = "completion"
)

// NeedsAnswer reports whether the challenge is completed by matching text
// rather than by a plain confirmation.
func (t ChallengeType) NeedsAnswer() bool {
	return t == ChallengeQuestion || t == ChallengeTask
}

type Challenge struct {
	Type   ChallengeType `yaml:"type" json:"type"`
	Prompt string        `yaml:"prompt" json:"prompt"`
	Answer string        `yaml:"answer" json:"answer"`
	Hint   string        `yaml:"hint" json:"hint"`
}

type Riddle struct {
	Prompt     string `yaml:"prompt" json:"prompt"`
	Answer     string `yaml:"answer" json:"answer"`
	Hint       string `yaml:"hint" json:"hint"`
	LetterBank string `yaml:"letterBank" json:"letterBank"`
}

// Letters returns the letter bank as individual tiles.
func (r *Riddle) Letters() []string {
	tiles := make([]string, 0, len(r.LetterBank))
	for _, c := range r.LetterBank {
		tiles = append(tiles, string(c))
	}
	return tiles
}

// Marker pins a location to its fixed cell on the grid map.
type Marker struct {
	X        int  `yaml:"x" json:"x"`
	Y        int  `yaml:"y" json:"y"`
	Landmark Tile `yaml:"landmark" json:"landmark"`
}

func (m Marker) Point() Point { return Point{X: m.X, Y: m.Y} }

type Location struct {
	ID           string      `yaml:"id" json:"id"`
	Name         string      `yaml:"name" json:"name"`
	Description  string      `yaml:"description" json:"description"`
	Passcode     string      `yaml:"passcode" json:"passcode"`
	Challenges   []Challenge `yaml:"challenges" json:"challenges"`
	FinalRiddle  *Riddle     `yaml:"finalRiddle,omitempty" json:"finalRiddle,omitempty"`
	FinalMessage string      `yaml:"finalMessage,omitempty" json:"finalMessage,omitempty"`
	NextLocation string      `yaml:"nextLocation,omitempty" json:"nextLocation,omitempty"`
	Map          Marker      `yaml:"map" json:"map"`
}

type Introduction struct {
	Title        string `yaml:"title" json:"title"`
	Story        string `yaml:"story" json:"story"`
	Instructions string `yaml:"instructions" json:"instructions"`
}

// Content is the static, read-only table a session plays through. Version
// is derived from the source bytes by the loader; an authored value is
// overwritten.
type Content struct {
	Title        string       `yaml:"title" json:"title"`
	Introduction Introduction `yaml:"introduction" json:"introduction"`
	Locations    []Location   `yaml:"locations" json:"locations"`

	Version string `yaml:"version,omitempty" json:"version"`
}

// Last returns the index of the terminal location.
func (c *Content) Last() int { return len(c.Locations) - 1 }

// Validate checks the table for authoring defects. Every defect found is
// reported, joined into one error.
func (c *Content) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if len(c.Locations) == 0 {
		return errors.New("content has no locations")
	}

	ids := make(map[string]bool, len(c.Locations))
	cells := make(map[Point]string, len(c.Locations))
	landmarks := make(map[Tile]string, len(c.Locations))

	for i, loc := range c.Locations {
		where := fmt.Sprintf("location %d (%s)", i, loc.ID)
		terminal := i == c.Last()

		if strings.TrimSpace(loc.ID) == "" {
			fail("location %d: id is required", i)
		} else if ids[loc.ID] {
			fail("%s: duplicate id", where)
		}
		ids[loc.ID] = true

		if normalize(loc.Passcode) == "" {
			fail("%s: passcode is required", where)
		}

		for j, ch := range loc.Challenges {
			switch ch.Type {
			case ChallengeQuestion, ChallengeTask:
				if normalize(ch.Answer) == "" {
					fail("%s: challenge %d: answer is required for %s", where, j, ch.Type)
				}
			case ChallengeCompletion:
			default:
				fail("%s: challenge %d: unknown type %q", where, j, ch.Type)
			}
		}

		switch {
		case terminal && loc.FinalRiddle != nil:
			fail("%s: terminal location must not have a finalRiddle", where)
		case terminal && strings.TrimSpace(loc.FinalMessage) == "":
			fail("%s: terminal location needs a finalMessage", where)
		case !terminal && loc.FinalRiddle == nil:
			fail("%s: finalRiddle is required", where)
		case !terminal && normalize(loc.FinalRiddle.Answer) == "":
			fail("%s: finalRiddle answer is required", where)
		}

		p := loc.Map.Point()
		if !p.Interior() {
			fail("%s: map cell %v is not inside the border", where, p)
		} else if other, ok := cells[p]; ok {
			fail("%s: map cell %v already used by %s", where, p, other)
		}
		cells[p] = loc.ID

		lm := loc.Map.Landmark
		switch {
		case lm == "":
			fail("%s: map landmark is required", where)
		case lm.Terrain():
			fail("%s: map landmark %q is a terrain tag", where, lm)
		default:
			if other, ok := landmarks[lm]; ok {
				fail("%s: landmark %q already used by %s", where, lm, other)
			}
			landmarks[lm] = loc.ID
		}
	}

	return errors.Join(errs...)
}
