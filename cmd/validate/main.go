// Command validate checks treasure hunt content files before they are
// published. It reports every authoring defect, plays the hunt through
// with the authored answers and prints the final map.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/playperu/treasurehunt/internal/content"
	"github.com/playperu/treasurehunt/internal/hunt"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: validate <content.yaml>...")
	}

	var failed []string
	for _, path := range args {
		if err := validateFile(path, stdout); err != nil {
			fmt.Fprintf(stdout, "%s: FAIL\n%v\n\n", path, err)
			failed = append(failed, path)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files invalid", len(failed), len(args))
	}
	return nil
}

func validateFile(path string, stdout io.Writer) error {
	c, err := content.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: ok (version %s, %d locations)\n", path, c.Version, len(c.Locations))
	for _, w := range lint(c) {
		fmt.Fprintf(stdout, "  warning: %s\n", w)
	}

	m, err := playthrough(c)
	if err != nil {
		return fmt.Errorf("playthrough: %w", err)
	}
	fmt.Fprintf(stdout, "\n%s\n", m.String())
	return nil
}

// lint finds things that are allowed but probably unintended.
func lint(c *hunt.Content) []string {
	var warnings []string
	for _, loc := range c.Locations {
		r := loc.FinalRiddle
		if r == nil || r.LetterBank == "" {
			continue
		}
		if missing := missingLetters(r.Answer, r.LetterBank); missing != "" {
			warnings = append(warnings, fmt.Sprintf("%s: letter bank cannot spell the riddle answer, missing %q", loc.ID, missing))
		}
	}
	for i, loc := range c.Locations {
		if i < c.Last() && strings.TrimSpace(loc.NextLocation) == "" {
			warnings = append(warnings, fmt.Sprintf("%s: no nextLocation text for the revealed destination", loc.ID))
		}
		for j, ch := range loc.Challenges {
			if strings.TrimSpace(ch.Hint) == "" {
				warnings = append(warnings, fmt.Sprintf("%s: challenge %d has no hint", loc.ID, j))
			}
		}
	}
	return warnings
}

// missingLetters returns the letters of answer, ignoring spaces, that the
// bank does not hold enough tiles for.
func missingLetters(answer, bank string) string {
	fold := cases.Fold()
	tiles := make(map[rune]int)
	for _, r := range fold.String(bank) {
		tiles[r]++
	}
	var missing strings.Builder
	for _, r := range fold.String(answer) {
		if unicode.IsSpace(r) {
			continue
		}
		if tiles[r] == 0 {
			missing.WriteRune(r)
			continue
		}
		tiles[r]--
	}
	return missing.String()
}

// playthrough runs the hunt to completion with the authored answers.
func playthrough(c *hunt.Content) (hunt.Grid, error) {
	s := hunt.NewSession(c, hunt.WithRand(hunt.NewRand(1)))
	if _, err := s.Start(); err != nil {
		return hunt.Grid{}, err
	}
	for {
		loc := s.Location()
		if _, err := s.SubmitPasscode(loc.Passcode); err != nil {
			return hunt.Grid{}, fmt.Errorf("%s: passcode: %w", loc.ID, err)
		}
		for i, ch := range loc.Challenges {
			if _, err := s.SubmitChallengeAnswer(i, ch.Answer); err != nil {
				return hunt.Grid{}, fmt.Errorf("%s: challenge %d: %w", loc.ID, i, err)
			}
		}
		if s.Index() == c.Last() {
			break
		}
		if _, err := s.SubmitRiddleAnswer(loc.FinalRiddle.Answer); err != nil {
			return hunt.Grid{}, fmt.Errorf("%s: riddle: %w", loc.ID, err)
		}
		if _, err := s.Advance(); err != nil {
			return hunt.Grid{}, fmt.Errorf("%s: advance: %w", loc.ID, err)
		}
	}
	if _, err := s.CompleteFinalAction(); err != nil {
		return hunt.Grid{}, fmt.Errorf("final action: %w", err)
	}
	return s.Map(), nil
}
