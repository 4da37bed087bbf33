package hunt

import (
	"fmt"
	"slices"
	"time"

	"github.com/zyedidia/generic/mapset"
)

// Phase is the position of a session within its current location.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	// PhaseLocked waits for the location passcode.
	PhaseLocked Phase = "locked"
	// PhaseUnlocked has challenges left to complete.
	PhaseUnlocked Phase = "unlocked"
	// PhaseRiddlePending has every challenge done and the riddle unsolved.
	PhaseRiddlePending Phase = "riddle_pending"
	// PhaseAdvanceable has the riddle solved and the next location revealed.
	PhaseAdvanceable Phase = "advanceable"
	// PhaseFinalAction is the terminal location with every challenge done.
	PhaseFinalAction Phase = "final_action"
	PhaseCompleted   Phase = "completed"
)

// Session is one player's run through a content table. It is not safe for
// concurrent use; callers serialise access per session.
type Session struct {
	content   *Content
	rng       Rand
	now       func() time.Time
	noticeTTL time.Duration

	started       bool
	index         int
	unlocked      bool
	completed     mapset.Set[int]
	riddleSolved  bool
	nextRevealed  bool
	gameCompleted bool
	grid          Grid
	input         string
	notice        Notice
}

type Option func(*Session)

// WithRand sets the source used for cosmetic map filler.
func WithRand(r Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithClock sets the clock used to stamp and expire notices.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithNoticeTTL overrides DefaultNoticeTTL.
func WithNoticeTTL(d time.Duration) Option {
	return func(s *Session) { s.noticeTTL = d }
}

// NewSession returns a session that has not started yet. c must have passed
// Validate.
func NewSession(c *Content, opts ...Option) *Session {
	s := &Session{
		content:   c,
		rng:       DefaultRand,
		now:       time.Now,
		noticeTTL: DefaultNoticeTTL,
		completed: mapset.New[int](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the hunt and draws the opening map.
//
// Pre: not started. Post: started, map shows the first landmark.
func (s *Session) Start() (Event, error) {
	if s.started {
		return Event{}, ErrAlreadyStarted
	}
	s.started = true
	s.grid = InitialGrid(s.Location().Map, s.rng)
	return s.event(EventStarted, nil), nil
}

// SubmitPasscode unlocks the current location when text matches its
// passcode.
//
// Pre: started, location locked. Post on match: location unlocked, input
// cleared. On mismatch nothing changes and a *MismatchError is returned.
// Resubmitting the passcode of an unlocked location is a no-op; any other
// text there is a phase error, not a mismatch, and posts no notice.
func (s *Session) SubmitPasscode(text string) (Event, error) {
	if err := s.requireActive(); err != nil {
		return Event{}, err
	}
	loc := s.Location()
	if s.unlocked {
		if Matches(text, loc.Passcode) {
			return Event{}, nil
		}
		return Event{}, wrongPhase("location already unlocked")
	}
	if !Matches(text, loc.Passcode) {
		s.post(NoticeError, msgPasscodeBad)
		return Event{}, &MismatchError{Kind: MismatchPasscode}
	}

	s.unlocked = true
	s.input = ""
	s.post(NoticeSuccess, msgPasscodeOK)
	return s.event(EventLocationUnlocked, nil), nil
}

// SubmitChallengeAnswer completes challenge i of the current location.
// Question and task challenges need text to match the answer; completion
// challenges ignore text.
//
// Pre: started, location unlocked, i in range. Post on match: i recorded as
// completed. Completing an already completed challenge is a no-op.
func (s *Session) SubmitChallengeAnswer(i int, text string) (Event, error) {
	if err := s.requireActive(); err != nil {
		return Event{}, err
	}
	if !s.unlocked {
		return Event{}, wrongPhase("location is locked")
	}
	loc := s.Location()
	if i < 0 || i >= len(loc.Challenges) {
		return Event{}, ErrNoSuchChallenge
	}
	if s.completed.Has(i) {
		return Event{}, nil
	}

	ch := loc.Challenges[i]
	if ch.Type.NeedsAnswer() && !Matches(text, ch.Answer) {
		s.post(NoticeError, msgChallengeBad)
		return Event{}, &MismatchError{Kind: MismatchChallenge}
	}

	s.completed.Put(i)
	s.input = ""
	s.post(NoticeSuccess, msgChallengeOK)
	return s.event(EventChallengeCompleted, &i), nil
}

// SubmitRiddleAnswer solves the current location's riddle, revealing the
// next location.
//
// Pre: started, every challenge completed, location has a riddle. Post on
// match: riddle solved and next location revealed together. Resubmitting
// after the riddle is solved is a no-op.
func (s *Session) SubmitRiddleAnswer(text string) (Event, error) {
	if err := s.requireActive(); err != nil {
		return Event{}, err
	}
	riddle := s.Location().FinalRiddle
	if riddle == nil {
		return Event{}, ErrNoRiddle
	}
	if s.riddleSolved {
		return Event{}, nil
	}
	if s.Phase() != PhaseRiddlePending {
		return Event{}, wrongPhase("challenges are not complete")
	}
	if !Matches(text, riddle.Answer) {
		s.post(NoticeError, msgRiddleBad)
		return Event{}, &MismatchError{Kind: MismatchRiddle}
	}

	s.riddleSolved = true
	s.nextRevealed = true
	s.input = ""
	s.post(NoticeSuccess, msgRiddleOK)
	return s.event(EventRiddleSolved, nil), nil
}

// Advance moves to the next location and extends the map toward it.
//
// Pre: started, next location revealed, not at the terminal location.
// Post: index incremented, per-location flags and completed set reset, map
// replaced with the revealed copy. At the terminal location it returns
// ErrNoNextLocation and changes nothing.
func (s *Session) Advance() (Event, error) {
	if err := s.requireActive(); err != nil {
		return Event{}, err
	}
	if s.index >= s.content.Last() {
		return Event{}, ErrNoNextLocation
	}
	if !s.nextRevealed {
		return Event{}, wrongPhase("next location not revealed")
	}

	from := s.Location().Map
	s.index++
	to := s.Location()

	s.grid = RevealForAdvance(s.grid, from, to.Map, s.rng)
	s.unlocked = false
	s.completed = mapset.New[int]()
	s.riddleSolved = false
	s.nextRevealed = false
	s.input = ""
	s.post(NoticeInfo, fmt.Sprintf(msgProceeding, to.Name))
	return s.event(EventAdvanced, nil), nil
}

// CompleteFinalAction finishes the hunt.
//
// Pre: started, at the terminal location with every challenge completed.
// Post: game completed, permanently. Repeating it is a no-op.
func (s *Session) CompleteFinalAction() (Event, error) {
	if !s.started {
		return Event{}, ErrNotStarted
	}
	if s.gameCompleted {
		return Event{}, nil
	}
	if !s.terminal() {
		return Event{}, wrongPhase("not at the final location")
	}
	if s.Phase() != PhaseFinalAction {
		return Event{}, wrongPhase("challenges are not complete")
	}

	s.gameCompleted = true
	s.input = ""
	s.post(NoticeSuccess, msgGameCompleted)
	return s.event(EventGameCompleted, nil), nil
}

// ChallengeHint shows the hint for challenge i.
func (s *Session) ChallengeHint(i int) (string, error) {
	if err := s.requireActive(); err != nil {
		return "", err
	}
	if !s.unlocked {
		return "", wrongPhase("location is locked")
	}
	loc := s.Location()
	if i < 0 || i >= len(loc.Challenges) {
		return "", ErrNoSuchChallenge
	}
	hint := loc.Challenges[i].Hint
	s.post(NoticeHint, hint)
	return hint, nil
}

// RiddleHint shows the hint for the current riddle.
func (s *Session) RiddleHint() (string, error) {
	riddle, err := s.openRiddle()
	if err != nil {
		return "", err
	}
	s.post(NoticeHint, riddle.Hint)
	return riddle.Hint, nil
}

// TapLetter appends tile i of the riddle's letter bank to the input buffer.
func (s *Session) TapLetter(i int) (string, error) {
	riddle, err := s.openRiddle()
	if err != nil {
		return "", err
	}
	letters := riddle.Letters()
	if i < 0 || i >= len(letters) {
		return "", ErrNoSuchLetter
	}
	s.input += letters[i]
	return s.input, nil
}

// SetInput replaces the input buffer.
func (s *Session) SetInput(text string) { s.input = text }

// ClearInput empties the input buffer.
func (s *Session) ClearInput() { s.input = "" }

func (s *Session) openRiddle() (*Riddle, error) {
	if err := s.requireActive(); err != nil {
		return nil, err
	}
	riddle := s.Location().FinalRiddle
	if riddle == nil {
		return nil, ErrNoRiddle
	}
	if p := s.Phase(); p != PhaseRiddlePending && p != PhaseAdvanceable {
		return nil, wrongPhase("challenges are not complete")
	}
	return riddle, nil
}

// Phase derives the current state from the session flags.
func (s *Session) Phase() Phase {
	switch {
	case !s.started:
		return PhaseNotStarted
	case s.gameCompleted:
		return PhaseCompleted
	case !s.unlocked:
		return PhaseLocked
	case s.completed.Size() < len(s.Location().Challenges):
		return PhaseUnlocked
	case s.terminal():
		return PhaseFinalAction
	case s.nextRevealed:
		return PhaseAdvanceable
	default:
		return PhaseRiddlePending
	}
}

func (s *Session) Content() *Content { return s.content }

func (s *Session) Started() bool { return s.started }

// Index is the current location's position in the content table.
func (s *Session) Index() int { return s.index }

// Location returns the current location.
func (s *Session) Location() *Location { return &s.content.Locations[s.index] }

func (s *Session) Unlocked() bool { return s.unlocked }

// CompletedChallenges returns the completed challenge indices in ascending
// order.
func (s *Session) CompletedChallenges() []int {
	out := make([]int, 0, s.completed.Size())
	s.completed.Each(func(i int) { out = append(out, i) })
	slices.Sort(out)
	return out
}

func (s *Session) ChallengeCompleted(i int) bool { return s.completed.Has(i) }

func (s *Session) RiddleSolved() bool { return s.riddleSolved }

func (s *Session) NextLocationRevealed() bool { return s.nextRevealed }

func (s *Session) GameCompleted() bool { return s.gameCompleted }

// Map returns a copy of the revealed grid.
func (s *Session) Map() Grid { return s.grid }

func (s *Session) Input() string { return s.input }

// Notice returns the current notice if it has not been dismissed yet.
func (s *Session) Notice() (Notice, bool) {
	if !s.notice.Active(s.now(), s.noticeTTL) {
		return Notice{}, false
	}
	return s.notice, true
}

// NoticeTTL is how long notices from this session stay visible.
func (s *Session) NoticeTTL() time.Duration { return s.noticeTTL }

// Progress renders the "Location k/N" header.
func (s *Session) Progress() string {
	return fmt.Sprintf("Location %d/%d", s.index+1, len(s.content.Locations))
}

func (s *Session) terminal() bool { return s.index == s.content.Last() }

func (s *Session) requireActive() error {
	if !s.started {
		return ErrNotStarted
	}
	if s.gameCompleted {
		return wrongPhase("hunt is complete")
	}
	return nil
}

func (s *Session) post(kind NoticeKind, text string) {
	s.notice = Notice{Text: text, Kind: kind, PostedAt: s.now()}
}

func (s *Session) event(t EventType, challenge *int) Event {
	return Event{Type: t, Location: s.index, Challenge: challenge, Phase: s.Phase()}
}
