package hunt_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playperu/treasurehunt/internal/content"
	"github.com/playperu/treasurehunt/internal/hunt"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newSession(t *testing.T) (*hunt.Session, *clock) {
	t.Helper()
	c, err := content.Default()
	require.NoError(t, err)
	clk := &clock{t: time.Date(2026, 2, 14, 18, 0, 0, 0, time.UTC)}
	return hunt.NewSession(c, hunt.WithRand(hunt.NewRand(1)), hunt.WithClock(clk.now)), clk
}

// clearLocation plays the current location up to the point of advancing.
func clearLocation(t *testing.T, s *hunt.Session) {
	t.Helper()
	loc := s.Location()

	_, err := s.SubmitPasscode(loc.Passcode)
	require.NoError(t, err)
	for i, ch := range loc.Challenges {
		_, err := s.SubmitChallengeAnswer(i, ch.Answer)
		require.NoError(t, err)
	}
	if loc.FinalRiddle != nil {
		_, err := s.SubmitRiddleAnswer(loc.FinalRiddle.Answer)
		require.NoError(t, err)
	}
}

func TestFirstLocationWalkthrough(t *testing.T) {
	s, _ := newSession(t)
	assert.Equal(t, hunt.PhaseNotStarted, s.Phase())

	_, err := s.SubmitPasscode("home123")
	require.ErrorIs(t, err, hunt.ErrNotStarted)

	ev, err := s.Start()
	require.NoError(t, err)
	assert.Equal(t, hunt.EventStarted, ev.Type)
	assert.Equal(t, hunt.PhaseLocked, s.Phase())
	assert.Equal(t, "Location 1/5", s.Progress())

	_, err = s.Start()
	require.ErrorIs(t, err, hunt.ErrAlreadyStarted)

	ev, err = s.SubmitPasscode("  HOME123 ")
	require.NoError(t, err)
	assert.Equal(t, hunt.EventLocationUnlocked, ev.Type)
	assert.True(t, s.Unlocked())
	assert.Equal(t, hunt.PhaseUnlocked, s.Phase())

	_, err = s.SubmitRiddleAnswer("cafe fixe")
	require.ErrorIs(t, err, hunt.ErrWrongPhase)

	ev, err = s.SubmitChallengeAnswer(1, "ILoveYou")
	require.NoError(t, err)
	require.NotNil(t, ev.Challenge)
	assert.Equal(t, 1, *ev.Challenge)
	assert.Equal(t, []int{1}, s.CompletedChallenges())

	_, err = s.SubmitChallengeAnswer(0, "06/14/2022")
	require.NoError(t, err)
	assert.Equal(t, hunt.PhaseRiddlePending, s.Phase())

	ev, err = s.SubmitRiddleAnswer("Cafe Fixe")
	require.NoError(t, err)
	assert.Equal(t, hunt.EventRiddleSolved, ev.Type)
	assert.True(t, s.RiddleSolved())
	assert.True(t, s.NextLocationRevealed())
	assert.Equal(t, hunt.PhaseAdvanceable, s.Phase())

	before := s.Map()
	ev, err = s.Advance()
	require.NoError(t, err)
	assert.Equal(t, hunt.EventAdvanced, ev.Type)
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, "Location 2/5", s.Progress())
	assert.False(t, s.Unlocked())
	assert.Empty(t, s.CompletedChallenges())
	assert.False(t, s.RiddleSolved())
	assert.False(t, s.NextLocationRevealed())
	assert.Equal(t, hunt.PhaseLocked, s.Phase())

	after := s.Map()
	assert.Equal(t, hunt.Tile("cafe"), after.At(hunt.Point{X: 4, Y: 3}))
	assert.Equal(t, hunt.TilePath, after.At(hunt.Point{X: 3, Y: 5}))
	assert.Equal(t, hunt.TileUnrevealed, before.At(hunt.Point{X: 3, Y: 5}))
}

func TestMismatches(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.Start()
	require.NoError(t, err)

	_, err = s.SubmitPasscode("home1234")
	require.ErrorIs(t, err, hunt.ErrMismatch)
	var mm *hunt.MismatchError
	require.True(t, errors.As(err, &mm))
	assert.Equal(t, hunt.MismatchPasscode, mm.Kind)
	assert.False(t, s.Unlocked())

	n, ok := s.Notice()
	require.True(t, ok)
	assert.Equal(t, hunt.NoticeError, n.Kind)
	assert.Equal(t, "Incorrect passcode. Try again!", n.Text)

	_, err = s.SubmitPasscode("home123")
	require.NoError(t, err)

	_, err = s.SubmitChallengeAnswer(0, "06/15/2022")
	require.True(t, errors.As(err, &mm))
	assert.Equal(t, hunt.MismatchChallenge, mm.Kind)
	assert.Empty(t, s.CompletedChallenges())

	_, err = s.SubmitChallengeAnswer(2, "x")
	require.ErrorIs(t, err, hunt.ErrNoSuchChallenge)
	_, err = s.SubmitChallengeAnswer(-1, "x")
	require.ErrorIs(t, err, hunt.ErrNoSuchChallenge)

	_, err = s.SubmitChallengeAnswer(0, "06/14/2022")
	require.NoError(t, err)
	_, err = s.SubmitChallengeAnswer(1, "iloveyou")
	require.NoError(t, err)

	_, err = s.SubmitRiddleAnswer("cafe fix")
	require.True(t, errors.As(err, &mm))
	assert.Equal(t, hunt.MismatchRiddle, mm.Kind)
	assert.False(t, s.RiddleSolved())
	assert.False(t, s.NextLocationRevealed())
}

func TestRepeatedSubmissionsAreNoOps(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.Start()
	require.NoError(t, err)

	_, err = s.SubmitPasscode("home123")
	require.NoError(t, err)

	ev, err := s.SubmitPasscode("HOME123")
	require.NoError(t, err)
	assert.False(t, ev.Changed())

	_, err = s.SubmitPasscode("vanilla")
	require.ErrorIs(t, err, hunt.ErrWrongPhase)
	assert.NotErrorIs(t, err, hunt.ErrMismatch)
	n, ok := s.Notice()
	require.True(t, ok)
	assert.Equal(t, hunt.NoticeSuccess, n.Kind)

	_, err = s.SubmitChallengeAnswer(0, "06/14/2022")
	require.NoError(t, err)
	ev, err = s.SubmitChallengeAnswer(0, "wrong, but already done")
	require.NoError(t, err)
	assert.False(t, ev.Changed())
	assert.Equal(t, []int{0}, s.CompletedChallenges())

	_, err = s.SubmitChallengeAnswer(1, "iloveyou")
	require.NoError(t, err)
	_, err = s.SubmitRiddleAnswer("cafe fixe")
	require.NoError(t, err)
	ev, err = s.SubmitRiddleAnswer("anything")
	require.NoError(t, err)
	assert.False(t, ev.Changed())
}

func TestAdvanceRequiresRevealedLocation(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.Start()
	require.NoError(t, err)

	_, err = s.Advance()
	require.ErrorIs(t, err, hunt.ErrWrongPhase)
	assert.Equal(t, 0, s.Index())
}

func TestFullHunt(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.Start()
	require.NoError(t, err)

	last := s.Content().Last()
	for s.Index() < last {
		clearLocation(t, s)
		_, err := s.Advance()
		require.NoError(t, err)
	}

	_, err = s.CompleteFinalAction()
	require.ErrorIs(t, err, hunt.ErrWrongPhase)

	clearLocation(t, s)
	assert.Equal(t, hunt.PhaseFinalAction, s.Phase())

	_, err = s.SubmitRiddleAnswer("anything")
	require.ErrorIs(t, err, hunt.ErrNoRiddle)

	_, err = s.Advance()
	require.ErrorIs(t, err, hunt.ErrNoNextLocation)
	assert.Equal(t, last, s.Index())

	ev, err := s.CompleteFinalAction()
	require.NoError(t, err)
	assert.Equal(t, hunt.EventGameCompleted, ev.Type)
	assert.True(t, s.GameCompleted())
	assert.Equal(t, hunt.PhaseCompleted, s.Phase())

	ev, err = s.CompleteFinalAction()
	require.NoError(t, err)
	assert.False(t, ev.Changed())

	_, err = s.SubmitPasscode("forever")
	require.ErrorIs(t, err, hunt.ErrWrongPhase)

	m := s.Map()
	for _, loc := range s.Content().Locations {
		assert.Equal(t, loc.Map.Landmark, m.At(loc.Map.Point()), loc.ID)
	}

	restored, err := hunt.Restore(s.Content(), s.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, hunt.PhaseCompleted, restored.Phase())
}

func TestCompletionChallengeIgnoresText(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.Start()
	require.NoError(t, err)
	for s.Index() < s.Content().Last() {
		clearLocation(t, s)
		_, err := s.Advance()
		require.NoError(t, err)
	}

	_, err = s.SubmitPasscode("Forever")
	require.NoError(t, err)
	_, err = s.SubmitChallengeAnswer(0, "")
	require.NoError(t, err)
	assert.Equal(t, hunt.PhaseFinalAction, s.Phase())
}

func TestNoticeExpires(t *testing.T) {
	s, clk := newSession(t)
	_, err := s.Start()
	require.NoError(t, err)

	_, err = s.SubmitPasscode("home123")
	require.NoError(t, err)
	n, ok := s.Notice()
	require.True(t, ok)
	assert.Equal(t, hunt.NoticeSuccess, n.Kind)

	clk.advance(4 * time.Second)
	_, err = s.SubmitChallengeAnswer(0, "nope")
	require.Error(t, err)

	// The newer notice restarts the timer.
	clk.advance(3 * time.Second)
	n, ok = s.Notice()
	require.True(t, ok)
	assert.Equal(t, hunt.NoticeError, n.Kind)

	clk.advance(2 * time.Second)
	_, ok = s.Notice()
	assert.False(t, ok)
}

func TestHints(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.Start()
	require.NoError(t, err)

	_, err = s.ChallengeHint(0)
	require.ErrorIs(t, err, hunt.ErrWrongPhase)

	_, err = s.SubmitPasscode("home123")
	require.NoError(t, err)

	hint, err := s.ChallengeHint(0)
	require.NoError(t, err)
	assert.Equal(t, "Check the photo album on the bookshelf", hint)
	n, ok := s.Notice()
	require.True(t, ok)
	assert.Equal(t, hunt.NoticeHint, n.Kind)

	_, err = s.ChallengeHint(5)
	require.ErrorIs(t, err, hunt.ErrNoSuchChallenge)

	_, err = s.RiddleHint()
	require.ErrorIs(t, err, hunt.ErrWrongPhase)
}

func TestLetterBank(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.Start()
	require.NoError(t, err)

	_, err = s.TapLetter(0)
	require.ErrorIs(t, err, hunt.ErrWrongPhase)

	_, err = s.SubmitPasscode("home123")
	require.NoError(t, err)
	_, err = s.SubmitChallengeAnswer(0, "06/14/2022")
	require.NoError(t, err)
	_, err = s.SubmitChallengeAnswer(1, "iloveyou")
	require.NoError(t, err)

	// CATBEFJHMRIOSCNPAL
	for _, i := range []int{0, 1, 5, 4} {
		_, err := s.TapLetter(i)
		require.NoError(t, err)
	}
	assert.Equal(t, "CAFE", s.Input())

	_, err = s.TapLetter(18)
	require.ErrorIs(t, err, hunt.ErrNoSuchLetter)

	s.SetInput(s.Input() + " FIXE")
	_, err = s.SubmitRiddleAnswer(s.Input())
	require.NoError(t, err)
	assert.Empty(t, s.Input())

	s.SetInput("scratch")
	s.ClearInput()
	assert.Empty(t, s.Input())
}

func TestSnapshotRoundTrip(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.Start()
	require.NoError(t, err)
	clearLocation(t, s)
	_, err = s.Advance()
	require.NoError(t, err)
	_, err = s.SubmitPasscode("vanilla")
	require.NoError(t, err)
	_, err = s.SubmitChallengeAnswer(1, "Perfect")
	require.NoError(t, err)

	snap := s.Snapshot()
	restored, err := hunt.Restore(s.Content(), snap)
	require.NoError(t, err)

	assert.Equal(t, snap, restored.Snapshot())
	assert.Equal(t, hunt.PhaseUnlocked, restored.Phase())
	assert.True(t, restored.ChallengeCompleted(1))
	assert.False(t, restored.ChallengeCompleted(0))
}

func TestRestoreRejectsInconsistentSnapshots(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.Start()
	require.NoError(t, err)
	c := s.Content()

	tests := []struct {
		name   string
		mutate func(*hunt.Snapshot)
	}{
		{"other version", func(sn *hunt.Snapshot) { sn.ContentVersion = "feedface" }},
		{"index out of range", func(sn *hunt.Snapshot) { sn.CurrentLocationIndex = len(c.Locations) }},
		{"riddle flags disagree", func(sn *hunt.Snapshot) { sn.RiddleSolved = true }},
		{"challenge out of range", func(sn *hunt.Snapshot) { sn.CompletedChallenges = []int{7} }},
		{"not started with progress", func(sn *hunt.Snapshot) {
			sn.Started = false
			sn.CurrentLocationIndex = 2
		}},
		{"completed while locked", func(sn *hunt.Snapshot) { sn.CompletedChallenges = []int{0} }},
		{"game completed early", func(sn *hunt.Snapshot) {
			sn.LocationUnlocked = true
			sn.CompletedChallenges = []int{0, 1}
			sn.GameCompleted = true
		}},
		{"riddle solved with challenges left", func(sn *hunt.Snapshot) {
			sn.LocationUnlocked = true
			sn.CompletedChallenges = []int{0}
			sn.RiddleSolved = true
			sn.NextLocationRevealed = true
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := s.Snapshot()
			tt.mutate(&snap)
			_, err := hunt.Restore(c, snap)
			assert.Error(t, err)
		})
	}
}
