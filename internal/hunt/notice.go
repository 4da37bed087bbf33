package hunt

import "time"

// DefaultNoticeTTL is how long a notice stays visible.
const DefaultNoticeTTL = 5 * time.Second

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeHint    NoticeKind = "hint"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a transient message for the player. Only the latest one is
// kept; posting a new notice replaces the old one along with its expiry.
type Notice struct {
	Text     string     `json:"text"`
	Kind     NoticeKind `json:"kind"`
	PostedAt time.Time  `json:"postedAt"`
}

// Active reports whether the notice is still showing at now.
func (n Notice) Active(now time.Time, ttl time.Duration) bool {
	return n.Text != "" && now.Before(n.PostedAt.Add(ttl))
}

// ExpiresAt is when the notice dismisses itself.
func (n Notice) ExpiresAt(ttl time.Duration) time.Time {
	return n.PostedAt.Add(ttl)
}

const (
	msgPasscodeOK    = "Passcode correct! Location unlocked."
	msgPasscodeBad   = "Incorrect passcode. Try again!"
	msgChallengeOK   = "Challenge completed!"
	msgChallengeBad  = "That's not quite right. Try again!"
	msgRiddleOK      = "Riddle solved! Next location revealed."
	msgRiddleBad     = "That's not the right answer to the riddle. Try again!"
	msgGameCompleted = "Congratulations! You've completed the treasure hunt!"
	msgProceeding    = "Proceeding to %s"
)
