package hunt

import (
	"errors"
	"fmt"
)

var (
	ErrNotStarted      = errors.New("hunt has not started")
	ErrAlreadyStarted  = errors.New("hunt already started")
	ErrWrongPhase      = errors.New("action not available right now")
	ErrNoSuchChallenge = errors.New("no such challenge")
	ErrNoRiddle        = errors.New("location has no riddle")
	ErrNoNextLocation  = errors.New("no location after this one")
	ErrNoSuchLetter    = errors.New("no such letter tile")

	// ErrMismatch matches every *MismatchError.
	ErrMismatch = errors.New("answer mismatch")
)

type MismatchKind string

const (
	MismatchPasscode  MismatchKind = "passcode"
	MismatchChallenge MismatchKind = "challenge"
	MismatchRiddle    MismatchKind = "riddle"
)

// MismatchError reports a submission that did not match. It never carries
// the expected value.
type MismatchError struct {
	Kind MismatchKind
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s mismatch", e.Kind)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

func wrongPhase(reason string) error {
	return fmt.Errorf("%w: %s", ErrWrongPhase, reason)
}
