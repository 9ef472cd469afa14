package state

import "errors"

// Validation errors: the request itself is malformed.
var (
	ErrQuestionRequired = errors.New("question is required")
	ErrTeamRequired     = errors.New("team id required")
	ErrTeamCount        = errors.New("must provide exactly 6 teams")
)

// State conflicts: the request is well-formed but the current state forbids it.
var (
	ErrNoActivePoll  = errors.New("no active poll")
	ErrInvalidOption = errors.New("invalid option")
	ErrDeviceVoted   = errors.New("device already voted")
	ErrGameNotActive = errors.New("game is not active")
	ErrAlreadyBuzzed = errors.New("someone already buzzed")
)
