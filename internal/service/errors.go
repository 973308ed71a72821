package service

import "errors"

var (
	// ErrSubmitInFlight is returned by Submit while an earlier Submit on
	// the same session has not finished.
	ErrSubmitInFlight = errors.New("a submit is already in flight")

	// ErrNoDraft is returned by edit-session operations before Load.
	ErrNoDraft = errors.New("no trip loaded")
)
