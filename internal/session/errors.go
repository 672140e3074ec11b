package session

import "errors"

var (
	// ErrNoActiveSession is returned by operations that require an active session.
	ErrNoActiveSession = errors.New("no active session")
	// ErrSessionAlreadyActive is returned by Start while a session is in progress.
	ErrSessionAlreadyActive = errors.New("a session is already active")
	// ErrInvalidCastInput is returned for a non-finite or non-positive distance.
	ErrInvalidCastInput = errors.New("cast distance must be a positive number")
	// ErrIndexOutOfRange is returned when deleting a cast at a bad position.
	ErrIndexOutOfRange = errors.New("cast index out of range")
	// ErrSessionNotFound is returned when deleting an unknown session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrEmptySession is returned by End when the cast list is empty and the
	// caller has not confirmed ending anyway.
	ErrEmptySession = errors.New("session has no casts")
)
