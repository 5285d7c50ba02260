package window

import "errors"

var (
	// ErrInvalidArgument is returned for an empty label or nick.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned for an unknown label, refnum, nick or a
	// window ID whose window was destroyed.
	ErrNotFound = errors.New("not found")
	// ErrCapacityExceeded is returned when spawning would exceed the
	// window limit.
	ErrCapacityExceeded = errors.New("too many windows")
	// ErrProtected is returned when destroying the status window.
	ErrProtected = errors.New("window is protected")
)
