package service

import "errors"

// Kind classifies service failures so that transports can map them to a
// response without inspecting messages.
type Kind int

const (
	KindInternal Kind = iota
	KindNotAuthenticated
	KindForbidden
	KindNotFound
	KindMalformed
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

var (
	ErrInvalidCredentials = &Error{Kind: KindNotAuthenticated, Msg: "Invalid credentials"}
	ErrNotAuthenticated   = &Error{Kind: KindNotAuthenticated, Msg: "auth required"}

	// A Result owned by someone else is reported exactly like a missing one.
	ErrResultNotFound  = &Error{Kind: KindForbidden, Msg: "result not found"}
	ErrResultMismatch  = &Error{Kind: KindForbidden, Msg: "result does not match test"}
	ErrInvalidFilePath = &Error{Kind: KindForbidden, Msg: "Invalid file path"}

	ErrTestNotFound     = &Error{Kind: KindNotFound, Msg: "test not found"}
	ErrTestFileNotFound = &Error{Kind: KindNotFound, Msg: "Test file not found"}

	ErrDecodeFailed     = &Error{Kind: KindMalformed, Msg: "screenshot decode failed"}
	ErrEventTypeMissing = &Error{Kind: KindMalformed, Msg: "event_type required"}
)

// KindOf reports the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
