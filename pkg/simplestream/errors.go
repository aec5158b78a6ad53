package simplestream

import "errors"

var (
	// ErrMalformedDocument is an error for when the catalog text is not a
	// well-formed json document.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrMissingField is an error for when an expected member is absent from
	// an object.
	ErrMissingField = errors.New("missing field")
	// ErrTypeMismatch is an error for when a member is present but holds a
	// different json type than the caller expects.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrEmptyObject is an error for when an object that must have members
	// has none, such as a product without any published revisions.
	ErrEmptyObject = errors.New("empty object")
)
