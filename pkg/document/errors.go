package document

import "errors"

var (
	// ErrNotObject indicates a source element that is not a JSON object
	ErrNotObject = errors.New("document: source element is not an object")

	// ErrMissingField indicates a required field with no alias present (strict mode)
	ErrMissingField = errors.New("document: required field missing")

	// ErrNotFound indicates an unknown document id
	ErrNotFound = errors.New("document: not found")
)
