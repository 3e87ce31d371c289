package save

import "errors"

var (
	// ErrSaveSerialization wraps failures to build, encode or persist a save.
	ErrSaveSerialization = errors.New("save: serialization failed")
	// ErrSaveDeserialization wraps failures to read or decode a save.
	ErrSaveDeserialization = errors.New("save: deserialization failed")
	// ErrNotFound is returned by a Persister when a key has no value.
	ErrNotFound = errors.New("save: not found")
)
