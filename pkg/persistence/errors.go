package persistence

import "errors"

var (
	// ErrIncompatibleSnapshot is returned by Restore when the
	// snapshot's topology fingerprint does not match the target
	// engine's compiled topology.
	ErrIncompatibleSnapshot = errors.New("persistence: snapshot topology fingerprint does not match engine topology")

	// ErrUnsupportedVersion is returned when a snapshot's format
	// version is not one this build of the package can read.
	ErrUnsupportedVersion = errors.New("persistence: unsupported snapshot version")

	// ErrSchemaValidation is returned when a deserialized envelope
	// fails structural JSON Schema validation.
	ErrSchemaValidation = errors.New("persistence: snapshot envelope failed schema validation")
)
