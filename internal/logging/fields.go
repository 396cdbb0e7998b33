// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"

	// Parse fields.
	FieldGranularity = "granularity"
	FieldElements    = "elements"
	FieldObjects     = "objects"
	FieldBytes       = "bytes"
	FieldDuration    = "duration"

	// Cache fields.
	FieldRequests = "requests"
	FieldIndexed  = "indexed"
	FieldPhase    = "phase"
	FieldOffset   = "offset"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
