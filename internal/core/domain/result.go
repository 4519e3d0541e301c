package domain

// FailureKind classifies an expected validation failure so the transport
// layer can choose between 400 (bad value) and 404 (bad reference).
type FailureKind int

const (
	FailureNone FailureKind = iota
	// FailureInvalid marks a business-rule violation (role mismatch, missing
	// required relation).
	FailureInvalid
	// FailureNotFound marks a dangling reference (the named user id does not
	// exist).
	FailureNotFound
)

// Result is the two-variant outcome of a business-rule check: success, or
// failure carrying a human-readable reason. Expected validation failures
// always travel as a Result, never as an error; only infrastructure faults
// propagate through error returns.
type Result struct {
	kind   FailureKind
	reason string
}

// OK returns a success result.
func OK() Result {
	return Result{}
}

// Invalid returns a failure caused by a bad value.
func Invalid(reason string) Result {
	return Result{kind: FailureInvalid, reason: reason}
}

// NotFound returns a failure caused by a dangling reference.
func NotFound(reason string) Result {
	return Result{kind: FailureNotFound, reason: reason}
}

// Valid reports whether the check passed.
func (r Result) Valid() bool {
	return r.kind == FailureNone
}

// Kind returns the failure classification.
func (r Result) Kind() FailureKind {
	return r.kind
}

// Reason returns the human-readable failure reason, empty on success.
func (r Result) Reason() string {
	return r.reason
}
