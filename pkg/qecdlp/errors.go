package qecdlp

import "fmt"

// InsufficientAncillaError reports that circuit synthesis failed only for
// lack of helper qubits. The ancilla search treats it as retryable.
type InsufficientAncillaError struct {
	Ancilla int // the budget that was tried
	Hint    int // minimum the synthesizer believes it needs (0 = unknown)
}

func (e *InsufficientAncillaError) Error() string {
	if e.Hint > 0 {
		return fmt.Sprintf("insufficient ancilla: %d available, at least %d required", e.Ancilla, e.Hint)
	}
	return fmt.Sprintf("insufficient ancilla: %d available", e.Ancilla)
}

// StructuralError reports that synthesis failed for a reason more ancilla
// cannot fix: malformed parameters, an unsupported curve size. Fatal,
// never retried.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return "structural synthesis error: " + e.Reason
}

// TransportError wraps a failure to reach the execution backend. The core
// pipeline surfaces it without retrying; retry policy belongs to the
// caller.
type TransportError struct {
	Addr string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend %s: %v", e.Addr, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SearchExhaustedError reports that the ancilla search hit its probe bound
// without a successful synthesis.
type SearchExhaustedError struct {
	Start  int // first ancilla count the search would have probed
	Last   int // last count actually probed
	Probes int
}

func (e *SearchExhaustedError) Error() string {
	if e.Probes == 0 {
		return fmt.Sprintf("ancilla search exhausted: probe bound is zero (start guess %d)", e.Start)
	}
	return fmt.Sprintf("ancilla search exhausted after %d probes (tried %d..%d)", e.Probes, e.Start, e.Last)
}

// RecoveryFailedError reports that no candidate derived from the ranked
// histogram verified against the public point. Callers typically re-run
// with more shots or a larger TopK.
type RecoveryFailedError struct {
	Outcomes   int // distinct outcomes examined
	Candidates int // candidate keys checked
}

func (e *RecoveryFailedError) Error() string {
	return fmt.Sprintf("recovery failed: no verified key among %d candidates from %d outcomes", e.Candidates, e.Outcomes)
}
