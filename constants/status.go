package constants

// RunStatus is the canonical state of a batch run.
type RunStatus string

// Stable values (these exact strings appear in logs and queue events).
const (
	RunStatusIdle      RunStatus = "IDLE"      // accepted, not yet started
	RunStatusRunning   RunStatus = "RUNNING"   // worker is iterating pages
	RunStatusCompleted RunStatus = "COMPLETED" // all pages visited
	RunStatusCancelled RunStatus = "CANCELLED" // stopped at a page boundary on request
	RunStatusFailed    RunStatus = "FAILED"    // fatal precondition or aborting router error
)
