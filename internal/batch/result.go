package batch

import (
	"github.com/google/uuid"

	"github.com/payrollkit/slipsort/constants"
	"github.com/payrollkit/slipsort/internal/match"
)

// PageRecord is the ephemeral outcome of one page. It is folded into
// the run's Result and a routing decision, then discarded.
type PageRecord struct {
	Page        int // 0-based, stable within a run
	Text        string
	Acquisition constants.AcquisitionMethod
	Match       match.Match
}

// Result aggregates a batch run. It is created empty at run start,
// mutated additively while pages are processed, and returned to the
// caller at run end, on cancellation, and alongside aborting errors.
type Result struct {
	RunID             uuid.UUID
	Status            constants.RunStatus
	TotalPages        int
	PagesProcessed    int
	IdentifiedPages   int
	UnidentifiedPages int
	IdentitiesFound   []string // distinct, first-seen order
	Errors            []string

	foundSet map[string]struct{}
}

func newResult(totalPages int) *Result {
	return &Result{
		RunID:      uuid.New(),
		Status:     constants.RunStatusRunning,
		TotalPages: totalPages,
		foundSet:   make(map[string]struct{}),
	}
}

func (r *Result) addIdentity(name string) {
	if _, ok := r.foundSet[name]; ok {
		return
	}
	r.foundSet[name] = struct{}{}
	r.IdentitiesFound = append(r.IdentitiesFound, name)
}

func (r *Result) addError(msg string) {
	r.Errors = append(r.Errors, msg)
}
