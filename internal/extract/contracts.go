package extract

import (
	"context"
	"time"

	"github.com/payrollkit/slipsort/constants"
	"github.com/payrollkit/slipsort/internal/document"
)

// PageTextAcquirer is stage 1: page -> text. It never fails the caller
// for a single bad page; failures degrade to empty text with warnings.
type PageTextAcquirer interface {
	Acquire(ctx context.Context, doc document.Document, page int) Result
}

type Result struct {
	Text     string
	Method   constants.AcquisitionMethod
	Duration time.Duration
	Warnings []string
}
