package extract

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/payrollkit/slipsort/constants"
)

type fakeDoc struct {
	texts     []string
	textErr   error
	renderErr error
	rendered  int
}

func (f *fakeDoc) PageCount() int { return len(f.texts) }

func (f *fakeDoc) PageText(_ context.Context, page int) (string, error) {
	if f.textErr != nil {
		return "", f.textErr
	}
	return f.texts[page], nil
}

func (f *fakeDoc) RenderPage(_ context.Context, page int, scale float64) (image.Image, error) {
	if f.renderErr != nil {
		return nil, f.renderErr
	}
	f.rendered++
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (f *fakeDoc) Close() error { return nil }

type fakeRecognizer struct {
	text  string
	err   error
	calls int
}

func (f *fakeRecognizer) Recognize(_ context.Context, _ image.Image) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeRecognizer) Close() error { return nil }

func TestAcquireDirectAboveThreshold(t *testing.T) {
	long := strings.Repeat("HOLERITE JOÃO SILVA ", 5)
	doc := &fakeDoc{texts: []string{long}}
	rec := &fakeRecognizer{text: "should not be used"}
	a := NewAcquirer(Config{TextThreshold: 50}, rec, nil)

	res := a.Acquire(context.Background(), doc, 0)
	if res.Method != constants.AcquisitionDirect {
		t.Fatalf("method = %q, want direct", res.Method)
	}
	if res.Text != long {
		t.Errorf("text not passed through")
	}
	if rec.calls != 0 {
		t.Errorf("recognizer invoked %d times for a text-rich page", rec.calls)
	}
}

func TestAcquireFallsBackToOCR(t *testing.T) {
	doc := &fakeDoc{texts: []string{"  \n "}}
	rec := &fakeRecognizer{text: "JOÃO SILVA 1234"}
	a := NewAcquirer(Config{TextThreshold: 50}, rec, nil)

	res := a.Acquire(context.Background(), doc, 0)
	if res.Method != constants.AcquisitionOCR {
		t.Fatalf("method = %q, want ocr", res.Method)
	}
	if res.Text != "JOÃO SILVA 1234" {
		t.Errorf("text = %q", res.Text)
	}
	if doc.rendered != 1 {
		t.Errorf("rendered %d times, want 1", doc.rendered)
	}
}

func TestAcquireNilRecognizerKeepsSparseText(t *testing.T) {
	doc := &fakeDoc{texts: []string{"short"}}
	a := NewAcquirer(Config{TextThreshold: 50}, nil, nil)

	res := a.Acquire(context.Background(), doc, 0)
	if res.Method != constants.AcquisitionDirect {
		t.Fatalf("method = %q, want direct", res.Method)
	}
	if res.Text != "short" {
		t.Errorf("text = %q, want %q", res.Text, "short")
	}
}

func TestAcquireNeverFailsTheCaller(t *testing.T) {
	tests := []struct {
		name string
		doc  *fakeDoc
		rec  *fakeRecognizer
	}{
		{
			name: "direct and ocr both fail",
			doc:  &fakeDoc{texts: []string{""}, textErr: errors.New("broken xref")},
			rec:  &fakeRecognizer{err: errors.New("tesseract crashed")},
		},
		{
			name: "render fails",
			doc:  &fakeDoc{texts: []string{""}, renderErr: errors.New("no pixmap")},
			rec:  &fakeRecognizer{text: "unreachable"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAcquirer(Config{}, tt.rec, nil)
			res := a.Acquire(context.Background(), tt.doc, 0)
			if res.Text != "" {
				t.Errorf("text = %q, want empty", res.Text)
			}
			if len(res.Warnings) == 0 {
				t.Errorf("expected warnings for failed acquisition")
			}
		})
	}
}

func TestAcquireOCRFailureKeepsDirectText(t *testing.T) {
	doc := &fakeDoc{texts: []string{"JOÃO"}}
	rec := &fakeRecognizer{err: errors.New("ocr failed")}
	a := NewAcquirer(Config{TextThreshold: 50}, rec, nil)

	res := a.Acquire(context.Background(), doc, 0)
	if res.Text != "JOÃO" {
		t.Errorf("text = %q, want the direct text preserved", res.Text)
	}
	if res.Method != constants.AcquisitionDirect {
		t.Errorf("method = %q, want direct", res.Method)
	}
}

func TestThresholdCountsTrimmedRunes(t *testing.T) {
	// 10 runes of multibyte text, threshold 10: at threshold means no OCR.
	doc := &fakeDoc{texts: []string{"  ÃÃÃÃÃÃÃÃÃÃ  "}}
	rec := &fakeRecognizer{text: "nope"}
	a := NewAcquirer(Config{TextThreshold: 10}, rec, nil)

	res := a.Acquire(context.Background(), doc, 0)
	if rec.calls != 0 {
		t.Errorf("recognizer invoked for a page at the threshold")
	}
	if res.Method != constants.AcquisitionDirect {
		t.Errorf("method = %q, want direct", res.Method)
	}
}
