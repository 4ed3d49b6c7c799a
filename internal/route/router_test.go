package route

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDestFileName(t *testing.T) {
	ts := time.Date(2026, 3, 31, 14, 5, 9, 0, time.UTC)
	got := destFileName("JOÃO SILVA", "Recibo", Period{Month: "03", Year: "2026"}, ts)
	want := "JOÃO SILVA - Recibo - 03-2026_20260331140509.pdf"
	if got != want {
		t.Errorf("destFileName = %q, want %q", got, want)
	}
}

func TestPageSelection(t *testing.T) {
	tests := []struct {
		name      string
		ranges    []PageRange
		pageCount int
		want      []string
	}{
		{
			name:      "single page",
			ranges:    []PageRange{{Start: 0, End: 0}},
			pageCount: 10,
			want:      []string{"1"},
		},
		{
			name:      "range becomes one-based",
			ranges:    []PageRange{{Start: 2, End: 4}},
			pageCount: 10,
			want:      []string{"3-5"},
		},
		{
			name:      "order preserved",
			ranges:    []PageRange{{Start: 5, End: 6}, {Start: 0, End: 1}},
			pageCount: 10,
			want:      []string{"6-7", "1-2"},
		},
		{
			name:      "clamped to bounds",
			ranges:    []PageRange{{Start: -3, End: 99}},
			pageCount: 4,
			want:      []string{"1-4"},
		},
		{
			name:      "clamp collapses to single page",
			ranges:    []PageRange{{Start: 3, End: 42}},
			pageCount: 4,
			want:      []string{"4"},
		},
		{
			name:      "entirely out of bounds dropped",
			ranges:    []PageRange{{Start: 9, End: 12}, {Start: 1, End: 1}},
			pageCount: 4,
			want:      []string{"2"},
		},
		{
			name:      "inverted range dropped",
			ranges:    []PageRange{{Start: 3, End: 1}},
			pageCount: 4,
			want:      nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pageSelection(tt.ranges, tt.pageCount)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("pageSelection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPeriodLabel(t *testing.T) {
	p := Period{Month: "12", Year: "2025"}
	if got := p.Label(); got != "12-2025" {
		t.Errorf("Label = %q, want 12-2025", got)
	}
}
