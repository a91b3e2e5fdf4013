package schedule

import (
	"testing"
	"time"
)

func TestParseAt(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		date      string
		start     string
		end       string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:      "valid window",
			date:      "05.03",
			start:     "09:00",
			end:       "10:00",
			wantStart: time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "minute precision",
			date:      "31.12",
			start:     "23:00",
			end:       "23:45",
			wantStart: time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.December, 31, 23, 45, 0, 0, time.UTC),
		},
		{
			name:    "start equals end",
			date:    "05.03",
			start:   "09:00",
			end:     "09:00",
			wantErr: true,
		},
		{
			name:    "start after end",
			date:    "05.03",
			start:   "11:00",
			end:     "10:00",
			wantErr: true,
		},
		{
			name:    "bad date",
			date:    "2024-03-05",
			start:   "09:00",
			end:     "10:00",
			wantErr: true,
		},
		{
			name:    "nonexistent day",
			date:    "32.01",
			start:   "09:00",
			end:     "10:00",
			wantErr: true,
		},
		{
			name:    "bad start clock",
			date:    "05.03",
			start:   "9am",
			end:     "10:00",
			wantErr: true,
		},
		{
			name:    "bad end clock",
			date:    "05.03",
			start:   "09:00",
			end:     "25:00",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := parseAt(tt.date, tt.start, tt.end, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got window %v", w)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !w.Start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", w.Start, tt.wantStart)
			}
			if !w.End.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", w.End, tt.wantEnd)
			}
			if !w.Start.Before(w.End) {
				t.Errorf("parsed window must be strictly ordered")
			}
		})
	}
}

func TestParseAt_LeapDay(t *testing.T) {
	// "29.02" parses as a layout string (the layout's zero year is a leap
	// year), and time.Date would normalize it to March 1 in a non-leap
	// year. It must be rejected, not rolled over.
	nonLeap := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	if w, err := parseAt("29.02", "10:00", "11:00", nonLeap); err == nil {
		t.Fatalf("expected error for Feb 29 in 2026, got window %v", w)
	}

	leap := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	w, err := parseAt("29.02", "10:00", "11:00", leap)
	if err != nil {
		t.Fatalf("unexpected error for Feb 29 in 2024: %v", err)
	}
	if w.Start.Month() != time.February || w.Start.Day() != 29 {
		t.Errorf("start = %v, want Feb 29", w.Start)
	}
}

func TestParse_UsesCurrentYear(t *testing.T) {
	w, err := Parse("05.03", "09:00", "10:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Start.Year() != time.Now().UTC().Year() {
		t.Errorf("expected current year %d, got %d", time.Now().UTC().Year(), w.Start.Year())
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"ordered", "09:00", "10:00", true},
		{"equal", "09:00", "09:00", false},
		{"reversed", "10:00", "09:00", false},
		{"unparseable start", "late", "10:00", false},
		{"unparseable end", "09:00", "soon", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.start, tt.end); got != tt.want {
				t.Errorf("IsValid(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestConflicts(t *testing.T) {
	existing := Window{
		Start: time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.March, 5, 11, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name      string
		candidate Window
		want      bool
	}{
		{
			name: "partial overlap",
			candidate: Window{
				Start: time.Date(2025, time.March, 5, 10, 30, 0, 0, time.UTC),
				End:   time.Date(2025, time.March, 5, 11, 30, 0, 0, time.UTC),
			},
			want: true,
		},
		{
			name: "adjacent after",
			candidate: Window{
				Start: time.Date(2025, time.March, 5, 11, 0, 0, 0, time.UTC),
				End:   time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC),
			},
			want: false,
		},
		{
			name: "adjacent before",
			candidate: Window{
				Start: time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC),
				End:   time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC),
			},
			want: false,
		},
		{
			name:      "exact match",
			candidate: existing,
			want:      true,
		},
		{
			name: "contained",
			candidate: Window{
				Start: time.Date(2025, time.March, 5, 10, 15, 0, 0, time.UTC),
				End:   time.Date(2025, time.March, 5, 10, 45, 0, 0, time.UTC),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.candidate.Conflicts(existing); got != tt.want {
				t.Errorf("Conflicts = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConflicts_ZeroLengthExisting(t *testing.T) {
	// A degenerate stored window fails the strict overlap test but still
	// represents the same slot when endpoints match.
	point := time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)
	degenerate := Window{Start: point, End: point}

	if degenerate.Overlaps(degenerate) {
		t.Errorf("zero-length window must not overlap itself under half-open semantics")
	}
	if !degenerate.Conflicts(degenerate) {
		t.Errorf("zero-length window must conflict with its exact duplicate")
	}
}
