package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Ada Lovelace  ",
			want:  "Ada Lovelace",
		},
		{
			name:  "multiple spaces between words",
			input: "Call    Room    N2",
			want:  "Call Room N2",
		},
		{
			name:  "tabs and newlines",
			input: "Darth\t\nVader",
			want:  "Darth Vader",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeRoomKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "mixed case",
			input: "Ada Lovelace",
			want:  "ada lovelace",
		},
		{
			name:  "extra whitespace and case",
			input: "  ADA   lovelace ",
			want:  "ada lovelace",
		},
		{
			name:  "idempotent",
			input: "ada lovelace",
			want:  "ada lovelace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRoomKey(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeRoomKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
