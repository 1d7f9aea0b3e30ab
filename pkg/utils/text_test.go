package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Simple name",
			input: "My Confidence",
			want:  "my-confidence",
		},
		{
			name:  "Apostrophe and parenthetical",
			input: "Dad's Approval (Nothing)",
			want:  "dad-s-approval-nothing",
		},
		{
			name:  "Leading and trailing junk",
			input: "  --Elon's Promises!  ",
			want:  "elon-s-promises",
		},
		{
			name:  "Digits survive",
			input: "Lootbox 2000",
			want:  "lootbox-2000",
		},
		{
			name:  "Empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{
			name:  "Whole euros",
			cents: 200,
			want:  "2.00",
		},
		{
			name:  "With fraction",
			cents: 125,
			want:  "1.25",
		},
		{
			name:  "Single digit fraction",
			cents: 105,
			want:  "1.05",
		},
		{
			name:  "Zero",
			cents: 0,
			want:  "0.00",
		},
		{
			name:  "Sub-euro",
			cents: 99,
			want:  "0.99",
		},
		{
			name:  "Negative",
			cents: -250,
			want:  "-2.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAmount(tt.cents); got != tt.want {
				t.Errorf("FormatAmount(%d) = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}
