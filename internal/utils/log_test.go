package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "golang",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "react",
			limit:  10,
			expect: "react",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "typescript",
			limit:  4,
			expect: "type...",
		},
		{
			name:   "counts runes not bytes",
			input:  "Zürich Genève",
			limit:  6,
			expect: "Zürich...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestJoinForLog(t *testing.T) {
	t.Parallel()

	if got := JoinForLog([]string{"go", "sql", "docker"}, 100); got != "go, sql, docker" {
		t.Fatalf("unexpected join: %q", got)
	}

	if got := JoinForLog([]string{"go", "sql", "docker"}, 7); got != "go, sql..." {
		t.Fatalf("unexpected truncated join: %q", got)
	}

	if got := JoinForLog(nil, 10); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
