package matching

import (
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "lower case", input: "react", expect: "react"},
		{name: "mixed case", input: "JavaScript", expect: "javascript"},
		{name: "surrounding whitespace", input: "  Node.js\t", expect: "node.js"},
		{name: "inner whitespace kept", input: " Machine  Learning ", expect: "machine  learning"},
		{name: "blank", input: "   ", expect: ""},
		{name: "non-ascii", input: "ÄPFEL", expect: "äpfel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestSkillSet(t *testing.T) {
	t.Parallel()

	required := NewSkillSet([]string{"Go", " go ", "SQL", "", "Docker"})
	if required.Len() != 3 {
		t.Fatalf("expected 3 unique skills, got %d: %v", required.Len(), required.Sorted())
	}

	if !required.Has("DOCKER") {
		t.Fatalf("expected case-insensitive membership")
	}

	if required.Has("kubernetes") {
		t.Fatalf("did not expect kubernetes in set")
	}

	candidate := NewSkillSet([]string{"docker", "Python", "GO"})
	matched := required.Intersect(candidate)
	if !slices.Equal(matched, []string{"docker", "go"}) {
		t.Fatalf("unexpected intersection: %v", matched)
	}

	if got := candidate.Intersect(required); !slices.Equal(got, matched) {
		t.Fatalf("intersection must be symmetric, got %v", got)
	}

	if got := NewSkillSet(nil).Intersect(required); len(got) != 0 {
		t.Fatalf("expected empty intersection, got %v", got)
	}

	if sorted := required.Sorted(); !slices.Equal(sorted, []string{"docker", "go", "sql"}) {
		t.Fatalf("unexpected sorted skills: %v", sorted)
	}
}
