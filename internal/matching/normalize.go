package matching

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Normalize trims surrounding whitespace and case-folds a skill or location token.
// Two tokens are considered equal when their normalized forms are equal.
func Normalize(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	return cases.Fold().String(token)
}

// SkillSet is a set of normalized skill tokens.
type SkillSet map[string]struct{}

// NewSkillSet normalizes the provided tokens and collapses duplicates.
// Tokens that are blank after normalization are ignored.
func NewSkillSet(tokens []string) SkillSet {
	set := make(SkillSet, len(tokens))
	for _, token := range tokens {
		normalized := Normalize(token)
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return set
}

func (s SkillSet) Len() int {
	return len(s)
}

// Has reports whether the set contains the token. The token is normalized first.
func (s SkillSet) Has(token string) bool {
	_, ok := s[Normalize(token)]
	return ok
}

// Intersect returns the sorted tokens present in both sets.
func (s SkillSet) Intersect(other SkillSet) []string {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}

	matched := make([]string, 0, len(small))
	for token := range small {
		if _, ok := large[token]; ok {
			matched = append(matched, token)
		}
	}
	slices.Sort(matched)
	return matched
}

// Sorted returns the set members in lexical order.
func (s SkillSet) Sorted() []string {
	tokens := make([]string, 0, len(s))
	for token := range s {
		tokens = append(tokens, token)
	}
	slices.Sort(tokens)
	return tokens
}
