// Package types provides type definitions for structured data used throughout the cv-ranker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// KeywordSet is an ordered list of distinct terms used for presence matching.
// The zero value is an empty set; use NewKeywordSet to build a validated one.
type KeywordSet struct {
	name  string
	terms []string
	lower []string
}

// NewKeywordSet builds a KeywordSet from terms, keeping their order.
// Terms are trimmed. Blank terms, case-insensitive duplicates and an empty
// list are rejected.
func NewKeywordSet(name string, terms []string) (KeywordSet, error) {
	if len(terms) == 0 {
		return KeywordSet{}, fmt.Errorf("keyword set %q is empty", name)
	}

	set := KeywordSet{
		name:  name,
		terms: make([]string, 0, len(terms)),
		lower: make([]string, 0, len(terms)),
	}
	seen := make(map[string]int, len(terms))
	for i, term := range terms {
		trimmed := strings.TrimSpace(term)
		if trimmed == "" {
			return KeywordSet{}, fmt.Errorf("keyword set %q: term %d is blank", name, i)
		}
		lower := strings.ToLower(trimmed)
		if prev, dup := seen[lower]; dup {
			return KeywordSet{}, fmt.Errorf("keyword set %q: term %q duplicates term %d", name, trimmed, prev)
		}
		seen[lower] = i
		set.terms = append(set.terms, trimmed)
		set.lower = append(set.lower, lower)
	}

	return set, nil
}

// MustKeywordSet is like NewKeywordSet but panics on error.
// Intended for package-level defaults and tests.
func MustKeywordSet(name string, terms ...string) KeywordSet {
	set, err := NewKeywordSet(name, terms)
	if err != nil {
		panic(err)
	}
	return set
}

// Name returns the category name the set was built for.
func (k KeywordSet) Name() string {
	return k.name
}

// Len returns the number of terms.
func (k KeywordSet) Len() int {
	return len(k.terms)
}

// Terms returns a copy of the terms in configured order and spelling.
func (k KeywordSet) Terms() []string {
	out := make([]string, len(k.terms))
	copy(out, k.terms)
	return out
}

// Term returns the i-th term in configured spelling.
func (k KeywordSet) Term(i int) string {
	return k.terms[i]
}

// LowerTerm returns the i-th term lowercased, as used for matching.
func (k KeywordSet) LowerTerm(i int) string {
	return k.lower[i]
}
