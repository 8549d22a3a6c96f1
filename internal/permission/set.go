package permission

import "sort"

// Set is a flattened collection of permission codes.
// A nil Set represents the absence of a principal.
type Set map[string]struct{}

// NewSet builds a non-nil Set from codes. Duplicates collapse naturally.
func NewSet(codes ...string) Set {
	s := make(Set, len(codes))
	for _, code := range codes {
		s[code] = struct{}{}
	}

	return s
}

// Contains reports whether code is part of the set.
func (s Set) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// Codes returns the codes of the set in lexical order.
func (s Set) Codes() []string {
	out := make([]string, 0, len(s))
	for code := range s {
		out = append(out, code)
	}

	sort.Strings(out)

	return out
}

// Clone returns an independent copy. Cloning nil yields nil.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}

	out := make(Set, len(s))
	for code := range s {
		out[code] = struct{}{}
	}

	return out
}

// Has reports whether a principal exists and holds code.
func Has(s Set, code string) bool {
	if s == nil {
		return false
	}

	return s.Contains(code)
}

// HasAny reports whether a principal exists and holds at least one of codes.
func HasAny(s Set, codes []string) bool {
	if s == nil || len(codes) == 0 {
		return false
	}

	for _, code := range codes {
		if s.Contains(code) {
			return true
		}
	}

	return false
}

// HasAll reports whether a principal exists and holds every one of codes.
// An empty list is vacuously satisfied.
func HasAll(s Set, codes []string) bool {
	if s == nil {
		return false
	}

	for _, code := range codes {
		if !s.Contains(code) {
			return false
		}
	}

	return true
}
