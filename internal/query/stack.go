// Package query implements the narrowing engine: the stack of applied
// predicates and the composition of title and content matches against
// the note store.
package query

import (
	"fmt"
	"strings"
)

// Kind discriminates the two narrowing predicates.
type Kind int

const (
	// Focus narrows by note title.
	Focus Kind = iota
	// Search narrows by full note content.
	Search
)

func (k Kind) String() string {
	if k == Focus {
		return "Focus"
	}
	return "Search"
}

// Term is one applied predicate. Immutable once pushed.
type Term struct {
	Kind Kind
	Term string
}

// Stack is the ordered log of applied predicates, most recent first.
// An empty stack means the view is unnarrowed.
type Stack struct {
	terms []Term
}

// Push prepends a term, newest first.
func (s *Stack) Push(t Term) {
	s.terms = append([]Term{t}, s.terms...)
}

// Reset empties the stack. Invoked whenever a new query starts from the
// unnarrowed scope.
func (s *Stack) Reset() {
	s.terms = nil
}

// Empty reports whether no narrowing is active.
func (s *Stack) Empty() bool {
	return len(s.terms) == 0
}

// Len returns the number of applied terms.
func (s *Stack) Len() int {
	return len(s.terms)
}

// Terms returns a copy of the stack, most recent first.
func (s *Stack) Terms() []Term {
	return append([]Term(nil), s.terms...)
}

// Breadcrumb renders the active predicates grouped by kind, terms joined
// with " + " in stack order, the active kind's group placed last.
// Returns "" when the stack is empty.
func (s *Stack) Breadcrumb(active Kind) string {
	if s.Empty() {
		return ""
	}

	byKind := map[Kind][]string{}
	for _, t := range s.terms {
		byKind[t.Kind] = append(byKind[t.Kind], t.Term)
	}

	order := []Kind{Focus, Search}
	var groups []string
	for _, k := range order {
		if k == active {
			continue
		}
		if terms := byKind[k]; len(terms) > 0 {
			groups = append(groups, fmt.Sprintf("%s: %q", k, strings.Join(terms, " + ")))
		}
	}
	if terms := byKind[active]; len(terms) > 0 {
		groups = append(groups, fmt.Sprintf("%s: %q", active, strings.Join(terms, " + ")))
	}

	return "[" + strings.Join(groups, " | ") + "]"
}
