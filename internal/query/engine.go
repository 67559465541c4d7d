package query

import (
	"github.com/zetbrowse/zb/internal/note"
)

// NoteStore is the slice of the store contract the engine consumes.
type NoteStore interface {
	ListAll() ([]note.Note, error)
	TitleMatches(term string) (map[string]struct{}, error)
	ContentMatches(term string) (map[string]struct{}, error)
}

// Engine evaluates narrowing predicates against the note store. It also
// keeps the process-lifetime history of successful terms, append-only.
type Engine struct {
	store   NoteStore
	history []Term
}

// NewEngine constructs an engine over the given store.
func NewEngine(store NoteStore) *Engine {
	return &Engine{store: store}
}

// Apply evaluates one predicate against the given scope and returns the
// matching ids in scope order. An empty result yields NoMatchesError and
// records nothing; the caller must leave its view state untouched.
func (e *Engine) Apply(kind Kind, term string, scope []string) ([]string, error) {
	matched, err := e.matchSet(kind, term)
	if err != nil {
		return nil, err
	}

	kept := make([]string, 0, len(scope))
	for _, id := range scope {
		if _, ok := matched[id]; ok {
			kept = append(kept, id)
		}
	}

	if len(kept) == 0 {
		return nil, &NoMatchesError{Term: term}
	}

	e.history = append(e.history, Term{Kind: kind, Term: term})
	return kept, nil
}

// Recompute replays a composed narrowing from scratch against the
// current corpus, oldest predicate first. Ids are re-resolved, so notes
// created or deleted since the original narrowing are picked up. An
// empty outcome yields NoMatchesError carrying the most recent term.
func (e *Engine) Recompute(stack *Stack) ([]string, error) {
	notes, err := e.store.ListAll()
	if err != nil {
		return nil, err
	}

	scope := make([]string, len(notes))
	for i, n := range notes {
		scope[i] = n.ID
	}

	terms := stack.Terms()
	for i := len(terms) - 1; i >= 0; i-- {
		matched, err := e.matchSet(terms[i].Kind, terms[i].Term)
		if err != nil {
			return nil, err
		}

		kept := scope[:0:0]
		for _, id := range scope {
			if _, ok := matched[id]; ok {
				kept = append(kept, id)
			}
		}
		scope = kept
	}

	if len(scope) == 0 && len(terms) > 0 {
		return nil, &NoMatchesError{Term: terms[0].Term}
	}
	return scope, nil
}

// History returns the successful terms in application order.
func (e *Engine) History() []Term {
	return append([]Term(nil), e.history...)
}

func (e *Engine) matchSet(kind Kind, term string) (map[string]struct{}, error) {
	if kind == Focus {
		return e.store.TitleMatches(term)
	}
	return e.store.ContentMatches(term)
}
