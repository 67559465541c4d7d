// Package view owns the materialized note listing: which ids are
// visible, in what order, under which narrowing, and where the cursor
// sits across refreshes.
package view

import (
	"fmt"

	"github.com/zetbrowse/zb/internal/note"
	"github.com/zetbrowse/zb/internal/query"
	"github.com/zetbrowse/zb/internal/sorter"
)

// Store is the slice of the note store contract the controller consumes.
type Store interface {
	ListAll() ([]note.Note, error)
	Get(id string) (note.Note, bool)
	UniverseSize() int
}

// Controller is the view state machine:
// Closed -> Open(unnarrowed) <-> Open(narrowed) -> Closed.
// Every command runs to completion before the next is accepted; failed
// commands leave the state untouched.
type Controller struct {
	store  Store
	engine *query.Engine

	open       bool
	visibleIDs []string
	sortMode   sorter.Mode
	stack      query.Stack
	cursorLine int
	activeKind query.Kind
}

// NewController constructs a closed controller over the store.
func NewController(store Store, engine *query.Engine) *Controller {
	return &Controller{
		store:    store,
		engine:   engine,
		sortMode: sorter.Default,
	}
}

// Open creates the live view. A nil explicit list populates it with the
// full corpus; an explicit list (e.g. related notes) bypasses the query
// stack entirely. A nil srt falls back to the session sort mode. Opening
// an already-open view refreshes it instead.
func (c *Controller) Open(explicit []note.Note, srt sorter.Sorter) error {
	if c.open {
		return c.Refresh(explicit)
	}

	notes := explicit
	if notes == nil {
		all, err := c.store.ListAll()
		if err != nil {
			return err
		}
		notes = all
	}

	if srt == nil {
		srt = sorter.ForMode(c.sortMode)
	}

	c.open = true
	c.stack.Reset()
	c.visibleIDs = idsOf(srt(notes))
	c.cursorLine = 1
	return nil
}

// Refresh re-derives the visible set. An explicit list replaces it and
// resets the query stack; otherwise the active narrowing is reapplied
// from scratch against the current corpus. The prior cursor line is
// restored only when the resulting view is unnarrowed.
func (c *Controller) Refresh(explicit []note.Note) error {
	if !c.open {
		return query.ErrInvalidContext
	}

	prior := c.cursorLine

	switch {
	case explicit != nil:
		c.stack.Reset()
		c.visibleIDs = idsOf(sorter.Sort(explicit, c.sortMode))
	case c.stack.Empty():
		all, err := c.store.ListAll()
		if err != nil {
			return err
		}
		c.visibleIDs = idsOf(sorter.Sort(all, c.sortMode))
	default:
		ids, err := c.engine.Recompute(&c.stack)
		if err != nil {
			return err
		}
		c.visibleIDs = c.sortIDs(ids)
	}

	c.restoreCursor(prior)
	return nil
}

// ApplyQuery narrows the view by one predicate. The scope is the current
// visible set when already narrowed, otherwise the full universe (and
// the stack resets before the new term is pushed). On NoMatchesError the
// prior view stays untouched.
func (c *Controller) ApplyQuery(kind query.Kind, term string) error {
	if !c.open {
		return query.ErrInvalidContext
	}

	var scope []string
	if c.IsNarrowed() {
		scope = c.visibleIDs
	} else {
		all, err := c.store.ListAll()
		if err != nil {
			return err
		}
		scope = idsOf(all)
	}

	matched, err := c.engine.Apply(kind, term, scope)
	if err != nil {
		return err
	}

	prior := c.cursorLine

	// A term matching the whole corpus narrows nothing: the stack stays
	// empty so the view remains unnarrowed with no breadcrumb.
	if len(matched) == c.store.UniverseSize() {
		c.stack.Reset()
		c.visibleIDs = c.sortIDs(matched)
		c.restoreCursor(prior)
		return nil
	}

	if !c.IsNarrowed() {
		c.stack.Reset()
	}
	c.stack.Push(query.Term{Kind: kind, Term: term})
	c.activeKind = kind

	c.visibleIDs = c.sortIDs(matched)
	c.restoreCursor(prior)
	return nil
}

// QueryRefresh reapplies the most recent composed narrowing from
// scratch, preserving the current sort and pushing nothing.
func (c *Controller) QueryRefresh() error {
	if !c.open {
		return query.ErrInvalidContext
	}
	if c.stack.Empty() {
		return query.ErrNotNarrowed
	}

	ids, err := c.engine.Recompute(&c.stack)
	if err != nil {
		return err
	}

	prior := c.cursorLine
	c.visibleIDs = c.sortIDs(ids)
	c.restoreCursor(prior)
	return nil
}

// SortBy resorts the currently visible set and remembers the mode as the
// session default for subsequent refreshes.
func (c *Controller) SortBy(mode sorter.Mode) error {
	if !c.open {
		return query.ErrInvalidContext
	}

	c.sortMode = mode
	c.visibleIDs = c.sortIDs(c.visibleIDs)
	c.cursorLine = 1
	return nil
}

// ShowAll drops the narrowing and repopulates from the full corpus.
func (c *Controller) ShowAll() error {
	if !c.open {
		return query.ErrInvalidContext
	}

	all, err := c.store.ListAll()
	if err != nil {
		return err
	}

	prior := c.cursorLine
	c.stack.Reset()
	c.visibleIDs = idsOf(sorter.Sort(all, c.sortMode))
	c.restoreCursor(prior)
	return nil
}

// Close discards the view state. A subsequent Open starts fresh.
func (c *Controller) Close() {
	c.open = false
	c.visibleIDs = nil
	c.stack.Reset()
	c.cursorLine = 0
}

// IsOpen reports whether a live view exists.
func (c *Controller) IsOpen() bool {
	return c.open
}

// IsNarrowed reports whether the view shows a strict subset of the
// corpus.
func (c *Controller) IsNarrowed() bool {
	return c.open && len(c.visibleIDs) < c.store.UniverseSize()
}

// VisibleIDs returns the current render order.
func (c *Controller) VisibleIDs() []string {
	return append([]string(nil), c.visibleIDs...)
}

// VisibleNotes resolves the visible ids to note snapshots, dropping ids
// whose files have vanished since the last refresh.
func (c *Controller) VisibleNotes() []note.Note {
	notes := make([]note.Note, 0, len(c.visibleIDs))
	for _, id := range c.visibleIDs {
		if n, ok := c.store.Get(id); ok {
			notes = append(notes, n)
		}
	}
	return notes
}

// Breadcrumb describes the active narrowing; empty when unnarrowed.
func (c *Controller) Breadcrumb() string {
	return c.stack.Breadcrumb(c.activeKind)
}

// SortMode returns the session sort mode.
func (c *Controller) SortMode() sorter.Mode {
	return c.sortMode
}

// QueryStackLen reports how many predicates are active.
func (c *Controller) QueryStackLen() int {
	return c.stack.Len()
}

// CursorLine returns the 1-based cursor position, 0 when closed.
func (c *Controller) CursorLine() int {
	return c.cursorLine
}

// SetCursorLine records the presentation cursor, clamped to the listing.
func (c *Controller) SetCursorLine(line int) {
	if !c.open {
		return
	}
	c.cursorLine = clamp(line, len(c.visibleIDs))
}

// Dispatch maps interactive command names onto controller operations.
func (c *Controller) Dispatch(name string, args []string) error {
	switch name {
	case "open":
		return c.Open(nil, nil)
	case "refresh":
		return c.Refresh(nil)
	case "focus", "search":
		if len(args) == 0 || args[0] == "" {
			return fmt.Errorf("%s requires a term", name)
		}
		kind := query.Focus
		if name == "search" {
			kind = query.Search
		}
		return c.ApplyQuery(kind, args[0])
	case "sort-by-modified":
		return c.SortBy(sorter.ByModified)
	case "sort-by-created":
		return c.SortBy(sorter.ByCreated)
	case "sort-by-size":
		return c.SortBy(sorter.BySize)
	case "query-refresh":
		return c.QueryRefresh()
	case "show-all":
		return c.ShowAll()
	case "close":
		c.Close()
		return nil
	default:
		return fmt.Errorf("unknown command %q", name)
	}
}

func (c *Controller) sortIDs(ids []string) []string {
	notes := make([]note.Note, 0, len(ids))
	for _, id := range ids {
		if n, ok := c.store.Get(id); ok {
			notes = append(notes, n)
		}
	}
	return idsOf(sorter.Sort(notes, c.sortMode))
}

func (c *Controller) restoreCursor(prior int) {
	if c.IsNarrowed() {
		c.cursorLine = clamp(1, len(c.visibleIDs))
		return
	}
	c.cursorLine = clamp(prior, len(c.visibleIDs))
}

func idsOf(notes []note.Note) []string {
	ids := make([]string, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	return ids
}

func clamp(line, size int) int {
	if size == 0 {
		return 0
	}
	if line < 1 {
		return 1
	}
	if line > size {
		return size
	}
	return line
}
