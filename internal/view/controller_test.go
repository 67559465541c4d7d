package view

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/zetbrowse/zb/internal/note"
	"github.com/zetbrowse/zb/internal/query"
	"github.com/zetbrowse/zb/internal/sorter"
)

type fakeStore struct {
	notes  []note.Note
	bodies map[string]string
}

func (f *fakeStore) ListAll() ([]note.Note, error) {
	return append([]note.Note(nil), f.notes...), nil
}

func (f *fakeStore) Get(id string) (note.Note, bool) {
	for _, n := range f.notes {
		if n.ID == id {
			return n, true
		}
	}
	return note.Note{}, false
}

func (f *fakeStore) UniverseSize() int {
	return len(f.notes)
}

func (f *fakeStore) TitleMatches(term string) (map[string]struct{}, error) {
	matched := make(map[string]struct{})
	for _, n := range f.notes {
		if strings.Contains(n.DisplayTitle(), term) {
			matched[n.ID] = struct{}{}
		}
	}
	return matched, nil
}

func (f *fakeStore) ContentMatches(term string) (map[string]struct{}, error) {
	matched := make(map[string]struct{})
	for id, body := range f.bodies {
		if strings.Contains(body, term) {
			matched[id] = struct{}{}
		}
	}
	return matched, nil
}

func newFixture() (*fakeStore, *Controller) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f := &fakeStore{
		notes: []note.Note{
			{ID: "20240101000000-alpha", Title: "Alpha foo", ModifiedAt: base.Add(-1 * time.Hour), SizeBytes: 10},
			{ID: "20240201000000-beta", Title: "Beta foo", ModifiedAt: base.Add(-2 * time.Hour), SizeBytes: 50},
			{ID: "20240301000000-gamma", Title: "Gamma", ModifiedAt: base.Add(-3 * time.Hour), SizeBytes: 30},
			{ID: "20240401000000-delta", Title: "Delta", ModifiedAt: base.Add(-4 * time.Hour), SizeBytes: 5},
			{ID: "20240501000000-epsilon", Title: "Epsilon foo", ModifiedAt: base, SizeBytes: 90},
		},
		bodies: map[string]string{
			"20240101000000-alpha":   "shared marker one",
			"20240201000000-beta":    "shared marker two",
			"20240301000000-gamma":   "unrelated prose",
			"20240401000000-delta":   "more prose",
			"20240501000000-epsilon": "shared closing words",
		},
	}
	return f, NewController(f, query.NewEngine(f))
}

func TestOpenPopulatesUnnarrowedByModified(t *testing.T) {
	t.Parallel()

	_, c := newFixture()
	if err := c.Open(nil, nil); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if c.IsNarrowed() {
		t.Fatalf("expected freshly opened view to be unnarrowed")
	}

	ids := c.VisibleIDs()
	if ids[0] != "20240501000000-epsilon" {
		t.Fatalf("expected most recently modified note first, got %q", ids[0])
	}
	if c.CursorLine() != 1 {
		t.Fatalf("expected cursor at line 1, got %d", c.CursorLine())
	}
}

func TestOpenWithExplicitListBypassesQueryStack(t *testing.T) {
	t.Parallel()

	f, c := newFixture()
	related := []note.Note{f.notes[2]}
	if err := c.Open(related, nil); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if got := c.VisibleIDs(); len(got) != 1 || got[0] != "20240301000000-gamma" {
		t.Fatalf("expected explicit singleton listing, got %v", got)
	}
	if c.QueryStackLen() != 0 {
		t.Fatalf("expected query stack untouched, got %d terms", c.QueryStackLen())
	}
	if c.Breadcrumb() != "" {
		t.Fatalf("expected no breadcrumb for explicit listing, got %q", c.Breadcrumb())
	}
}

func TestApplyQueryNarrowsAndResetsCursor(t *testing.T) {
	t.Parallel()

	_, c := newFixture()
	if err := c.Open(nil, nil); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	c.SetCursorLine(4)

	if err := c.ApplyQuery(query.Focus, "foo"); err != nil {
		t.Fatalf("ApplyQuery returned error: %v", err)
	}

	if !c.IsNarrowed() {
		t.Fatalf("expected narrowed view")
	}
	if got := len(c.VisibleIDs()); got != 3 {
		t.Fatalf("expected 3 foo notes, got %d", got)
	}
	if c.CursorLine() != 1 {
		t.Fatalf("expected cursor reset to top after narrowing, got %d", c.CursorLine())
	}
	if c.Breadcrumb() != `[Focus: "foo"]` {
		t.Fatalf("unexpected breadcrumb %q", c.Breadcrumb())
	}
}

func TestApplyQueryMatchingWholeCorpusStaysUnnarrowed(t *testing.T) {
	t.Parallel()

	_, c := newFixture()
	if err := c.Open(nil, nil); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	c.SetCursorLine(3)

	// The empty term title-matches every note.
	if err := c.ApplyQuery(query.Focus, ""); err != nil {
		t.Fatalf("ApplyQuery returned error: %v", err)
	}

	if c.IsNarrowed() {
		t.Fatalf("expected full-corpus match to leave the view unnarrowed")
	}
	if c.QueryStackLen() != 0 {
		t.Fatalf("expected empty stack on unnarrowed view, got %d terms", c.QueryStackLen())
	}
	if c.Breadcrumb() != "" {
		t.Fatalf("expected no breadcrumb on unnarrowed view, got %q", c.Breadcrumb())
	}
	if c.CursorLine() != 3 {
		t.Fatalf("expected cursor restored on unnarrowed result, got %d", c.CursorLine())
	}
}

func TestApplyQueryComposesWithRunningScope(t *testing.T) {
	t.Parallel()

	_, c := newFixture()
	if err := c.Open(nil, nil); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if err := c.ApplyQuery(query.Focus, "foo"); err != nil {
		t.Fatalf("focus returned error: %v", err)
	}
	if err := c.ApplyQuery(query.Search, "marker"); err != nil {
		t.Fatalf("search returned error: %v", err)
	}

	ids := c.VisibleIDs()
	if len(ids) != 2 {
		t.Fatalf("expected intersection of foo titles and marker bodies, got %v", ids)
	}
	for _, id := range ids {
		if id == "20240501000000-epsilon" {
			t.Fatalf("epsilon matches foo but not marker; scope composition leaked")
		}
	}

	if got := c.Breadcrumb(); got != `[Focus: "foo" | Search: "marker"]` {
		t.Fatalf("unexpected breadcrumb %q", got)
	}
}

func TestNoMatchesLeavesViewStateUntouched(t *testing.T) {
	t.Parallel()

	_, c := newFixture()
	if err := c.Open(nil, nil); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := c.ApplyQuery(query.Focus, "foo"); err != nil {
		t.Fatalf("focus returned error: %v", err)
	}
	c.SetCursorLine(2)

	beforeIDs := c.VisibleIDs()
	beforeCursor := c.CursorLine()
	beforeStack := c.QueryStackLen()
	beforeCrumb := c.Breadcrumb()

	err := c.ApplyQuery(query.Search, "no-such-content")
	if err == nil {
		t.Fatalf("expected NoMatchesError")
	}
	var nm *query.NoMatchesError
	if !errors.As(err, &nm) || nm.Term != "no-such-content" {
		t.Fatalf("expected verbatim failed term, got %v", err)
	}

	if !reflect.DeepEqual(beforeIDs, c.VisibleIDs()) {
		t.Fatalf("visible ids changed on failed narrowing")
	}
	if c.CursorLine() != beforeCursor {
		t.Fatalf("cursor changed on failed narrowing: %d != %d", c.CursorLine(), beforeCursor)
	}
	if c.QueryStackLen() != beforeStack {
		t.Fatalf("query stack changed on failed narrowing")
	}
	if c.Breadcrumb() != beforeCrumb {
		t.Fatalf("breadcrumb changed on failed narrowing")
	}
}

func TestQueryStackResetLawAcrossOpenCycles(t *testing.T) {
	t.Parallel()

	_, c := newFixture()
	if err := c.Open(nil, nil); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := c.ApplyQuery(query.Focus, "foo"); err != nil {
		t.Fatalf("focus returned error: %v", err)
	}
	if c.QueryStackLen() != 1 {
		t.Fatalf("expected single-term stack, got %d", c.QueryStackLen())
	}

	c.Close()
	if err := c.Open(nil, nil); err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	if c.QueryStackLen() != 0 {
		t.Fatalf("expected empty stack after reopen, got %d", c.QueryStackLen())
	}

	if err := c.ApplyQuery(query.Focus, "foo"); err != nil {
		t.Fatalf("focus after reopen returned error: %v", err)
	}
	if c.QueryStackLen() != 1 {
		t.Fatalf("expected single-term stack after reopen, got %d", c.QueryStackLen())
	}
}

func TestRefreshPreservesNarrowingAndResetsCursor(t *testing.T) {
	t.Parallel()

	f, c := newFixture()
	if err := c.Open(nil, nil); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := c.ApplyQuery(query.Search, "shared"); err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if got := len(c.VisibleIDs()); got != 3 {
		t.Fatalf("expected 3 shared notes, got %d", got)
	}
	c.SetCursorLine(3)

	// External edit: one matching note loses the marker.
	f.bodies["20240201000000-beta"] = "rewritten"

	if err := c.Refresh(nil); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	if got := len(c.VisibleIDs()); got != 2 {
		t.Fatalf("expected re-resolved narrowing of 2 notes, got %d", got)
	}
	if c.CursorLine() != 1 {
		t.Fatalf("expected narrowed refresh to reset cursor, got %d", c.CursorLine())
	}
	if c.QueryStackLen() != 1 {
		t.Fatalf("expected narrowing preserved across refresh")
	}
}

func TestRefreshUnnarrowedRestoresCursor(t *testing.T) {
	t.Parallel()

	_, c := newFixture()
	if err := c.Open(nil, nil); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	c.SetCursorLine(4)

	if err := c.Refresh(nil); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	if c.CursorLine() != 4 {
		t.Fatalf("expected cursor restored on unnarrowed refresh, got %d", c.CursorLine())
	}
}

func TestRefreshWithExplicitListResetsStack(t *testing.T) {
	t.Parallel()

	f, c := newFixture()
	if err := c.Open(nil, nil); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := c.ApplyQuery(query.Focus, "foo"); err != nil {
		t.Fatalf("focus returned error: %v", err)
	}

	if err := c.Refresh(f.notes); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	if c.QueryStackLen() != 0 {
		t.Fatalf("expected stack reset by explicit unscoped refresh")
	}
	if c.IsNarrowed() {
		t.Fatalf("expected full listing after explicit refresh")
	}
}

func TestRefreshWithEmptyExplicitListParksCursor(t *testing.T) {
	t.Parallel()

	_, c := newFixture()
	if err := c.Open(nil, nil); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	c.SetCursorLine(2)

	if err := c.Refresh([]note.Note{}); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	if got := len(c.VisibleIDs()); got != 0 {
		t.Fatalf("expected empty listing, got %d ids", got)
	}
	if c.CursorLine() != 0 {
		t.Fatalf("expected cursor 0 on empty listing, got %d", c.CursorLine())
	}
}

func TestSortByRemembersSessionDefault(t *testing.T) {
	t.Parallel()

	_, c := newFixture()
	if err := c.Open(nil, nil); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if err := c.SortBy(sorter.BySize); err != nil {
		t.Fatalf("SortBy returned error: %v", err)
	}

	ids := c.VisibleIDs()
	if ids[0] != "20240501000000-epsilon" || ids[1] != "20240201000000-beta" {
		t.Fatalf("expected size-descending order, got %v", ids)
	}

	if err := c.Refresh(nil); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if got := c.VisibleIDs(); got[0] != "20240501000000-epsilon" || got[1] != "20240201000000-beta" {
		t.Fatalf("expected refresh to keep size sort, got %v", got)
	}
	if c.SortMode() != sorter.BySize {
		t.Fatalf("expected session sort mode remembered")
	}
}

func TestSortByIsIdempotent(t *testing.T) {
	t.Parallel()

	_, c := newFixture()
	if err := c.Open(nil, nil); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if err := c.SortBy(sorter.ByCreated); err != nil {
		t.Fatalf("SortBy returned error: %v", err)
	}
	once := c.VisibleIDs()

	if err := c.SortBy(sorter.ByCreated); err != nil {
		t.Fatalf("SortBy returned error: %v", err)
	}
	twice := c.VisibleIDs()

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected idempotent sort, got %v then %v", once, twice)
	}
}

func TestQueryRefreshWithoutNarrowing(t *testing.T) {
	t.Parallel()

	_, c := newFixture()
	if err := c.Open(nil, nil); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if err := c.QueryRefresh(); !errors.Is(err, query.ErrNotNarrowed) {
		t.Fatalf("expected ErrNotNarrowed, got %v", err)
	}
}

func TestCommandsOutsideOpenViewAreRejected(t *testing.T) {
	t.Parallel()

	_, c := newFixture()

	if err := c.Refresh(nil); !errors.Is(err, query.ErrInvalidContext) {
		t.Fatalf("expected ErrInvalidContext from Refresh, got %v", err)
	}
	if err := c.SortBy(sorter.BySize); !errors.Is(err, query.ErrInvalidContext) {
		t.Fatalf("expected ErrInvalidContext from SortBy, got %v", err)
	}
	if err := c.ApplyQuery(query.Focus, "x"); !errors.Is(err, query.ErrInvalidContext) {
		t.Fatalf("expected ErrInvalidContext from ApplyQuery, got %v", err)
	}
}

func TestDispatchMapsCommandNames(t *testing.T) {
	t.Parallel()

	_, c := newFixture()

	if err := c.Dispatch("open", nil); err != nil {
		t.Fatalf("open dispatch returned error: %v", err)
	}
	if err := c.Dispatch("focus", []string{"foo"}); err != nil {
		t.Fatalf("focus dispatch returned error: %v", err)
	}
	if err := c.Dispatch("sort-by-size", nil); err != nil {
		t.Fatalf("sort dispatch returned error: %v", err)
	}
	if err := c.Dispatch("query-refresh", nil); err != nil {
		t.Fatalf("query-refresh dispatch returned error: %v", err)
	}
	if err := c.Dispatch("show-all", nil); err != nil {
		t.Fatalf("show-all dispatch returned error: %v", err)
	}
	if c.IsNarrowed() {
		t.Fatalf("expected show-all to drop the narrowing")
	}
	if err := c.Dispatch("focus", nil); err == nil {
		t.Fatalf("expected error for focus without a term")
	}
	if err := c.Dispatch("bogus", nil); err == nil {
		t.Fatalf("expected error for unknown command")
	}
	if err := c.Dispatch("close", nil); err != nil {
		t.Fatalf("close dispatch returned error: %v", err)
	}
	if c.IsOpen() {
		t.Fatalf("expected closed view after close dispatch")
	}
}
