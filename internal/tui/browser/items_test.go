package browser

import (
	"strings"
	"testing"
	"time"

	"github.com/zetbrowse/zb/internal/note"
)

func sampleNote() note.Note {
	return note.Note{
		ID:         "20240101120000-alpha",
		Title:      "Alpha",
		Path:       "/vault/20240101120000-alpha.md",
		ModifiedAt: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		SizeBytes:  2048,
		Tags:       []string{"go", "testing"},
	}
}

func TestListItemTitle(t *testing.T) {
	t.Parallel()

	items := newListItems([]note.Note{sampleNote()}, false)
	item := items[0].(ListItem)

	if item.Title() != "Alpha" {
		t.Fatalf("expected display title, got %q", item.Title())
	}
}

func TestListItemTitleWithDetails(t *testing.T) {
	t.Parallel()

	items := newListItems([]note.Note{sampleNote()}, true)
	item := items[0].(ListItem)

	if item.Title() != "/vault/20240101120000-alpha.md" {
		t.Fatalf("expected full path title, got %q", item.Title())
	}
	if !strings.Contains(item.Description(), "Size:") {
		t.Fatalf("expected size in details description, got %q", item.Description())
	}
}

func TestListItemDescriptionTags(t *testing.T) {
	t.Parallel()

	items := newListItems([]note.Note{sampleNote()}, false)
	item := items[0].(ListItem)

	if item.Description() != "go, testing" {
		t.Fatalf("expected tag listing, got %q", item.Description())
	}

	n := sampleNote()
	n.Tags = nil
	untagged := newListItems([]note.Note{n}, false)[0].(ListItem)
	if untagged.Description() != "No tags" {
		t.Fatalf("expected no-tags placeholder, got %q", untagged.Description())
	}
}

func TestListItemFilterValueIncludesTags(t *testing.T) {
	t.Parallel()

	items := newListItems([]note.Note{sampleNote()}, false)
	item := items[0].(ListItem)

	fv := item.FilterValue()
	if !strings.Contains(fv, "Alpha") || !strings.Contains(fv, "go testing") {
		t.Fatalf("expected title and tags in filter value, got %q", fv)
	}
}
