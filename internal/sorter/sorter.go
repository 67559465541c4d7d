// Package sorter orders note listings. All modes sort descending (most
// recent or largest first) and are stable on ties.
package sorter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zetbrowse/zb/internal/note"
)

// Mode selects the sort key.
type Mode int

const (
	// ByModified orders by file modification time, most recent first.
	ByModified Mode = iota
	// ByCreated orders by the id's timestamp prefix, newest first.
	ByCreated
	// BySize orders by file size, largest first.
	BySize
	// None keeps the input order.
	None
)

// Default is the sort applied when no explicit mode was requested.
const Default = ByModified

func (m Mode) String() string {
	switch m {
	case ByModified:
		return "modified"
	case ByCreated:
		return "created"
	case BySize:
		return "size"
	default:
		return "none"
	}
}

// ParseMode maps a flag value onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "modified":
		return ByModified, nil
	case "created":
		return ByCreated, nil
	case "size":
		return BySize, nil
	case "none":
		return None, nil
	default:
		return None, fmt.Errorf("unknown sort mode %q (expected modified, created, size or none)", s)
	}
}

// Sorter orders a note listing. Implementations must not mutate the
// input slice.
type Sorter func([]note.Note) []note.Note

// Formatter maps a note onto its display row.
type Formatter func(note.Note) string

// ForMode returns the Sorter implementing the given mode.
func ForMode(mode Mode) Sorter {
	return func(notes []note.Note) []note.Note {
		return Sort(notes, mode)
	}
}

// Sort orders notes by the mode's key, descending, stable on ties.
// Singleton and empty inputs are returned unchanged; related-note
// listings are routinely single entries and skip the copy entirely.
func Sort(notes []note.Note, mode Mode) []note.Note {
	if len(notes) <= 1 || mode == None {
		return notes
	}

	sorted := make([]note.Note, len(notes))
	copy(sorted, notes)

	sort.SliceStable(sorted, func(i, j int) bool {
		switch mode {
		case ByModified:
			return sorted[i].ModifiedAt.After(sorted[j].ModifiedAt)
		case ByCreated:
			// Ids are lexicographically sortable by creation instant.
			return sorted[i].ID > sorted[j].ID
		case BySize:
			return sorted[i].SizeBytes > sorted[j].SizeBytes
		default:
			return false
		}
	})

	return sorted
}
