// Package note defines the core note type shared across the browser.
package note

import (
	"strings"
	"time"
)

// IDTimeLayout is the timestamp prefix zettel ids are minted with. Ids
// carrying this prefix sort lexicographically by creation instant.
const IDTimeLayout = "20060102150405"

// Note is a single text document in the vault. Instances are immutable
// snapshots; the store re-resolves them on refresh.
type Note struct {
	ID         string
	Title      string
	Path       string
	ModifiedAt time.Time
	CreatedAt  time.Time
	SizeBytes  int64
	Tags       []string
}

// Metadata carries the re-stattable file attributes of a note.
type Metadata struct {
	ModifiedAt time.Time
	CreatedAt  time.Time
	SizeBytes  int64
}

// DisplayTitle returns the front matter title, falling back to the id.
func (n Note) DisplayTitle() string {
	if n.Title != "" {
		return n.Title
	}
	return n.ID
}

// CreatedFromID parses the timestamp prefix of a zettel id. The second
// return is false when the id does not start with a full timestamp.
func CreatedFromID(id string) (time.Time, bool) {
	if len(id) < len(IDTimeLayout) {
		return time.Time{}, false
	}
	prefix := id[:len(IDTimeLayout)]
	for _, r := range prefix {
		if r < '0' || r > '9' {
			return time.Time{}, false
		}
	}
	t, err := time.Parse(IDTimeLayout, prefix)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StemFromFilename strips the markdown extension from a vault filename.
func StemFromFilename(name string) string {
	return strings.TrimSuffix(name, ".md")
}
