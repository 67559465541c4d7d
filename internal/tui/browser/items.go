package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/zetbrowse/zb/internal/cache"
	"github.com/zetbrowse/zb/internal/note"
)

type ListItem struct {
	id           string
	path         string
	title        string
	lastModified string
	tags         []string
	size         int64
	showDetails  bool
}

func newListItems(notes []note.Note, showDetails bool) []list.Item {
	items := make([]list.Item, len(notes))
	for i, n := range notes {
		items[i] = ListItem{
			id:           n.ID,
			path:         n.Path,
			title:        n.DisplayTitle(),
			lastModified: n.ModifiedAt.Format("2006-01-02 15:04"),
			tags:         n.Tags,
			size:         n.SizeBytes,
			showDetails:  showDetails,
		}
	}
	return items
}

func (i ListItem) Title() string {
	if i.showDetails {
		return i.path
	}
	return i.title
}

func (i ListItem) Description() string {
	if i.showDetails {
		return fmt.Sprintf(
			"Size: %s, Last Modified: %s",
			cache.ReadableSize(i.size),
			i.lastModified,
		)
	}

	if len(i.tags) == 0 {
		return "No tags"
	}
	return strings.Join(i.tags, ", ")
}

func (i ListItem) FilterValue() string {
	str := strings.Join(i.tags, " ")
	return strings.Join([]string{i.title, "[" + str + "]"}, " ")
}

func (i ListItem) ID() string {
	return i.id
}

func (i ListItem) Path() string {
	return i.path
}
