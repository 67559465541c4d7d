package browser

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	toggleTitleBar   key.Binding
	toggleStatusBar  key.Binding
	togglePagination key.Binding
	toggleHelpMenu   key.Binding
	openNote         key.Binding
	focus            key.Binding
	search           key.Binding
	showAll          key.Binding
	queryRefresh     key.Binding
	refresh          key.Binding
	submitQuery      key.Binding
	exitQuery        key.Binding
	related          key.Binding
	orphans          key.Binding
	sortByModified   key.Binding
	sortByCreated    key.Binding
	sortBySize       key.Binding
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		toggleTitleBar: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "toggle title"),
		),
		toggleStatusBar: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "toggle status"),
		),
		togglePagination: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "toggle pagination"),
		),
		toggleHelpMenu: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "toggle help"),
		),
		openNote: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "open"),
		),
		focus: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "focus titles"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search contents"),
		),
		showAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "show all"),
		),
		queryRefresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rerun search"),
		),
		refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
		submitQuery: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "submit (query)"),
		),
		exitQuery: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel query"),
		),
		related: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "related notes"),
		),
		orphans: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "orphan notes"),
		),
		sortByModified: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "sort by modified"),
		),
		sortByCreated: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "sort by created"),
		),
		sortBySize: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("f3", "sort by size"),
		),
	}
}

func (m listKeyMap) fullHelp() []key.Binding {
	return []key.Binding{
		m.toggleTitleBar,
		m.toggleStatusBar,
		m.togglePagination,
		m.toggleHelpMenu,
		m.openNote,
		m.focus,
		m.search,
		m.showAll,
		m.queryRefresh,
		m.refresh,
		m.related,
		m.orphans,
		m.sortByModified,
		m.sortByCreated,
		m.sortBySize,
	}
}
