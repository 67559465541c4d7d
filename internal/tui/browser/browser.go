// Package browser is the interactive note listing: a bubbletea list
// over the view controller, with narrowing prompts, sort hotkeys and a
// live markdown preview.
package browser

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zetbrowse/zb/internal/cache"
	"github.com/zetbrowse/zb/internal/note"
	"github.com/zetbrowse/zb/internal/query"
	"github.com/zetbrowse/zb/internal/sorter"
	"github.com/zetbrowse/zb/internal/state"
	"github.com/zetbrowse/zb/internal/tui/browser/submodels"
	v "github.com/zetbrowse/zb/internal/views"
	"github.com/zetbrowse/zb/utils"
)

var maxCacheSizeMB int64 = 50

type BrowserModel struct {
	list         list.Model
	cache        *cache.Cache
	keys         *listKeyMap
	delegateKeys *delegateKeyMap
	state        *state.State
	inputModel   submodels.InputModel
	preview      string
	width        int
	height       int
	querying     bool
	queryKind    query.Kind
	showDetails  bool
}

func NewBrowserModel(s *state.State) (*BrowserModel, error) {
	if err := s.Controller.Open(nil, nil); err != nil {
		return nil, err
	}
	if err := s.Controller.SortBy(s.DefaultSort); err != nil {
		return nil, err
	}

	dkeys := newDelegateKeyMap()
	lkeys := newListKeyMap()
	delegate := newItemDelegate(dkeys)

	l := list.New(newListItems(s.Controller.VisibleNotes(), false), delegate, 0, 0)
	l.Title = v.GetTitleForBrowser(s.Controller.SortMode(), s.Controller.Breadcrumb())
	l.Styles.Title = titleStyle

	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			lkeys.openNote,
			lkeys.focus,
			lkeys.search,
		}
	}

	l.AdditionalFullHelpKeys = lkeys.fullHelp
	c, err := cache.New(maxCacheSizeMB)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	i := submodels.NewInputModel()

	return &BrowserModel{
		state:        s,
		cache:        c,
		list:         l,
		keys:         lkeys,
		delegateKeys: dkeys,
		inputModel:   i,
		querying:     false,
	}, nil
}

func (m BrowserModel) Init() tea.Cmd {
	if m.state.Watcher == nil {
		return nil
	}
	return m.state.Watcher.Start()
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var retCmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

	case state.VaultNoteChangedMsg:
		if err := m.state.Controller.Refresh(nil); err != nil {
			m.list.NewStatusMessage(statusStyle(err.Error()))
		}
		cmds = append(cmds, m.refreshItems(), m.state.Watcher.Start())

	case state.VaultWatcherErrMsg:
		m.list.NewStatusMessage(statusStyle(fmt.Sprintf("Watcher error: %v", msg.Err)))
		cmds = append(cmds, m.state.Watcher.Start())

	case note.EditorFinishedMsg:
		if msg.Err != nil {
			m.list.NewStatusMessage(statusStyle(fmt.Sprintf("Editor error: %v", msg.Err)))
		}
		if err := m.state.Controller.Refresh(nil); err == nil {
			cmds = append(cmds, m.refreshItems())
		}

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		if m.querying {
			return m.handleQueryUpdate(msg)
		}

		_, retCmd = m.handleDefaultUpdate(msg)
	}

	nl, cmd := m.list.Update(msg)
	m.list = nl
	cmds = append(cmds, cmd, retCmd)

	m.state.Controller.SetCursorLine(m.list.Index() + 1)
	m.handlePreview()
	return m, tea.Batch(cmds...)
}

func (m BrowserModel) handleQueryUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if key.Matches(msg, m.keys.exitQuery) {
		m.toggleQuery(m.queryKind)
		return m, nil
	}

	m.inputModel.Input, cmd = m.inputModel.Input.Update(msg)
	cmds = append(cmds, cmd)

	if key.Matches(msg, m.keys.submitQuery) {
		term := m.inputModel.Input.Value()
		if term == "" {
			m.list.NewStatusMessage(statusStyle("Enter a term to narrow by"))
			return m, tea.Batch(cmds...)
		}
		if err := m.state.Controller.ApplyQuery(m.queryKind, term); err != nil {
			m.list.NewStatusMessage(statusStyle(err.Error()))
		} else {
			m.toggleQuery(m.queryKind)
			cmds = append(cmds, m.refreshItems())
			return m, tea.Batch(cmds...)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *BrowserModel) handleDefaultUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.openNote):
		return m, m.openNote()

	case key.Matches(msg, m.keys.toggleTitleBar):
		m.toggleTitleBar()
		return m, nil

	case key.Matches(msg, m.keys.toggleStatusBar):
		m.list.SetShowStatusBar(!m.list.ShowStatusBar())
		return m, nil

	case key.Matches(msg, m.keys.togglePagination):
		m.list.SetShowPagination(!m.list.ShowPagination())
		return m, nil

	case key.Matches(msg, m.keys.toggleHelpMenu):
		m.list.SetShowHelp(!m.list.ShowHelp())
		return m, nil

	case key.Matches(msg, m.keys.focus):
		m.toggleQuery(query.Focus)
		return m, nil

	case key.Matches(msg, m.keys.search):
		m.toggleQuery(query.Search)
		return m, nil

	case key.Matches(msg, m.keys.showAll):
		if err := m.state.Controller.ShowAll(); err != nil {
			m.list.NewStatusMessage(statusStyle(err.Error()))
			return m, nil
		}
		return m, m.refreshItems()

	case key.Matches(msg, m.keys.queryRefresh):
		if err := m.state.Controller.QueryRefresh(); err != nil {
			m.list.NewStatusMessage(statusStyle(err.Error()))
			return m, nil
		}
		return m, m.refreshItems()

	case key.Matches(msg, m.keys.refresh):
		if err := m.state.Controller.Refresh(nil); err != nil {
			m.list.NewStatusMessage(statusStyle(err.Error()))
			return m, nil
		}
		return m, m.refreshItems()

	case key.Matches(msg, m.keys.related):
		return m, m.showRelated()

	case key.Matches(msg, m.keys.orphans):
		return m, m.showOrphans()

	case key.Matches(msg, m.keys.sortByModified):
		return m, m.sortBy(sorter.ByModified)

	case key.Matches(msg, m.keys.sortByCreated):
		return m, m.sortBy(sorter.ByCreated)

	case key.Matches(msg, m.keys.sortBySize):
		return m, m.sortBy(sorter.BySize)
	}

	return m, nil
}

func (m BrowserModel) View() string {
	list := listStyle.Width(m.width / 2).Render(m.list.View())

	if m.querying {
		prompt := "Focus titles"
		if m.queryKind == query.Search {
			prompt = "Search contents"
		}

		textPrompt := textPromptStyle.Render(
			lipgloss.NewStyle().
				Height(m.list.Height()).
				MaxHeight(m.list.Height()).
				Padding(0, 2).
				Render(fmt.Sprintf(
					"%s\n\n%s\n\n%s",
					titleStyle.Render(prompt),
					m.inputModel.View(),
					helpStyle.Render("titles match verbatim, contents by pattern"),
				)),
		)

		layout := lipgloss.JoinHorizontal(lipgloss.Top, list, textPrompt)
		return appStyle.Render(layout)
	}

	preview := previewStyle.Render(
		lipgloss.NewStyle().
			Height(m.list.Height()).
			MaxHeight(m.list.Height()).
			MaxWidth(800).
			Render(fmt.Sprintf("%s\n%s", titleStyle.Render("Preview"), m.preview)),
	)

	layout := lipgloss.JoinHorizontal(lipgloss.Top, list, preview)
	return appStyle.Render(layout)
}

func Run(s *state.State) error {
	m, err := NewBrowserModel(s)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithAltScreen()).Run(); err != nil {
		if strings.Contains(err.Error(), "resource temporarily unavailable") {
			os.Exit(0)
		} else {
			log.Fatalf("Error running program: %v", err)
		}
	}

	return nil
}

func (m *BrowserModel) handlePreview() {
	if s, ok := m.list.SelectedItem().(ListItem); ok {
		if p, exists, err := m.cache.Get(s.path); err == nil && exists {
			m.preview = p
		} else {
			if err != nil {
				m.list.NewStatusMessage(statusStyle(fmt.Sprintf("Error accessing cache: %s", err)))
			}

			w := m.width / 2
			h := m.list.Height()
			r := utils.RenderMarkdownPreview(s.path, w, h)

			if err := m.cache.Put(s.path, r); err != nil {
				m.list.NewStatusMessage(statusStyle(fmt.Sprintf("Error updating cache: %s", err)))
			} else {
				m.preview = r
			}
		}
	}
}

func (m *BrowserModel) refreshItems() tea.Cmd {
	m.list.Title = v.GetTitleForBrowser(m.state.Controller.SortMode(), m.state.Controller.Breadcrumb())
	m.list.ResetFilter()
	cmd := m.list.SetItems(newListItems(m.state.Controller.VisibleNotes(), m.showDetails))
	m.list.Select(cursorIndex(m.state.Controller.CursorLine()))
	m.handlePreview()
	return cmd
}

func (m *BrowserModel) sortBy(mode sorter.Mode) tea.Cmd {
	if err := m.state.Controller.SortBy(mode); err != nil {
		m.list.NewStatusMessage(statusStyle(err.Error()))
		return nil
	}
	return m.refreshItems()
}

// showRelated swaps the listing for the notes linked to or from the
// selection. Show-all returns to the full corpus.
func (m *BrowserModel) showRelated() tea.Cmd {
	i, ok := m.list.SelectedItem().(ListItem)
	if !ok {
		return nil
	}

	ids := append(m.state.Store.Links(i.id), m.state.Store.Backlinks(i.id)...)
	seen := make(map[string]struct{}, len(ids))
	var related []note.Note
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if n, ok := m.state.Store.Get(id); ok {
			related = append(related, n)
		}
	}

	if len(related) == 0 {
		m.list.NewStatusMessage(statusStyle("No linked notes for " + i.title))
		return nil
	}

	if err := m.state.Controller.Refresh(related); err != nil {
		m.list.NewStatusMessage(statusStyle(err.Error()))
		return nil
	}
	return m.refreshItems()
}

// showOrphans swaps the listing for the notes with no outbound links.
func (m *BrowserModel) showOrphans() tea.Cmd {
	ids := m.state.Store.Orphans()
	orphans := make([]note.Note, 0, len(ids))
	for _, id := range ids {
		if n, ok := m.state.Store.Get(id); ok {
			orphans = append(orphans, n)
		}
	}

	if len(orphans) == 0 {
		m.list.NewStatusMessage(statusStyle("No orphan notes"))
		return nil
	}

	if err := m.state.Controller.Refresh(orphans); err != nil {
		m.list.NewStatusMessage(statusStyle(err.Error()))
		return nil
	}
	return m.refreshItems()
}

func (m *BrowserModel) openNote() tea.Cmd {
	var p string

	if i, ok := m.list.SelectedItem().(ListItem); ok {
		p = i.path
	} else {
		return nil
	}

	return note.BubbleteaOpenFromPath(p)
}

func (m *BrowserModel) toggleTitleBar() {
	v := !m.list.ShowTitle()
	m.list.SetShowTitle(v)
	m.list.SetShowFilter(v)
	m.list.SetFilteringEnabled(v)
}

func (m *BrowserModel) toggleQuery(kind query.Kind) {
	switch m.querying {
	case true:
		m.querying = false
		m.inputModel.Input.Blur()
	case false:
		m.querying = true
		m.queryKind = kind
		m.inputModel.Input.SetValue("")
		m.inputModel.Input.Focus()
	}
}

func cursorIndex(line int) int {
	if line < 1 {
		return 0
	}
	return line - 1
}
