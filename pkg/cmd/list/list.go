package list

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/zetbrowse/zb/internal/cache"
	"github.com/zetbrowse/zb/internal/note"
	"github.com/zetbrowse/zb/internal/query"
	"github.com/zetbrowse/zb/internal/sorter"
	"github.com/zetbrowse/zb/internal/state"
)

func NewCmdList(s *state.State) *cobra.Command {
	var (
		sortFlag   string
		focusFlag  string
		searchFlag string
		orphanFlag bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the note listing without the interactive browser.",
		Long: heredoc.Doc(`
			Prints the vault listing to stdout. The same narrowing and
			sorting as the browser applies: --focus matches titles
			verbatim, --search matches contents by pattern, and both may
			be combined to intersect.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, sortFlag, focusFlag, searchFlag, orphanFlag)
		},
	}

	cmd.Flags().StringVarP(&sortFlag, "sort", "s", "", "Sort mode (modified, created, size, none)")
	cmd.Flags().StringVarP(&focusFlag, "focus", "f", "", "Narrow to notes whose titles contain the term")
	cmd.Flags().StringVarP(&searchFlag, "search", "q", "", "Narrow to notes whose contents match the pattern")
	cmd.Flags().BoolVarP(&orphanFlag, "orphans", "o", false, "List only notes with no outbound links")
	return cmd
}

func run(s *state.State, sortFlag, focusFlag, searchFlag string, orphans bool) error {
	mode := s.DefaultSort
	if sortFlag != "" {
		parsed, err := sorter.ParseMode(sortFlag)
		if err != nil {
			return err
		}
		mode = parsed
	}

	explicit, err := orphanNotes(s, orphans)
	if err != nil {
		return err
	}

	if err := s.Controller.Open(explicit, sorter.ForMode(mode)); err != nil {
		return err
	}
	if err := s.Controller.SortBy(mode); err != nil {
		return err
	}

	if focusFlag != "" {
		if err := s.Controller.ApplyQuery(query.Focus, focusFlag); err != nil {
			return err
		}
	}
	if searchFlag != "" {
		if err := s.Controller.ApplyQuery(query.Search, searchFlag); err != nil {
			return err
		}
	}

	format := formatterFor(mode)
	for _, n := range s.Controller.VisibleNotes() {
		fmt.Println(format(n))
	}

	if crumb := s.Controller.Breadcrumb(); crumb != "" {
		fmt.Println(crumb)
	}

	return nil
}

// orphanNotes resolves the orphan id set into an explicit listing, nil
// when the flag is off.
func orphanNotes(s *state.State, orphans bool) ([]note.Note, error) {
	if !orphans {
		return nil, nil
	}

	ids := s.Store.Orphans()
	notes := make([]note.Note, 0, len(ids))
	for _, id := range ids {
		if n, ok := s.Store.Get(id); ok {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

func formatterFor(mode sorter.Mode) sorter.Formatter {
	switch mode {
	case sorter.BySize:
		return func(n note.Note) string {
			return fmt.Sprintf("%-10s %s", cache.ReadableSize(n.SizeBytes), n.DisplayTitle())
		}
	case sorter.ByCreated:
		return func(n note.Note) string {
			created := n.CreatedAt.Format("2006-01-02 15:04")
			return fmt.Sprintf("%s  %s", created, n.DisplayTitle())
		}
	default:
		return func(n note.Note) string {
			return fmt.Sprintf("%s  %s", n.ModifiedAt.Format("2006-01-02 15:04"), n.DisplayTitle())
		}
	}
}
