package browse

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/zetbrowse/zb/internal/sorter"
	"github.com/zetbrowse/zb/internal/state"
	"github.com/zetbrowse/zb/internal/tui/browser"
)

func NewCmdBrowse(s *state.State) *cobra.Command {
	var sortFlag string

	cmd := &cobra.Command{
		Use:     "browse",
		Aliases: []string{"b"},
		Short:   "Open the interactive note browser.",
		Long: heredoc.Doc(`
			Opens the vault listing in an interactive browser. Narrow the
			listing with f (titles) or / (contents), resort with F1-F3, and
			press enter to open the selected note in your editor.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sortFlag != "" {
				mode, err := sorter.ParseMode(sortFlag)
				if err != nil {
					return err
				}
				s.DefaultSort = mode
			}
			return browser.Run(s)
		},
	}

	cmd.Flags().StringVarP(&sortFlag, "sort", "s", "", "Initial sort mode (modified, created, size)")
	return cmd
}
