package find

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/zetbrowse/zb/internal/fzf"
	"github.com/zetbrowse/zb/internal/state"
)

func NewCmdFind(s *state.State) *cobra.Command {
	var execute bool

	cmd := &cobra.Command{
		Use:     "find [query]",
		Aliases: []string{"f"},
		Short:   "Fuzzy-find a note by title and tags.",
		Long: heredoc.Doc(`
			Runs a fuzzy finder over every note in the vault with a live
			markdown preview. Prints the selected path, or opens it in
			your editor with --execute.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}

			finder := fzf.NewFuzzyFinder("Find note...")
			path, err := finder.RunWithQuery(s.Store, query, execute)
			if err != nil {
				return err
			}

			if !execute && path != "" {
				fmt.Println(path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&execute, "execute", "e", false, "Open the selected note in the editor")
	return cmd
}
