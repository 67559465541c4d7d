package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/zetbrowse/zb/internal/state"
	"github.com/zetbrowse/zb/pkg/cmd/browse"
	"github.com/zetbrowse/zb/pkg/cmd/find"
	"github.com/zetbrowse/zb/pkg/cmd/initialize"
	"github.com/zetbrowse/zb/pkg/cmd/list"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     "zb",
		Aliases: []string{"zetbrowse"},
		Short:   "Browse, narrow and sort your zettelkasten from the terminal.",
		Long: heredoc.Doc(`
			zb indexes a vault of markdown notes and gives you a browsable
			listing that can be narrowed by title or content and resorted on
			the fly.

			  zb                          open the interactive browser
			  zb list --focus robotics    print notes whose titles mention robotics
			  zb find -e                  fuzzy-pick a note and open it
		`),
		// Browsing is the default action.
		RunE: browse.NewCmdBrowse(s).RunE,
	}

	cmd.AddCommand(
		initialize.NewCmdInit(s),
		browse.NewCmdBrowse(s),
		list.NewCmdList(s),
		find.NewCmdFind(s),
	)

	return cmd, nil
}
