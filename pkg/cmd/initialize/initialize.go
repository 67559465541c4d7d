package initialize

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zetbrowse/zb/internal/state"
)

func NewCmdInit(s *state.State) *cobra.Command {
	var vaultFlag string

	cmd := &cobra.Command{
		Use:     "initialize",
		Aliases: []string{"i", "init"},
		Short:   "Set up the zb configuration.",
		Long:    "Writes the default configuration if none exists, and optionally points it at your vault.",
		Example: "zb init --vault ~/zettelkasten",
		RunE: func(cmd *cobra.Command, args []string) error {
			if vaultFlag != "" {
				s.Config.VaultDir = vaultFlag
				if err := s.Config.Save(); err != nil {
					return err
				}
			}

			fmt.Printf("Config: %s\nVault:  %s\n", s.Config.Path(), s.Config.VaultDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&vaultFlag, "vault", "v", "", "Vault directory to index")
	return cmd
}
