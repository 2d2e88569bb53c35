package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Roster commands (require the admin code)",
	}

	cmd.AddCommand(newPlayersListCmd())
	cmd.AddCommand(newPlayersExportCmd())

	return cmd
}

func newPlayersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered players, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerList

			if err := client.GetAdmin(cmd.Context(), "/api/v1/players", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newPlayersExportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the roster as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var w io.Writer = cmd.OutOrStdout()
			if file != "" {
				f, err := os.Create(file)
				if err != nil {
					return fmt.Errorf("create %s: %w", file, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			n, err := client.Download(cmd.Context(), "/admin/export", w)
			if err != nil {
				return err
			}

			if file != "" {
				NewOutput(cfg.Output, cmd.ErrOrStderr()).PrintMessage(fmt.Sprintf("Wrote %d bytes to %s", n, file))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Write to this file instead of stdout")

	return cmd
}
