package cli

import (
	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var name, phone, village, team string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"name":    name,
				"phone":   phone,
				"village": village,
				"team":    team,
			}
			var result RegisterResult

			if err := client.Post(cmd.Context(), "/api/v1/players", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&village, "village", "", "Village (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&team, "team", "", "Team name")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("village")

	return cmd
}
