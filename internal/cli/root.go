package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "badanctl",
		Short: "CLI tool for the Badan Cup registration server",
		Long: `badanctl talks to a running Badan Cup registration server.

It can check server health, list villages, register players and, with the
admin code, list or export the roster.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			client = NewClient(cfg.ServerURL, cfg.AdminCode)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: BADAN_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.AdminCode, "admin-code", cfg.AdminCode, "Admin access code (env: BADAN_ADMIN_CODE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newVillagesCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newPlayersCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
