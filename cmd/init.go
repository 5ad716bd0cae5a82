package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hookewild/curator/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create a curator.yml",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
