package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "curator",
	Short: "Content catalog and curator for a wilding farm site",
	Long: `Curator serves the interactive catalog behind a wilding farm website:
feature entries with map pins, a guided tour, a media library, a species
field guide, and a photo gallery. Shipped content stays read-only; curator
edits are layered on top and can always be reset.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "curator.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
