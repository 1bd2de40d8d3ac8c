package main

import (
	"github.com/spf13/cobra"
)

var dbDir string

var rootCmd = &cobra.Command{
	Use:     "enginedb",
	Short:   "enginedb - inspect and edit Engine DJ library databases",
	Long:    "enginedb reads and writes the on-disk music-library databases used by the Engine family of DJ hardware and software.",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbDir, "dir", ".", "database directory")
	rootCmd.AddCommand(newTracksCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newCratesCmd())
	rootCmd.AddCommand(newCrateCreateCmd())
	rootCmd.AddCommand(newRemoveTrackCmd())
	rootCmd.AddCommand(newRemoveCrateCmd())
}
