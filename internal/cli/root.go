package cli

import (
	"github.com/spf13/cobra"
)

// Version is the version of the pyplant CLI.
// Update this constant manually on every release.
const Version = "v0.1.0"

// NewRootCmd creates the root command for pyplant.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "pyplant",
		Short:   "PlantUML class diagrams for Python packages",
		Long:    "Pyplant inspects a Python package tree without running it and renders its classes, inheritance and composition as a PlantUML diagram.",
		Version: Version,
	}

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newRunsCmd())
	rootCmd.AddCommand(newMcpCmd())

	return rootCmd
}
