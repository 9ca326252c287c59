package commands

import (
	"github.com/spf13/cobra"
)

func Execute(version string) error {
	rootCmd := &cobra.Command{
		Use:   "pathway",
		Short: "Pathway - path-template routing toolkit CLI",
		Long: `Pathway compiles declarative URL path templates into reusable matchers.

This CLI validates route files, inspects compiled routes and their
fingerprints, and runs a development server over a route file.`,
		Version: version,
	}

	rootCmd.AddCommand(newLintCmd())
	rootCmd.AddCommand(newRoutesCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd.Execute()
}
