package commands

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/yshengliao/pathway/config"
	"github.com/yshengliao/pathway/router"
	"github.com/yshengliao/pathway/template"
)

func newLintCmd() *cobra.Command {
	var caseSensitive, trailingSlashSensitive bool

	cmd := &cobra.Command{
		Use:   "lint <routes.yaml>",
		Short: "Validate and compile every route template in a route file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rf, err := config.LoadRouteFile(args[0])
			if err != nil {
				return err
			}

			// Registering into a throwaway table exercises the same checks
			// the server performs: syntax, duplicate parameter names, and
			// structurally identical route pairs.
			table := router.New(template.Options{
				CaseSensitive:          caseSensitive,
				TrailingSlashSensitive: trailingSlashSensitive,
			}, nil)

			noop := func(echo.Context) error { return nil }
			failures := 0
			for _, rt := range rf.Routes {
				if _, err := table.Add(rt.Method, rt.Path, noop); err != nil {
					cmd.PrintErrf("FAIL %s %s: %v\n", rt.Method, rt.Path, err)
					failures++
				}
			}
			if failures > 0 {
				return fmt.Errorf("%d invalid route(s)", failures)
			}
			cmd.Printf("%d route(s) OK\n", len(rf.Routes))
			return nil
		},
	}

	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "compile templates case-sensitively")
	cmd.Flags().BoolVar(&trailingSlashSensitive, "trailing-slash-sensitive", false, "treat trailing slashes as significant")

	return cmd
}
