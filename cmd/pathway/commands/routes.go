package commands

import (
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/yshengliao/pathway/config"
	"github.com/yshengliao/pathway/router"
	"github.com/yshengliao/pathway/template"
)

func newRoutesCmd() *cobra.Command {
	var caseSensitive, trailingSlashSensitive, group bool

	cmd := &cobra.Command{
		Use:   "routes <routes.yaml>",
		Short: "Print the compiled route table with parameters and fingerprints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rf, err := config.LoadRouteFile(args[0])
			if err != nil {
				return err
			}

			table := router.New(template.Options{
				CaseSensitive:          caseSensitive,
				TrailingSlashSensitive: trailingSlashSensitive,
			}, nil)
			noop := func(echo.Context) error { return nil }
			for _, rt := range rf.Routes {
				if _, err := table.Add(rt.Method, rt.Path, noop); err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			defer w.Flush()

			if group {
				groups := table.FingerprintGroups()
				fingerprints := make([]string, 0, len(groups))
				for fp := range groups {
					fingerprints = append(fingerprints, fp)
				}
				sort.Strings(fingerprints)
				for _, fp := range fingerprints {
					w.Write([]byte(fp + "\n"))
					for _, route := range groups[fp] {
						w.Write([]byte("\t" + route.Method() + "\t" + route.Template() + "\n"))
					}
				}
				return nil
			}

			w.Write([]byte("METHOD\tTEMPLATE\tPARAMS\tFINGERPRINT\n"))
			for _, route := range table.Routes() {
				w.Write([]byte(route.Method() + "\t" + route.Template() + "\t" +
					strings.Join(route.Params(), ",") + "\t" + route.Fingerprint() + "\n"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "compile templates case-sensitively")
	cmd.Flags().BoolVar(&trailingSlashSensitive, "trailing-slash-sensitive", false, "treat trailing slashes as significant")
	cmd.Flags().BoolVar(&group, "group", false, "group routes by fingerprint")

	return cmd
}
