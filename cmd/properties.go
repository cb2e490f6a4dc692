package cmd

import (
	"context"
	"io"
	"sort"
	"strconv"

	"nutrient-sync/core/config"
	"nutrient-sync/core/httpclient"
	"nutrient-sync/feature/catalog"
	"nutrient-sync/feature/report"

	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var propertiesLogLevel string

// propertiesCmd lists the catalog's property types and their FDC links.
var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "List catalog property types and their FDC nutrient IDs",
	Long: `List every property type defined in the catalog with the FDC nutrient ID it
is linked to. Property types without an FDC ID are never filled by sync.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, _, err := loadRuntime(propertiesLogLevel, (*config.Config).ValidateCatalog)
		if err != nil {
			return err
		}
		defer l.Sync()

		return listProperties(cmd.Context(), cfg, cmd.OutOrStdout(), l)
	},
}

func init() {
	propertiesCmd.Flags().StringVarP(&propertiesLogLevel, "log-level", "l", "", "Log level (trace, debug, info, warn, error)")
	RootCmd.AddCommand(propertiesCmd)
}

func listProperties(ctx context.Context, cfg *config.Config, out io.Writer, l *zap.Logger, httpOpts ...httpclient.Option) error {
	client, err := catalog.NewClient(cfg.Catalog, l, httpOpts...)
	if err != nil {
		return err
	}
	types, err := client.FetchPropertyTypes(ctx)
	if err != nil {
		return err
	}

	sort.SliceStable(types, func(i, j int) bool { return types[i].Name < types[j].Name })

	rows := make([][]string, 0, len(types))
	unlinked := 0
	for _, t := range types {
		id, status := "", "linked"
		if t.CrossRefID != nil {
			id = strconv.Itoa(*t.CrossRefID)
		} else {
			status = "no FDC ID"
			unlinked++
		}
		rows = append(rows, []string{t.Name, id, status})
	}

	if unlinked > 0 {
		l.Warn("Some property types have no FDC ID and will never be filled", zap.Int("count", unlinked))
	}

	return report.Table(out, []string{"Property", "FDC ID", "Status"}, rows, []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignLeft})
}
