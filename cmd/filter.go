package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/fetcher"
	"github.com/sells-group/leadgen-cli/internal/registry"
)

var filterCmd = &cobra.Command{
	Use:   "filter <activity-csv>",
	Short: "Print entity numbers that pass the industry-code filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		f, err := os.Open(args[0])
		if err != nil {
			return eris.Wrap(err, "open activity file")
		}
		defer f.Close() //nolint:errcheck

		rows, err := fetcher.ParseActivityRows(ctx, f)
		if err != nil {
			return err
		}

		entityIDs := registry.FilterEntities(rows, filterRules())
		zap.L().Info("filter complete",
			zap.Int("activity_rows", len(rows)),
			zap.Int("relevant_entities", len(entityIDs)),
		)

		for _, id := range entityIDs {
			fmt.Println(id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
}
