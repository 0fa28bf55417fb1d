package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/registry"
)

// screenResult is the printable form of a single detail-stage outcome.
type screenResult struct {
	EntityID string               `json:"entity_id"`
	Included bool                 `json:"included"`
	Reason   string               `json:"reason,omitempty"`
	Record   *model.CompanyRecord `json:"record,omitempty"`
}

var screenCmd = &cobra.Command{
	Use:   "screen <entity-number>...",
	Short: "Fetch registry details and apply inclusion rules to entities",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		analyzer, err := newAnalyzer()
		if err != nil {
			return err
		}

		results := make([]screenResult, 0, len(args))
		for _, id := range args {
			res := analyzer.Analyze(ctx, id)
			results = append(results, screenResult{
				EntityID: res.EntityID,
				Included: res.Outcome == registry.OutcomeIncluded,
				Reason:   string(res.Reason),
				Record:   res.Record,
			})
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)
}
