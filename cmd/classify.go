package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/model"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <website-url>",
	Short: "Screen and classify a single company website",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		screen, cls := newClassifier(st).Classify(ctx, args[0])

		out := struct {
			Website        string               `json:"website"`
			Screen         model.Screen         `json:"screen"`
			Classification model.Classification `json:"classification"`
		}{
			Website:        args[0],
			Screen:         screen,
			Classification: cls,
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
