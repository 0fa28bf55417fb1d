package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/expand"
	"github.com/sells-group/leadgen-cli/internal/export"
	"github.com/sells-group/leadgen-cli/internal/fetcher"
	"github.com/sells-group/leadgen-cli/internal/model"
)

var expandOut string

var expandCmd = &cobra.Command{
	Use:   "expand <companies-csv>",
	Short: "Expand a companies CSV into per-person contact rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		f, err := os.Open(args[0])
		if err != nil {
			return eris.Wrap(err, "open companies file")
		}
		defer f.Close() //nolint:errcheck

		recs, err := fetcher.ParseCompanies(ctx, f)
		if err != nil {
			return err
		}

		var contacts []model.ContactRecord
		for _, rec := range recs {
			contacts = append(contacts, expand.Contacts(rec)...)
		}

		zap.L().Info("contacts expanded",
			zap.Int("companies", len(recs)),
			zap.Int("contacts", len(contacts)),
		)

		return writeCSVFile(expandOut, func(out *os.File) error {
			return export.WriteContacts(out, contacts)
		})
	},
}

func init() {
	expandCmd.Flags().StringVar(&expandOut, "out", "contacts.csv", "output path for the contacts CSV")
	rootCmd.AddCommand(expandCmd)
}
