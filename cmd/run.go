package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/export"
	"github.com/sells-group/leadgen-cli/internal/fetcher"
	"github.com/sells-group/leadgen-cli/internal/pipeline"
	"github.com/sells-group/leadgen-cli/internal/registry"
)

var (
	runCompaniesOut string
	runContactsOut  string
)

var runCmd = &cobra.Command{
	Use:   "run <input-file>",
	Short: "Run the full enrichment pipeline on a registry export or company CSV",
	Long: `Run enrichment end to end. The input is either a registry export ZIP
(containing activity_insert.csv and enterprise_insert.csv) or a CSV of
companies with Name and Website URL columns.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrap(err, "read input file")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		p, err := newPipeline(st)
		if err != nil {
			return err
		}

		var out *pipeline.Output
		if fetcher.IsArchive(data) {
			out, err = runArchive(ctx, p, data)
		} else {
			out, err = runCompanyCSV(ctx, p, data)
		}
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		if err := writeCSVFile(runCompaniesOut, func(f *os.File) error {
			return export.WriteCompanies(f, out.Companies)
		}); err != nil {
			return err
		}
		if err := writeCSVFile(runContactsOut, func(f *os.File) error {
			return export.WriteContacts(f, out.Contacts)
		}); err != nil {
			return err
		}

		zap.L().Info("enrichment complete",
			zap.Int("candidates", out.Result.Candidates),
			zap.Int("screened", out.Result.Screened),
			zap.Int("classified", out.Result.Classified),
			zap.Int("contacts", out.Result.Contacts),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out.Result)
	},
}

func runArchive(ctx context.Context, p *pipeline.Pipeline, data []byte) (*pipeline.Output, error) {
	files, err := fetcher.ReadArchive(data)
	if err != nil {
		return nil, err
	}
	activity, ok := files[fetcher.ActivityFileName]
	if !ok {
		return nil, eris.Errorf("archive is missing %s", fetcher.ActivityFileName)
	}
	if _, ok := files[fetcher.EnterpriseFileName]; !ok {
		return nil, eris.Errorf("archive is missing %s", fetcher.EnterpriseFileName)
	}

	rows, err := fetcher.ParseActivityRows(ctx, bytes.NewReader(activity))
	if err != nil {
		return nil, err
	}
	entityIDs := registry.FilterEntities(rows, filterRules())
	zap.L().Info("archive parsed",
		zap.Int("activity_rows", len(rows)),
		zap.Int("relevant_entities", len(entityIDs)),
	)
	return p.EnrichEntities(ctx, entityIDs)
}

func runCompanyCSV(ctx context.Context, p *pipeline.Pipeline, data []byte) (*pipeline.Output, error) {
	recs, err := fetcher.ParseCompanies(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	zap.L().Info("company csv parsed", zap.Int("companies", len(recs)))
	return p.EnrichCompanies(ctx, recs)
}

func writeCSVFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer f.Close() //nolint:errcheck
	if err := write(f); err != nil {
		return err
	}
	return eris.Wrapf(f.Close(), "close %s", path)
}

func init() {
	runCmd.Flags().StringVar(&runCompaniesOut, "companies-out", "cbe_website.csv", "output path for the enriched companies CSV")
	runCmd.Flags().StringVar(&runContactsOut, "contacts-out", "contacts.csv", "output path for the expanded contacts CSV")
	rootCmd.AddCommand(runCmd)
}
