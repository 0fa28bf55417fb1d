package fetcher

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/registry"
)

// Entry names expected inside a registry export archive.
const (
	ActivityFileName   = "activity_insert.csv"
	EnterpriseFileName = "enterprise_insert.csv"
)

// ParseActivityRows reads the registry activity export: one industry-code
// assignment per row. Rows with an unparsable code-scheme version are
// skipped with a warning rather than failing the import.
func ParseActivityRows(ctx context.Context, r io.Reader) ([]registry.ActivityRow, error) {
	// Cancel on early return so the producer goroutine does not stay
	// blocked on a full row channel.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	rowCh, errCh := StreamCSV(ctx, r, CSVOptions{TrimSpace: true})

	var h header
	var rows []registry.ActivityRow
	skipped := 0
	for row := range rowCh {
		if h == nil {
			h = headerIndex(row)
			if miss := h.missing("EntityNumber", "NaceVersion", "NaceCode"); len(miss) > 0 {
				return nil, eris.Errorf("fetcher: activity export missing column(s): %s", strings.Join(miss, ", "))
			}
			continue
		}
		version, err := strconv.Atoi(h.field(row, "NaceVersion"))
		if err != nil {
			skipped++
			continue
		}
		rows = append(rows, registry.ActivityRow{
			EntityNumber: h.field(row, "EntityNumber"),
			NaceVersion:  version,
			NaceCode:     h.field(row, "NaceCode"),
		})
	}
	if err := <-errCh; err != nil {
		return nil, err
	}
	if h == nil {
		return nil, eris.New("fetcher: activity export is empty")
	}
	if skipped > 0 {
		zap.L().Warn("fetcher: skipped activity rows with bad version", zap.Int("rows", skipped))
	}
	return rows, nil
}

// ParseCompanies reads an uploaded company CSV into records. Name and
// Website URL are required; Email and People enrich the output when present.
// A missing required column is a hard failure, no partial processing.
func ParseCompanies(ctx context.Context, r io.Reader) ([]model.CompanyRecord, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	rowCh, errCh := StreamCSV(ctx, r, CSVOptions{TrimSpace: true})

	var h header
	var recs []model.CompanyRecord
	for row := range rowCh {
		if h == nil {
			h = headerIndex(row)
			if miss := h.missing("Name", "Website URL"); len(miss) > 0 {
				return nil, eris.Errorf("fetcher: CSV not well formatted, missing column(s): %s", strings.Join(miss, ", "))
			}
			continue
		}
		name := h.field(row, "Name")
		if name == "" {
			continue
		}
		recs = append(recs, model.CompanyRecord{
			Name:    name,
			Website: h.field(row, "Website URL"),
			Email:   h.field(row, "Email"),
			People:  h.field(row, "People"),
		})
	}
	if err := <-errCh; err != nil {
		return nil, err
	}
	if h == nil {
		return nil, eris.New("fetcher: company CSV is empty")
	}
	return recs, nil
}
