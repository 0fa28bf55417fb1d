// Package fetcher parses the uploaded inputs: registry export archives and
// company CSVs.
package fetcher

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// CSVOptions configures the streaming CSV parser.
type CSVOptions struct {
	Delimiter  rune // default ','
	LazyQuotes bool
	TrimSpace  bool
}

// StreamCSV reads CSV rows into a channel, header included as the first row.
// The caller must drain the row channel; both channels close when parsing
// finishes. Registry exports run to millions of rows, so rows are streamed
// rather than materialized.
func StreamCSV(ctx context.Context, r io.Reader, opts CSVOptions) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		reader := csv.NewReader(r)
		if opts.Delimiter != 0 {
			reader.Comma = opts.Delimiter
		}
		reader.LazyQuotes = opts.LazyQuotes
		reader.FieldsPerRecord = -1

		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "csv: read row")
				return
			}

			if opts.TrimSpace {
				for i, field := range record {
					record[i] = strings.TrimSpace(field)
				}
			}

			select {
			case rowCh <- record:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

// header maps column names to their index, for exports whose column order
// is not guaranteed.
type header map[string]int

func headerIndex(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		h[strings.TrimSpace(name)] = i
	}
	return h
}

// field returns the named column of the row, or empty when the row is short.
func (h header) field(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// missing lists the required columns absent from the header, preserving the
// requested order.
func (h header) missing(required ...string) []string {
	var out []string
	for _, name := range required {
		if _, ok := h[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}
