// Package store persists pipeline runs and the page-scrape cache. The store
// is an operator convenience: stages stay re-runnable from their inputs
// alone, nothing here is a durability guarantee.
package store

import (
	"context"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Store is the persistence surface used by the pipeline and the CLI.
type Store interface {
	Migrate(ctx context.Context) error
	Close() error

	CreateRun(ctx context.Context, source string) (string, error)
	UpdateRun(ctx context.Context, id string, status model.RunStatus, result *model.RunResult) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	GetPage(ctx context.Context, pageURL string) (string, bool, error)
	PutPage(ctx context.Context, pageURL, text string) error
	DeleteExpiredPages(ctx context.Context) (int, error)
}
