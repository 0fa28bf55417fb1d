package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/internal/classify"
	"github.com/sells-group/leadgen-cli/internal/pipeline"
	"github.com/sells-group/leadgen-cli/internal/registry"
	"github.com/sells-group/leadgen-cli/internal/resolve"
	"github.com/sells-group/leadgen-cli/internal/store"
	"github.com/sells-group/leadgen-cli/pkg/anthropic"
	"github.com/sells-group/leadgen-cli/pkg/dataforseo"
	"github.com/sells-group/leadgen-cli/pkg/scrapin"
	"github.com/sells-group/leadgen-cli/pkg/scrapingbee"
)

func filterRules() registry.FilterRules {
	return registry.FilterRules{
		NaceVersion:     cfg.Filter.NaceVersion,
		IncludePrefixes: cfg.Filter.IncludePrefixes,
		ExcludePrefixes: cfg.Filter.ExcludePrefixes,
	}
}

func initStore(ctx context.Context) (*store.SQLiteStore, error) {
	st, err := store.NewSQLite(cfg.Store.Path, time.Duration(cfg.Pipeline.CacheTTLHours)*time.Hour)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

func newAnalyzer() (*registry.Analyzer, error) {
	fetcher, err := registry.NewFetcher(cfg.Registry)
	if err != nil {
		return nil, eris.Wrap(err, "init registry fetcher")
	}
	return registry.NewAnalyzer(fetcher, cfg.Filter.FreeMailDomains, cfg.Filter.FoundingYearCutoff), nil
}

func newResolver() *resolve.Resolver {
	serp := dataforseo.NewClient(cfg.Serp.Auth, dataforseo.WithBaseURL(cfg.Serp.BaseURL))
	enrich := scrapin.NewClient(cfg.Scrapin.Key, scrapin.WithBaseURL(cfg.Scrapin.BaseURL))
	return resolve.NewResolver(serp, enrich, cfg.Serp)
}

func newClassifier(cache classify.PageCache) *classify.Classifier {
	crawler := scrapingbee.NewClient(cfg.ScrapingBee.Key, scrapingbee.WithBaseURL(cfg.ScrapingBee.BaseURL))
	llm := anthropic.NewClient(cfg.Anthropic.Key)
	return classify.NewClassifier(crawler, llm, cache, cfg.Anthropic.Model)
}

// newPipeline wires the full stage chain. st may be nil to skip run
// accounting and the page cache.
func newPipeline(st *store.SQLiteStore) (*pipeline.Pipeline, error) {
	analyzer, err := newAnalyzer()
	if err != nil {
		return nil, err
	}
	var cache classify.PageCache
	var runs pipeline.RunStore
	if st != nil {
		cache = st
		runs = st
	}
	return pipeline.New(
		analyzer,
		newResolver(),
		newClassifier(cache),
		runs,
		cfg.Pipeline,
		cfg.Registry,
	), nil
}
