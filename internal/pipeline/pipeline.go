// Package pipeline orchestrates the enrichment stages: registry detail
// scraping, profile resolution, website classification, and contact
// expansion, with bounded ordered worker pools and chunked rate shaping.
package pipeline

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/expand"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/registry"
	"github.com/sells-group/leadgen-cli/internal/resolve"
)

// DetailAnalyzer runs the registry detail stage for one entity.
type DetailAnalyzer interface {
	Analyze(ctx context.Context, entityID string) registry.DetailResult
}

// ProfileResolver finds a founder profile and company website.
type ProfileResolver interface {
	Resolve(ctx context.Context, companyName string, founders []string) resolve.Resolution
}

// WebsiteClassifier screens and classifies a company website.
type WebsiteClassifier interface {
	Classify(ctx context.Context, websiteURL string) (model.Screen, model.Classification)
}

// RunStore records pipeline invocations.
type RunStore interface {
	CreateRun(ctx context.Context, source string) (string, error)
	UpdateRun(ctx context.Context, id string, status model.RunStatus, result *model.RunResult) error
}

// Output is the final product of a pipeline invocation.
type Output struct {
	Companies []model.CompanyRecord
	Contacts  []model.ContactRecord
	Result    model.RunResult
}

// Pipeline wires the stage implementations together.
type Pipeline struct {
	analyzer   DetailAnalyzer
	resolver   ProfileResolver
	classifier WebsiteClassifier
	normalizer *Normalizer
	runs       RunStore // optional

	cfg      config.PipelineConfig
	registry config.RegistryConfig

	// overridable in tests
	jitter func(ctx context.Context) error
	pause  func(ctx context.Context) error
}

// New builds a Pipeline. runs may be nil to skip run accounting.
func New(analyzer DetailAnalyzer, resolver ProfileResolver, classifier WebsiteClassifier, runs RunStore, cfg config.PipelineConfig, registryCfg config.RegistryConfig) *Pipeline {
	p := &Pipeline{
		analyzer:   analyzer,
		resolver:   resolver,
		classifier: classifier,
		normalizer: NewNormalizer(nil),
		runs:       runs,
		cfg:        cfg,
		registry:   registryCfg,
	}
	p.jitter = func(ctx context.Context) error {
		return sleep(ctx, jitterDuration(registryCfg.MinJitterSecs, registryCfg.MaxJitterSecs))
	}
	p.pause = func(ctx context.Context) error {
		return sleep(ctx, time.Duration(cfg.ChunkPauseSecs)*time.Second)
	}
	return p
}

// EnrichEntities runs the full pipeline over filtered registry entity
// numbers: detail scrape, resolution, classification, expansion.
func (p *Pipeline) EnrichEntities(ctx context.Context, entityIDs []string) (*Output, error) {
	runID := p.startRun(ctx, "zip")
	out, err := p.enrichEntities(ctx, entityIDs)
	p.finishRun(ctx, runID, out, err)
	return out, err
}

// EnrichCompanies runs the short path for an uploaded company CSV:
// website normalization, classification, expansion. The registry and
// resolution stages are skipped because the upload already names websites.
func (p *Pipeline) EnrichCompanies(ctx context.Context, recs []model.CompanyRecord) (*Output, error) {
	runID := p.startRun(ctx, "csv")
	out, err := p.enrichCompanies(ctx, recs)
	p.finishRun(ctx, runID, out, err)
	return out, err
}

func (p *Pipeline) enrichEntities(ctx context.Context, entityIDs []string) (*Output, error) {
	records, err := p.scrapeDetails(ctx, entityIDs)
	if err != nil {
		return nil, err
	}
	if err := p.resolveWebsites(ctx, records); err != nil {
		return nil, err
	}
	resolved := 0
	for _, rec := range records {
		if rec.Website != "" {
			resolved++
		}
	}
	if err := p.classifyAll(ctx, records); err != nil {
		return nil, err
	}
	out := p.expandAll(records)
	out.Result.Candidates = len(entityIDs)
	out.Result.Screened = len(records)
	out.Result.Resolved = resolved
	return out, nil
}

func (p *Pipeline) enrichCompanies(ctx context.Context, recs []model.CompanyRecord) (*Output, error) {
	normalized, err := p.normalizer.NormalizeAll(ctx, recs)
	if err != nil {
		return nil, err
	}
	if err := p.classifyAll(ctx, normalized); err != nil {
		return nil, err
	}
	out := p.expandAll(normalized)
	out.Result.Candidates = len(recs)
	out.Result.Screened = len(normalized)
	out.Result.Resolved = len(normalized)
	return out, nil
}

// scrapeDetails fetches and validates registry details in chunks, pausing
// between chunks to stay under the registry's abuse threshold. Excluded and
// no-detail entities are dropped here.
func (p *Pipeline) scrapeDetails(ctx context.Context, entityIDs []string) ([]model.CompanyRecord, error) {
	var included []model.CompanyRecord
	var done atomic.Int64
	total := len(entityIDs)

	chunks := Chunks(entityIDs, p.cfg.ChunkSize)
	for ci, chunk := range chunks {
		results, err := Map(ctx, p.registry.Workers, chunk, func(ctx context.Context, id string) (registry.DetailResult, error) {
			if err := p.jitter(ctx); err != nil {
				return registry.DetailResult{}, err
			}
			res := p.analyzer.Analyze(ctx, id)
			zap.L().Info("pipeline: registry progress",
				zap.Int64("done", done.Add(1)),
				zap.Int("total", total))
			return res, nil
		})
		if err != nil {
			return nil, err
		}
		for _, res := range results {
			if res.Outcome == registry.OutcomeIncluded {
				included = append(included, *res.Record)
			}
		}
		if ci < len(chunks)-1 {
			if err := p.pause(ctx); err != nil {
				return nil, err
			}
		}
	}
	return included, nil
}

// resolveWebsites fills in missing websites via founder profile search.
// Only records still lacking a website after the detail stage are touched.
func (p *Pipeline) resolveWebsites(ctx context.Context, records []model.CompanyRecord) error {
	var missing []int
	for i, rec := range records {
		if rec.Website == "" {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	resolutions, err := Map(ctx, p.cfg.Workers, missing, func(ctx context.Context, i int) (resolve.Resolution, error) {
		return p.resolver.Resolve(ctx, records[i].Name, records[i].Founders), nil
	})
	if err != nil {
		return err
	}
	for j, i := range missing {
		res := resolutions[j]
		records[i].LinkedInProfile = res.ProfileURL
		records[i].LinkedInCompanyURL = res.CompanyLinkedInURL
		records[i].Website = res.CompanyWebsite
	}
	return nil
}

// classifyAll screens and classifies every record with a website.
func (p *Pipeline) classifyAll(ctx context.Context, records []model.CompanyRecord) error {
	var targets []int
	for i, rec := range records {
		if rec.Website != "" {
			targets = append(targets, i)
		}
	}

	type verdict struct {
		screen model.Screen
		cls    model.Classification
	}
	verdicts, err := Map(ctx, p.cfg.Workers, targets, func(ctx context.Context, i int) (verdict, error) {
		screen, cls := p.classifier.Classify(ctx, records[i].Website)
		return verdict{screen: screen, cls: cls}, nil
	})
	if err != nil {
		return err
	}
	for j, i := range targets {
		records[i].Screen = verdicts[j].screen
		records[i].Classification = verdicts[j].cls
	}
	return nil
}

// expandAll fans each company out into contact records. Records without a
// people field fall back to the founder list.
func (p *Pipeline) expandAll(records []model.CompanyRecord) *Output {
	out := &Output{Companies: records}
	classified := 0
	for i := range records {
		if records[i].Screen != model.ScreenUnknown && records[i].Classification.Sentinel == model.SentinelNone {
			classified++
		}
		if records[i].People == "" && len(records[i].Founders) > 0 {
			records[i].People = strings.Join(records[i].Founders, "; ")
		}
		out.Contacts = append(out.Contacts, expand.Contacts(records[i])...)
	}
	out.Result.Classified = classified
	out.Result.Contacts = len(out.Contacts)
	return out
}

func (p *Pipeline) startRun(ctx context.Context, source string) string {
	if p.runs == nil {
		return ""
	}
	id, err := p.runs.CreateRun(ctx, source)
	if err != nil {
		zap.L().Warn("pipeline: create run failed", zap.Error(err))
		return ""
	}
	if err := p.runs.UpdateRun(ctx, id, model.RunStatusRunning, nil); err != nil {
		zap.L().Warn("pipeline: update run failed", zap.Error(err))
	}
	return id
}

func (p *Pipeline) finishRun(ctx context.Context, runID string, out *Output, runErr error) {
	if p.runs == nil || runID == "" {
		return
	}
	status := model.RunStatusComplete
	result := &model.RunResult{}
	if out != nil {
		*result = out.Result
	}
	if runErr != nil {
		status = model.RunStatusFailed
		result.Error = runErr.Error()
	}
	if err := p.runs.UpdateRun(ctx, runID, status, result); err != nil {
		zap.L().Warn("pipeline: update run failed", zap.Error(err))
	}
}

func jitterDuration(minSecs, maxSecs int) time.Duration {
	if maxSecs <= minSecs {
		return time.Duration(minSecs) * time.Second
	}
	secs := float64(minSecs) + rand.Float64()*float64(maxSecs-minSecs)
	return time.Duration(secs * float64(time.Second))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
