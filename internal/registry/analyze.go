package registry

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// DetailOutcome tags the result of analyzing one entity.
type DetailOutcome int

const (
	// OutcomeIncluded means the entity passed all rules and carries a record.
	OutcomeIncluded DetailOutcome = iota
	// OutcomeExcluded means an inclusion rule rejected the entity.
	OutcomeExcluded
	// OutcomeNoDetail means both fetch attempts failed.
	OutcomeNoDetail
)

// DetailResult is the tagged per-entity result of the detail stage. Exactly
// one of Record (OutcomeIncluded) or Reason (OutcomeExcluded/OutcomeNoDetail)
// is meaningful.
type DetailResult struct {
	EntityID string
	Outcome  DetailOutcome
	Reason   ExclusionReason
	Record   *model.CompanyRecord
}

// Analyzer runs the full detail stage for one entity: fetch, extract,
// validate.
type Analyzer struct {
	fetcher         *Fetcher
	freeMailDomains []string
	yearCutoff      int
}

// NewAnalyzer builds an Analyzer around a Fetcher and the inclusion-rule
// parameters.
func NewAnalyzer(fetcher *Fetcher, freeMailDomains []string, foundingYearCutoff int) *Analyzer {
	return &Analyzer{
		fetcher:         fetcher,
		freeMailDomains: freeMailDomains,
		yearCutoff:      foundingYearCutoff,
	}
}

// Analyze fetches and validates one entity. Failures never propagate as
// errors: a fetch that exhausts its retry degrades to OutcomeNoDetail and a
// rule violation to OutcomeExcluded, so one bad entity cannot abort a batch.
func (a *Analyzer) Analyze(ctx context.Context, entityID string) DetailResult {
	detail, err := a.fetcher.FetchDetail(ctx, entityID)
	if err != nil {
		zap.L().Debug("registry: detail unavailable",
			zap.String("entity", entityID),
			zap.Error(err),
		)
		return DetailResult{EntityID: entityID, Outcome: OutcomeNoDetail, Reason: ReasonNoDetail}
	}

	ex := Extract(detail, a.freeMailDomains)

	if reason := Validate(ex, a.yearCutoff); reason != ReasonNone {
		zap.L().Debug("registry: entity excluded",
			zap.String("entity", entityID),
			zap.String("reason", string(reason)),
		)
		return DetailResult{EntityID: entityID, Outcome: OutcomeExcluded, Reason: reason}
	}

	return DetailResult{
		EntityID: entityID,
		Outcome:  OutcomeIncluded,
		Record: &model.CompanyRecord{
			EntityID:     entityID,
			Name:         ex.Name,
			Founders:     ex.Founders,
			FoundingYear: ex.FoundingYear,
			Email:        ex.Email,
			Website:      ex.Website,
			RawDetail:    detail,
		},
	}
}
