package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sales/internal/core"
	"sales/internal/log"
)

// Options selects the run mode.
type Options struct {
	// CommodityEnabled adds the commodity dimension: commodity.lst is
	// required, records carry three lines and commodity.out is written.
	CommodityEnabled bool

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run executes the whole batch over dir. Definitions are loaded first, then
// the record sequence is validated, every record is applied in order and
// finally the reports are written together. On error no report has been
// replaced, although totals of records applied before the failure were
// already accumulated in memory.
func Run(ctx context.Context, dir string, opts Options) (core.Summary, error) {
	logger := log.FromContext(ctx).WithComponent(log.ComponentApp)
	start := time.Now()

	abort := func(op string, err error) (core.Summary, error) {
		logger.DebugContext(ctx, "Run aborted", log.NewFields().
			WithOperation(op).
			WithError(err).
			ToSlice()...)
		return core.Summary{}, err
	}

	branches, err := LoadDefinitions(ctx, dir, BranchDefinitions)
	if err != nil {
		return abort(log.OpLoad, err)
	}

	var commodities *core.Table
	if opts.CommodityEnabled {
		commodities, err = LoadDefinitions(ctx, dir, CommodityDefinitions)
		if err != nil {
			return abort(log.OpLoad, err)
		}
	}

	records, err := DiscoverSequential(ctx, dir)
	if err != nil {
		return abort(log.OpDiscover, err)
	}

	agg := NewAggregator(branches, commodities)
	for _, name := range records {
		if err := agg.Apply(ctx, dir, name); err != nil {
			return abort(log.OpApply, err)
		}
	}

	reports := []Report{{FileName: BranchDefinitions.ReportName, Table: branches}}
	if commodities != nil {
		reports = append(reports, Report{FileName: CommodityDefinitions.ReportName, Table: commodities})
	}
	if err := WriteReports(ctx, dir, reports...); err != nil {
		return abort(log.OpWrite, err)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	summary := core.Summary{
		RunID:            uuid.NewString(),
		Directory:        dir,
		CommodityEnabled: commodities != nil,
		RecordCount:      agg.Applied(),
		CompletedAt:      now().UTC(),
		Branches:         branches.Entities(),
	}
	if commodities != nil {
		summary.Commodities = commodities.Entities()
	}

	logger.InfoContext(ctx, "Sales totals written",
		log.FieldRunID, summary.RunID,
		log.FieldDirectory, dir,
		log.FieldCount, summary.RecordCount,
		log.FieldDuration, time.Since(start).Milliseconds())
	return summary, nil
}
