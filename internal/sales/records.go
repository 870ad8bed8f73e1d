package sales

import (
	"context"
	"errors"
	"path/filepath"

	"sales/internal/core"
	"sales/internal/files"
	"sales/internal/log"
)

// Aggregator applies record files to the totals of the tables it was built
// with. A nil commodity table selects two-line records (branch, amount);
// otherwise records carry three lines (branch, commodity, amount).
type Aggregator struct {
	branches    *core.Table
	commodities *core.Table
	applied     int
}

func NewAggregator(branches, commodities *core.Table) *Aggregator {
	return &Aggregator{
		branches:    branches,
		commodities: commodities,
	}
}

// Applied returns the number of records committed so far.
func (a *Aggregator) Applied() int {
	return a.applied
}

func (a *Aggregator) expectedLines() int {
	if a.commodities != nil {
		return 3
	}
	return 2
}

type posting struct {
	table *core.Table
	code  string
	total int64
}

// Apply reads one record file and adds its amount to every referenced total.
// Either all totals of the record are updated or, on any error, none are.
func (a *Aggregator) Apply(ctx context.Context, dir, name string) error {
	logger := log.FromContext(ctx).WithComponent(log.ComponentAggregate)

	lines, err := files.ReadLines(filepath.Join(dir, name))
	if err != nil {
		return core.NewError(core.KindUnknown, name, err)
	}
	if len(lines) != a.expectedLines() {
		return core.NewError(core.KindRecordInvalidFormat, name, nil)
	}

	branchCode := lines[0]
	if !a.branches.Has(branchCode) {
		return &core.Error{Kind: core.KindInvalidCode, Subject: core.Branch, File: name}
	}
	postings := []posting{{table: a.branches, code: branchCode}}

	if a.commodities != nil {
		commodityCode := lines[1]
		if !a.commodities.Has(commodityCode) {
			return &core.Error{Kind: core.KindInvalidCode, Subject: core.Commodity, File: name}
		}
		postings = append(postings, posting{table: a.commodities, code: commodityCode})
	}

	amount, err := core.ParseAmount(lines[len(lines)-1])
	if err != nil {
		if errors.Is(err, core.ErrAmountOverflow) {
			return core.NewError(core.KindAmountOverflow, name, err)
		}
		return core.NewError(core.KindUnknown, name, err)
	}

	for i := range postings {
		p := &postings[i]
		total, err := core.AddAmount(p.table.Total(p.code), amount)
		if err != nil {
			return &core.Error{Kind: core.KindAmountOverflow, Subject: p.table.Kind(), File: name, Err: err}
		}
		p.total = total
	}

	for _, p := range postings {
		if err := p.table.SetTotal(p.code, p.total); err != nil {
			return core.NewError(core.KindUnknown, name, err)
		}
		logger.DebugContext(ctx, "Record applied", log.NewFields().
			WithFile(name).
			WithPosting(string(p.table.Kind()), p.code, amount, p.total).
			ToSlice()...)
	}
	a.applied++
	return nil
}
