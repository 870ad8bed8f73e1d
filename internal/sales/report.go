package sales

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"sales/internal/core"
	"sales/internal/files"
	"sales/internal/log"
)

// stagingSuffix marks a rendered report that has not replaced its target yet.
const stagingSuffix = ".tmp"

// Report pairs an output file name with the table rendered into it.
type Report struct {
	FileName string
	Table    *core.Table
}

// FormatReport renders one "code,name,total" line per entity in table order.
func FormatReport(table *core.Table) []string {
	entities := table.Entities()
	lines := make([]string, 0, len(entities))
	for _, e := range entities {
		lines = append(lines, e.Code+","+e.Name+","+strconv.FormatInt(e.Total, 10))
	}
	return lines
}

// WriteReport replaces dir/fileName with the rendered table.
func WriteReport(ctx context.Context, dir, fileName string, table *core.Table) error {
	return WriteReports(ctx, dir, Report{FileName: fileName, Table: table})
}

// WriteReports replaces every report file in dir. Each report is first
// written next to its target and the targets are only replaced once all of
// them were written, so a write failure leaves every existing report as it
// was.
func WriteReports(ctx context.Context, dir string, reports ...Report) error {
	logger := log.FromContext(ctx).WithComponent(log.ComponentReport)

	staged := make([]string, 0, len(reports))
	discard := func() {
		for _, path := range staged {
			_ = os.Remove(path)
		}
	}

	for _, r := range reports {
		target := filepath.Join(dir, r.FileName)
		tmp := target + stagingSuffix
		if err := files.WriteLines(tmp, FormatReport(r.Table)); err != nil {
			_ = os.Remove(tmp)
			discard()
			return &core.Error{Kind: core.KindUnknown, Subject: r.Table.Kind(), File: r.FileName, Err: err}
		}
		staged = append(staged, tmp)

		if info, err := os.Stat(target); err == nil && !info.Mode().IsRegular() {
			discard()
			err = fmt.Errorf("%s is not a regular file", target)
			return &core.Error{Kind: core.KindUnknown, Subject: r.Table.Kind(), File: r.FileName, Err: err}
		}
	}

	for i, r := range reports {
		if err := os.Rename(staged[i], filepath.Join(dir, r.FileName)); err != nil {
			discard()
			return &core.Error{Kind: core.KindUnknown, Subject: r.Table.Kind(), File: r.FileName, Err: err}
		}
		logger.DebugContext(ctx, "Report written",
			log.FieldFile, r.FileName,
			log.FieldCount, r.Table.Len())
	}
	return nil
}
