// Package sales implements the batch that totals sales records per branch
// (and optionally per commodity) and writes the per-entity reports.
//
// A run loads the definition files, checks that the record files form a
// contiguous sequence, applies every record to the running totals and only
// then writes the reports. The first failure aborts the run with a
// *core.Error and nothing is written.
package sales

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"sales/internal/core"
	"sales/internal/files"
	"sales/internal/log"
)

// DefinitionSpec describes one definition file and the report derived from it.
type DefinitionSpec struct {
	Kind        core.EntityKind
	FileName    string
	ReportName  string
	CodePattern *regexp.Regexp
}

var (
	BranchDefinitions = DefinitionSpec{
		Kind:        core.Branch,
		FileName:    "branch.lst",
		ReportName:  "branch.out",
		CodePattern: regexp.MustCompile(`^[0-9]{3}$`),
	}

	CommodityDefinitions = DefinitionSpec{
		Kind:        core.Commodity,
		FileName:    "commodity.lst",
		ReportName:  "commodity.out",
		CodePattern: regexp.MustCompile(`^[A-Za-z0-9]{8}$`),
	}
)

// LoadDefinitions reads def.FileName from dir into a table whose totals all
// start at zero. Any malformed line rejects the whole file.
func LoadDefinitions(ctx context.Context, dir string, def DefinitionSpec) (*core.Table, error) {
	logger := log.FromContext(ctx).WithComponent(log.ComponentDefinitions)
	path := filepath.Join(dir, def.FileName)

	ok, err := files.Exists(path)
	if err != nil {
		return nil, &core.Error{Kind: core.KindUnknown, Subject: def.Kind, File: def.FileName, Err: err}
	}
	if !ok {
		return nil, &core.Error{Kind: core.KindMissingFile, Subject: def.Kind, File: def.FileName}
	}

	lines, err := files.ReadLines(path)
	if err != nil {
		return nil, &core.Error{Kind: core.KindUnknown, Subject: def.Kind, File: def.FileName, Err: err}
	}

	table := core.NewTable(def.Kind)
	for i, line := range lines {
		fields := splitFields(line)
		if len(fields) != 2 || !def.CodePattern.MatchString(fields[0]) {
			logger.DebugContext(ctx, "Rejected definition line",
				log.FieldFile, def.FileName,
				"line", i+1)
			return nil, &core.Error{Kind: core.KindInvalidFormat, Subject: def.Kind, File: def.FileName}
		}
		table.Define(fields[0], fields[1])
	}

	logger.DebugContext(ctx, "Definitions loaded",
		log.FieldFile, def.FileName,
		log.FieldCount, table.Len())
	return table, nil
}

// splitFields splits a definition line on commas, dropping trailing empty
// fields so that "001,Tokyo," still yields two fields and "001," only one.
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}
