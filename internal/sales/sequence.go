package sales

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"sales/internal/core"
	"sales/internal/files"
	"sales/internal/log"
)

var recordFilePattern = regexp.MustCompile(`^[0-9]{8}\.rcd$`)

// DiscoverSequential returns the record file names in dir sorted ascending.
// Their eight-digit prefixes must increase by exactly one from each file to
// the next; the first gap fails with NonSequentialFiles before any record is
// opened.
func DiscoverSequential(ctx context.Context, dir string) ([]string, error) {
	logger := log.FromContext(ctx).WithComponent(log.ComponentSequence)

	names, err := files.ListRegularFiles(dir)
	if err != nil {
		return nil, &core.Error{Kind: core.KindUnknown, Err: err}
	}

	var records []string
	for _, name := range names {
		if recordFilePattern.MatchString(name) {
			records = append(records, name)
		}
	}
	sort.Strings(records)

	for i := 0; i+1 < len(records); i++ {
		former, err := sequenceNumber(records[i])
		if err != nil {
			return nil, &core.Error{Kind: core.KindUnknown, File: records[i], Err: err}
		}
		latter, err := sequenceNumber(records[i+1])
		if err != nil {
			return nil, &core.Error{Kind: core.KindUnknown, File: records[i+1], Err: err}
		}
		if latter-former != 1 {
			logger.DebugContext(ctx, "Record sequence gap",
				"former", records[i],
				"latter", records[i+1])
			return nil, &core.Error{Kind: core.KindNonSequentialFiles, File: records[i+1]}
		}
	}

	logger.DebugContext(ctx, "Record files discovered",
		log.FieldDirectory, dir,
		log.FieldCount, len(records))
	return records, nil
}

func sequenceNumber(name string) (int, error) {
	if len(name) < 8 {
		return 0, fmt.Errorf("record name %q too short", name)
	}
	return strconv.Atoi(name[:8])
}
