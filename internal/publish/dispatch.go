package publish

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"sales/internal/core"
	"sales/internal/log"
)

// Dispatch hands the summary to every publisher concurrently under a shared
// deadline. Every publisher runs to completion; the failures are returned
// joined, each prefixed with the publisher name.
func Dispatch(ctx context.Context, logger *log.Logger, timeout time.Duration, publishers []Publisher, s core.Summary) error {
	if len(publishers) == 0 {
		return nil
	}
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentPublish)

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var (
		mu   sync.Mutex
		errs []error
	)

	// Plain errgroup.Group: one failing publisher must not cancel the others.
	var g errgroup.Group
	for _, p := range publishers {
		p := p
		g.Go(func() error {
			start := time.Now()
			err := p.Publish(ctx, s)
			fields := []any{
				log.FieldPublisher, p.Name(),
				log.FieldRunID, s.RunID,
				log.FieldDuration, time.Since(start).Milliseconds(),
				log.FieldSuccess, err == nil,
				log.FieldOperation, log.OpPublish,
			}
			if err != nil {
				logger.ErrorContext(ctx, "Report publisher failed", append(fields, log.FieldError, err.Error())...)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
				mu.Unlock()
				return nil
			}
			logger.InfoContext(ctx, "Report published", fields...)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}
