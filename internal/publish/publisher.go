// Package publish fans a completed run out to the optional report
// publishers: the SQLite run ledger, the AMQP report queue and the Google
// Sheets mirror.
package publish

import (
	"context"
	"errors"

	"sales/internal/core"
)

// Publisher delivers a completed run somewhere outside the report files.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, s core.Summary) error
}

// CleanupFunc releases the resources held by a publisher.
type CleanupFunc func() error

// Set holds the publishers built for one run and their cleanup functions.
type Set struct {
	Publishers []Publisher
	cleanups   []CleanupFunc
}

func (s *Set) add(p Publisher, cleanup CleanupFunc) {
	s.Publishers = append(s.Publishers, p)
	if cleanup != nil {
		s.cleanups = append(s.cleanups, cleanup)
	}
}

// Len returns the number of publishers in the set.
func (s *Set) Len() int {
	return len(s.Publishers)
}

// Close runs every cleanup function in reverse order of creation.
func (s *Set) Close() error {
	var errs []error
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		if err := s.cleanups[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.cleanups = nil
	return errors.Join(errs...)
}
