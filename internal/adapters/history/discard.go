// Package history holds lookup log implementations that need no storage.
package history

import (
	"context"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
	"github.com/ewilliams-labs/reelvibe/internal/core/ports"
)

// Discard is the lookup log used when storage is disabled.
type Discard struct{}

var _ ports.LookupLog = Discard{}

func (Discard) Record(context.Context, domain.LookupRecord) error { return nil }

// Recent always returns an empty, non-nil slice.
func (Discard) Recent(context.Context, int) ([]domain.LookupRecord, error) {
	return []domain.LookupRecord{}, nil
}
