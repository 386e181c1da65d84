package ports

import (
	"context"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
)

// LookupLog stores request metadata for served pipeline calls.
type LookupLog interface {
	Record(ctx context.Context, rec domain.LookupRecord) error
	Recent(ctx context.Context, limit int) ([]domain.LookupRecord, error)
}
