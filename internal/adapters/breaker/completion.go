package breaker

import (
	"context"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/ewilliams-labs/reelvibe/internal/core/ports"
	"github.com/ewilliams-labs/reelvibe/internal/logging"
)

// Completion guards a CompletionGateway.
type Completion struct {
	next   ports.CompletionGateway
	cb     *gobreaker.CircuitBreaker[string]
	logger zerolog.Logger
}

var _ ports.CompletionGateway = (*Completion)(nil)

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCompletion(next ports.CompletionGateway, s Settings, logger zerolog.Logger) *Completion {
	if s.Name == "" {
		s.Name = "completion"
	}
	return &Completion{next: next, cb: newBreaker[string](s, logger), logger: logger}
}

func (c *Completion) Complete(ctx context.Context, prompt string) (string, error) {
	return execute(c.cb, logging.Ctx(ctx, c.logger), func() (string, error) {
		return c.next.Complete(ctx, prompt)
	})
}
