// Package upstream classifies transport failures from external HTTP
// services into the domain failure taxonomy.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
)

// Classify converts err into a *domain.Error. Typed errors pass through;
// expired deadlines and network timeouts become UpstreamTimeout; the
// rest become UpstreamError.
func Classify(ctx context.Context, op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	if IsTimeout(ctx, err) {
		return domain.UpstreamTimeout(op, err)
	}
	return domain.UpstreamError(op, err)
}

// IsTimeout reports whether err (or ctx) indicates an expired deadline.
func IsTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return ctx != nil && errors.Is(ctx.Err(), context.DeadlineExceeded)
}

// StatusError builds the UpstreamError for a non-2xx response, quoting a
// short prefix of the body.
func StatusError(op string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if len(snippet) == 0 {
		return domain.UpstreamError(op, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return domain.UpstreamError(op, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet))
}
