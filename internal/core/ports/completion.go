package ports

import "context"

// CompletionGateway sends a prompt to a text-completion backend and
// returns the full response text. It does not interpret the content.
type CompletionGateway interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
