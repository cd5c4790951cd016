package interfaces

import (
	"context"

	"sumai-cli/pkg/models"
)

// Summarizer turns a document into a summary shaped by the given options.
// Implementations perform exactly one round trip per call.
type Summarizer interface {
	Summarize(ctx context.Context, text string, opts models.Options) (string, error)
}
