package doctag

import (
	"context"

	"github.com/leapstack-labs/capilint/pkg/core"
)

// Extractor turns raw comment text into ordered comment blocks.
type Extractor interface {
	Extract(ctx context.Context, comment string) ([]core.CommentBlock, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, comment string) ([]core.CommentBlock, error)

// Extract calls f.
func (f ExtractorFunc) Extract(ctx context.Context, comment string) ([]core.CommentBlock, error) {
	return f(ctx, comment)
}
