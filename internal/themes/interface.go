package themes

import "context"

// Extractor derives the salient phrases of a script. The result is a
// deduplicated set; no document order is promised.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}
