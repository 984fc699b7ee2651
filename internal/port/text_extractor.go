package port

import "context"

// TextExtractor reads the text drawn in an image file. Implementations
// return best-effort plain text with line breaks preserved and never retry.
type TextExtractor interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}
