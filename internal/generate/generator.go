// Package generate produces the textual deck payload served by
// /api/generate-quiz. The payload is handed to clients verbatim, fences
// and all; stripping is the client's job.
package generate

import "context"

// Generator builds the quiz_data text for a topic. An empty topic asks for
// general knowledge trivia.
type Generator interface {
	GenerateDeck(ctx context.Context, topic string) (string, error)
}
