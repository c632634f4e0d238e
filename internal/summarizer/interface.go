package summarizer

import "context"

// Summarizer sends a transcript to a conversational summarization backend
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (Response, error)
	Name() string
}

// Request is one query. An empty ConversationID starts a new conversation.
type Request struct {
	Query          string
	ConversationID string
}

type Response struct {
	Answer         string
	ConversationID string
}
