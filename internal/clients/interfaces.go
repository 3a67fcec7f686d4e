package clients

import (
	"context"
	"encoding/json"
)

// CanvasClient defines the interface for Canvas LMS API interactions
type CanvasClient interface {
	Get(ctx context.Context, baseURL, accessToken, endpoint string) (*CanvasResponse, error)
}

// LLMClient defines the interface for chat completion providers
type LLMClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CanvasResponse is the outcome of a Canvas call that reached the server.
// Non-2xx responses are reported here with OK=false rather than as errors.
type CanvasResponse struct {
	Status int
	OK     bool
	Data   json.RawMessage
	Body   string
}

// ChatMessage is a single role/content pair sent to the provider
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes one completion call.
// When ImageURL is set the last user message is sent together with the image.
type CompletionRequest struct {
	Messages    []ChatMessage
	Temperature float32
	MaxTokens   int
	ImageURL    string
}
