// Package api holds the JSON bodies exchanged between the widget and the
// relay endpoint.
package api

import "cleaning-intake/internal/llm"

// ChatPath is the relay endpoint path.
const ChatPath = "/api/chat"

type ChatRequest struct {
	Messages []llm.Message `json:"messages"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
