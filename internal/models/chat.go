package models

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is always returned by the chat endpoint, even when the
// completion provider is unavailable.
type ChatReply struct {
	Response string `json:"response"`
}
