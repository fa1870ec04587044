package handlers

import (
	"context"
	"net/http"

	"campus-portal-backend/internal/models"
)

type chatGateway interface {
	GetReply(ctx context.Context, message string) (*models.ChatReply, error)
}

type ChatHandler struct {
	gateway chatGateway
}

func NewChatHandler(gateway chatGateway) *ChatHandler {
	return &ChatHandler{gateway: gateway}
}

// Chat answers one utterance. Provider failures still produce a 200 with the
// fallback reply; only a missing message is an error.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	reply, err := h.gateway.GetReply(r.Context(), req.Message)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}
