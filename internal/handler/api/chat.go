// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ivision/showcase-go/internal/chat"
	"github.com/ivision/showcase-go/internal/model"
	"github.com/ivision/showcase-go/internal/session"
)

// maxChatMessageLen bounds a single user message.
const maxChatMessageLen = 2000

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply     string `json:"reply"`
	ReplyHTML string `json:"reply_html"`
}

// Chat handles POST /api/chat. Conversation history lives in the
// visitor's session so the assistant keeps context across messages.
// The endpoint never fails: provider errors surface as a canned reply.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		WriteBadRequest(w, "Message is required", nil)
		return
	}
	if len(message) > maxChatMessageLen {
		message = message[:maxChatMessageLen]
	}

	history := session.ChatHistory(r.Context(), h.sessionManager)
	chatHistory := make([]chat.Message, 0, len(history))
	for _, m := range history {
		chatHistory = append(chatHistory, chat.Message{Role: m.Role, Text: m.Text})
	}

	reply := h.assistant.Reply(r.Context(), chatHistory, message)

	now := time.Now()
	_ = session.AppendChat(r.Context(), h.sessionManager,
		session.ChatMessage{Role: model.ChatRoleUser, Text: message, Timestamp: now.Unix()},
		session.ChatMessage{Role: model.ChatRoleModel, Text: reply, Timestamp: now.Unix()},
	)

	_ = h.eventService.LogChatEvent(r.Context(), model.EventLevelInfo,
		"Chat message handled", nil, r.RemoteAddr, map[string]any{"length": len(message)})

	WriteSuccess(w, chatResponse{
		Reply:     reply,
		ReplyHTML: string(chat.RenderMarkdown(reply)),
	}, nil)
}

// ResetChat handles POST /api/chat/reset and clears the session history.
func (h *Handler) ResetChat(w http.ResponseWriter, r *http.Request) {
	session.ClearChat(r.Context(), h.sessionManager)
	w.WriteHeader(http.StatusNoContent)
}
