// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the server-side session manager and the
// typed accessors the handlers use for login state and chat history.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys. All admin state lives server side; the browser only
// ever holds the opaque session token.
const (
	KeyUserID      = "user_id"
	KeyChatHistory = "chat_history"
)

// MaxChatHistory caps how many chat messages a session retains. Older
// messages fall off so the session row stays small.
const MaxChatHistory = 40

// New creates a session manager backed by the SQLite sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev

	if !isDev {
		// The __Host- prefix pins the cookie to this host over HTTPS.
		sm.Cookie.Name = "__Host-session"
		sm.Cookie.Path = "/"
	}

	return sm
}

// Login records the authenticated user and rotates the session token
// to prevent fixation.
func Login(ctx context.Context, sm *scs.SessionManager, userID int64) error {
	if err := sm.RenewToken(ctx); err != nil {
		return err
	}
	sm.Put(ctx, KeyUserID, userID)
	return nil
}

// Logout destroys the session entirely, chat history included.
func Logout(ctx context.Context, sm *scs.SessionManager) error {
	return sm.Destroy(ctx)
}

// UserID returns the logged-in user's ID, or 0 for anonymous sessions.
func UserID(ctx context.Context, sm *scs.SessionManager) int64 {
	return sm.GetInt64(ctx, KeyUserID)
}

// ChatMessage is one turn of the visitor's chat conversation as stored
// in the session.
type ChatMessage struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// ChatHistory returns the session's chat transcript, oldest first.
func ChatHistory(ctx context.Context, sm *scs.SessionManager) []ChatMessage {
	raw := sm.GetBytes(ctx, KeyChatHistory)
	if len(raw) == 0 {
		return nil
	}
	var history []ChatMessage
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil
	}
	return history
}

// AppendChat adds messages to the session transcript, trimming to the
// retention cap.
func AppendChat(ctx context.Context, sm *scs.SessionManager, msgs ...ChatMessage) error {
	history := append(ChatHistory(ctx, sm), msgs...)
	if len(history) > MaxChatHistory {
		history = history[len(history)-MaxChatHistory:]
	}
	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}
	sm.Put(ctx, KeyChatHistory, raw)
	return nil
}

// ClearChat removes the session's chat transcript.
func ClearChat(ctx context.Context, sm *scs.SessionManager) {
	sm.Remove(ctx, KeyChatHistory)
}
