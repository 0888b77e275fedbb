package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/curiousguyinhis30s/themepark-website/internal/chat"
	"github.com/curiousguyinhis30s/themepark-website/internal/chatbot"
)

// ChatSessions is the minimal interface needed for the chat widget endpoints.
type ChatSessions interface {
	QuickActions() []chatbot.QuickAction
	CreateSession() chat.Snapshot
	Session(id string) (chat.Snapshot, error)
	Open(id string) (chat.Snapshot, error)
	Close(id string) (chat.Snapshot, error)
	Send(id, text string) (chat.Snapshot, bool, error)
}

type chatMessageBody struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type chatSessionResponse struct {
	ID       string            `json:"id"`
	IsOpen   bool              `json:"isOpen"`
	IsTyping bool              `json:"isTyping"`
	Messages []chatMessageBody `json:"messages"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type sendMessageResponse struct {
	Sent    bool                `json:"sent"`
	Session chatSessionResponse `json:"session"`
}

type quickActionBody struct {
	Label string `json:"label"`
	Query string `json:"query"`
}

func toChatSessionResponse(s chat.Snapshot) chatSessionResponse {
	msgs := make([]chatMessageBody, 0, len(s.Messages))
	for _, m := range s.Messages {
		msgs = append(msgs, chatMessageBody{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	return chatSessionResponse{ID: s.ID, IsOpen: s.Open, IsTyping: s.Typing, Messages: msgs}
}

func HandleChatQuickActions(svc ChatSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actions := svc.QuickActions()
		resp := make([]quickActionBody, 0, len(actions))
		for _, a := range actions {
			resp = append(resp, quickActionBody{Label: a.Label, Query: a.Query})
		}
		writeJSON(w, http.StatusOK, map[string]any{"quickActions": resp})
	}
}

func HandleCreateChatSession(svc ChatSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, toChatSessionResponse(svc.CreateSession()))
	}
}

func HandleGetChatSession(svc ChatSessions) http.HandlerFunc {
	return chatSessionAction(svc.Session)
}

func HandleOpenChatSession(svc ChatSessions) http.HandlerFunc {
	return chatSessionAction(svc.Open)
}

func HandleCloseChatSession(svc ChatSessions) http.HandlerFunc {
	return chatSessionAction(svc.Close)
}

func chatSessionAction(fn func(id string) (chat.Snapshot, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := fn(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toChatSessionResponse(snap))
	}
}

// HandleSendChatMessage posts a visitor message. The assistant's reply
// arrives later; clients poll the session to see it. Blank text is
// accepted and reported with sent=false.
func HandleSendChatMessage(svc ChatSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		snap, sent, err := svc.Send(chi.URLParam(r, "id"), req.Text)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		status := http.StatusAccepted
		if !sent {
			status = http.StatusOK
		}
		writeJSON(w, status, sendMessageResponse{Sent: sent, Session: toChatSessionResponse(snap)})
	}
}
