package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/curiousguyinhis30s/themepark-website/internal/app"
	"github.com/curiousguyinhis30s/themepark-website/internal/chat"
	"github.com/curiousguyinhis30s/themepark-website/internal/chatbot"
	"github.com/curiousguyinhis30s/themepark-website/internal/clock"
)

func newChatRouter(t *testing.T) (http.Handler, *clock.Manual) {
	t.Helper()
	m := clock.NewManual(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	svc := app.NewChatService(chatbot.DefaultKnowledgeBase(), m, m)

	r := chi.NewRouter()
	r.Get("/chat/quick-actions", HandleChatQuickActions(svc))
	r.Post("/chat/sessions", HandleCreateChatSession(svc))
	r.Get("/chat/sessions/{id}", HandleGetChatSession(svc))
	r.Post("/chat/sessions/{id}/open", HandleOpenChatSession(svc))
	r.Post("/chat/sessions/{id}/close", HandleCloseChatSession(svc))
	r.Post("/chat/sessions/{id}/messages", HandleSendChatMessage(svc))
	return r, m
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestChatHandlers_Conversation(t *testing.T) {
	t.Parallel()

	h, m := newChatRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/chat/sessions", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	created := decodeBody[chatSessionResponse](t, rec)
	if created.ID == "" || created.IsOpen || len(created.Messages) != 1 {
		t.Fatalf("unexpected session %+v", created)
	}
	if created.Messages[0].Role != "bot" || created.Messages[0].Content != chatbot.Greeting {
		t.Fatalf("expected greeting, got %+v", created.Messages[0])
	}

	base := "/chat/sessions/" + created.ID
	opened := decodeBody[chatSessionResponse](t, doJSON(t, h, http.MethodPost, base+"/open", ""))
	if !opened.IsOpen {
		t.Fatalf("expected open session")
	}

	rec = doJSON(t, h, http.MethodPost, base+"/messages", `{"text":"how much are tickets?"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	sent := decodeBody[sendMessageResponse](t, rec)
	if !sent.Sent || !sent.Session.IsTyping || len(sent.Session.Messages) != 2 {
		t.Fatalf("unexpected send response %+v", sent)
	}

	m.Advance(chat.DefaultMaxDelay)

	got := decodeBody[chatSessionResponse](t, doJSON(t, h, http.MethodGet, base, ""))
	if got.IsTyping || len(got.Messages) != 3 {
		t.Fatalf("expected reply to have arrived, got %+v", got)
	}
	if got.Messages[2].Role != "bot" || !strings.Contains(got.Messages[2].Content, "Day Pass: RM 150") {
		t.Fatalf("expected pricing reply, got %+v", got.Messages[2])
	}
}

func TestChatHandlers_BlankMessageNotSent(t *testing.T) {
	t.Parallel()

	h, _ := newChatRouter(t)
	id := decodeBody[chatSessionResponse](t, doJSON(t, h, http.MethodPost, "/chat/sessions", "")).ID

	rec := doJSON(t, h, http.MethodPost, "/chat/sessions/"+id+"/messages", `{"text":"   "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody[sendMessageResponse](t, rec)
	if resp.Sent || resp.Session.IsTyping || len(resp.Session.Messages) != 1 {
		t.Fatalf("expected no-op, got %+v", resp)
	}
}

func TestChatHandlers_Errors(t *testing.T) {
	t.Parallel()

	h, _ := newChatRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"unknown session", http.MethodGet, "/chat/sessions/nope", "", http.StatusNotFound, codeSessionNotFound},
		{"open unknown session", http.MethodPost, "/chat/sessions/nope/open", "", http.StatusNotFound, codeSessionNotFound},
		{"send to unknown session", http.MethodPost, "/chat/sessions/nope/messages", `{"text":"hi"}`, http.StatusNotFound, codeSessionNotFound},
		{"malformed body", http.MethodPost, "/chat/sessions/nope/messages", `{"text":`, http.StatusBadRequest, codeInvalidRequestBody},
		{"unknown field", http.MethodPost, "/chat/sessions/nope/messages", `{"message":"hi"}`, http.StatusBadRequest, codeInvalidRequestBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, tt.method, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := decodeBody[errorResponse](t, rec); got.Code != tt.wantCode {
				t.Fatalf("expected code %q, got %q", tt.wantCode, got.Code)
			}
		})
	}
}

func TestChatHandlers_QuickActions(t *testing.T) {
	t.Parallel()

	h, _ := newChatRouter(t)
	resp := decodeBody[struct {
		QuickActions []quickActionBody `json:"quickActions"`
	}](t, doJSON(t, h, http.MethodGet, "/chat/quick-actions", ""))

	if len(resp.QuickActions) != len(chatbot.QuickActions()) {
		t.Fatalf("expected %d quick actions, got %d", len(chatbot.QuickActions()), len(resp.QuickActions))
	}
	for _, a := range resp.QuickActions {
		if a.Label == "" || a.Query == "" {
			t.Fatalf("incomplete quick action %+v", a)
		}
	}
}
