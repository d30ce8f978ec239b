package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/tbourn/sidus-backend/internal/domain"
	"github.com/tbourn/sidus-backend/internal/llm"
	"github.com/tbourn/sidus-backend/internal/services"
)

func TestChat_Reply(t *testing.T) {
	var gotType string
	var gotMsgs []llm.Message
	chat := &fakeChat{reply: func(_ context.Context, _ string, ct string, msgs []llm.Message) (string, error) {
		gotType, gotMsgs = ct, msgs
		if len(msgs) == 0 {
			return "", errors.Join(services.ErrInvalidInput, errors.New("messages must not be empty"))
		}
		return "Venus says hi", nil
	}}
	r := newTestRouter(New(Services{Chat: chat}), nil)

	body := `{"chatType":"relationship","messages":[{"role":"user","content":"will it work?"}]}`
	w := doJSON(t, r, http.MethodPost, "/chat", body, asUser("u1"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if res := decode[ChatResponse](t, w); !res.Success || res.Message != "Venus says hi" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
	if gotType != "relationship" || len(gotMsgs) != 1 || gotMsgs[0].Content != "will it work?" {
		t.Fatalf("unexpected input %q %+v", gotType, gotMsgs)
	}

	if w := doJSON(t, r, http.MethodPost, "/chat", `{"messages":[]}`, asUser("u1")); w.Code != http.StatusBadRequest {
		t.Fatalf("empty messages: %d", w.Code)
	}
}

func TestChat_Misconfigured(t *testing.T) {
	chat := &fakeChat{reply: func(context.Context, string, string, []llm.Message) (string, error) {
		return "", services.ErrMisconfigured
	}}
	r := newTestRouter(New(Services{Chat: chat}), nil)
	w := doJSON(t, r, http.MethodPost, "/chat", `{"messages":[{"role":"user","content":"hi"}]}`, asUser("u1"))
	if w.Code != http.StatusServiceUnavailable || errorCode(t, w) != ErrCodeMisconfigured {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestChatHistory_Pagination(t *testing.T) {
	var gotType string
	var gotPage, gotSize int
	chat := &fakeChat{history: func(_ context.Context, _ string, ct string, p, ps int) ([]domain.ChatMessage, int64, error) {
		gotType, gotPage, gotSize = ct, p, ps
		return []domain.ChatMessage{{ID: "m1", Role: "user"}}, 45, nil
	}}
	r := newTestRouter(New(Services{Chat: chat}), nil)

	w := doJSON(t, r, http.MethodGet, "/chat/history?chatType=career&page=2&page_size=20", nil, asUser("u1"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if gotType != "career" || gotPage != 2 || gotSize != 20 {
		t.Fatalf("unexpected args %q %d %d", gotType, gotPage, gotSize)
	}
	res := decode[ChatHistoryResponse](t, w)
	p := res.Pagination
	if p.Total != 45 || p.TotalPages != 3 || !p.HasNext || len(res.Data) != 1 {
		t.Fatalf("unexpected pagination %+v", p)
	}

	doJSON(t, r, http.MethodGet, "/chat/history?page_size=1000", nil, asUser("u1"))
	if gotPage != 1 || gotSize != maxPageSize {
		t.Fatalf("clamp: page=%d size=%d", gotPage, gotSize)
	}
}
