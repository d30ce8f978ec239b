package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/sidus-backend/internal/domain"
	"github.com/tbourn/sidus-backend/internal/llm"
	"github.com/tbourn/sidus-backend/internal/repo"
)

// Canned replies returned instead of an error.
const (
	ReplyQuiet        = "The stars are momentarily quiet. Please try again."
	ReplyInterference = "I'm experiencing cosmic interference. Please try again in a moment."
)

const (
	maxChatTurns       = 50
	maxChatTurnRunes   = 4000
	defaultHistorySize = 20
	maxHistorySize     = 100
)

// ChatResponder produces the assistant turn for a conversation.
type ChatResponder interface {
	Chat(ctx context.Context, chatType, profileContext string, msgs []llm.Message) (string, error)
}

// ChatService answers themed conversations with the guide and keeps the
// history of each chat type per user.
type ChatService struct {
	DB  *gorm.DB
	LLM ChatResponder
}

// Reply validates msgs, asks the model for the next assistant turn and
// stores the last user turn together with the reply.
func (s *ChatService) Reply(ctx context.Context, userID, chatType string, msgs []llm.Message) (string, error) {
	chatType = strings.TrimSpace(chatType)
	ctx, span := otel.Tracer("services/ChatService").Start(ctx, "Reply",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("chat.type", chatType),
			attribute.Int("chat.turns", len(msgs)),
		),
	)
	defer span.End()

	clean, err := normalizeTurns(msgs)
	if err != nil {
		return "", err
	}

	start := time.Now()
	reply, err := s.LLM.Chat(ctx, chatType, s.profileContext(ctx, userID), clean)
	observeExternal("openai", "chat", start)
	switch {
	case err == nil:
	case isConfigError(err):
		span.RecordError(err)
		return "", fmt.Errorf("%w: %w", ErrMisconfigured, err)
	case errors.Is(err, llm.ErrEmptyResponse):
		reply = ReplyQuiet
	default:
		span.RecordError(err)
		log.Ctx(ctx).Error().Err(err).Str("chat_type", chatType).Msg("chat completion failed")
		return ReplyInterference, nil
	}
	if strings.TrimSpace(reply) == "" {
		reply = ReplyQuiet
	}

	if last := lastUserTurn(clean); last != "" {
		rows := []*domain.ChatMessage{
			{UserID: userID, ChatType: historyType(chatType), Role: "user", Content: last},
			{UserID: userID, ChatType: historyType(chatType), Role: "assistant", Content: reply},
		}
		if err := repo.CreateChatMessages(ctx, s.DB, rows); err != nil {
			// The reply is still useful to the caller.
			log.Ctx(ctx).Warn().Err(err).Msg("persist chat turns")
		}
	}
	return reply, nil
}

// History returns one page of stored turns for chatType, oldest first.
func (s *ChatService) History(ctx context.Context, userID, chatType string, page, pageSize int) ([]domain.ChatMessage, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultHistorySize
	}
	if pageSize > maxHistorySize {
		pageSize = maxHistorySize
	}
	ct := historyType(chatType)

	total, err := repo.CountChatMessages(ctx, s.DB, userID, ct)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.ChatMessage{}, 0, nil
	}
	items, err := repo.ListChatMessagesPage(ctx, s.DB, userID, ct, (page-1)*pageSize, pageSize)
	return items, total, err
}

// profileContext describes the user's stored Big Three for the system
// prompt. Users without a profile get none.
func (s *ChatService) profileContext(ctx context.Context, userID string) string {
	if s.DB == nil || userID == "" {
		return ""
	}
	stats, err := repo.GetUserStats(ctx, s.DB, userID)
	if err != nil {
		return ""
	}
	a := stats.AstrologicalInfo.Data()
	if a.SunSign == "" {
		return ""
	}
	name := stats.BasicInfo.Data().FirstName
	if name == "" {
		name = "The user"
	}
	return fmt.Sprintf("%s has a %s sun, %s moon and %s rising.", name, a.SunSign, a.MoonSign, a.RisingSign)
}

func normalizeTurns(msgs []llm.Message) ([]llm.Message, error) {
	if len(msgs) == 0 {
		return nil, invalid("messages array is required")
	}
	if len(msgs) > maxChatTurns {
		return nil, invalid("at most %d messages are allowed", maxChatTurns)
	}
	out := make([]llm.Message, 0, len(msgs))
	for i, m := range msgs {
		role := strings.ToLower(strings.TrimSpace(m.Role))
		if role != "user" && role != "assistant" {
			return nil, invalid("message %d has unsupported role %q", i, m.Role)
		}
		content := strings.TrimSpace(m.Content)
		if content == "" {
			return nil, invalid("message %d is empty", i)
		}
		if len([]rune(content)) > maxChatTurnRunes {
			return nil, invalid("message %d is too long", i)
		}
		out = append(out, llm.Message{Role: role, Content: content})
	}
	return out, nil
}

func lastUserTurn(msgs []llm.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "user" {
			return msgs[i].Content
		}
	}
	return ""
}

// historyType buckets unknown chat types under "general".
func historyType(chatType string) string {
	if llm.KnownChatType(chatType) {
		return chatType
	}
	return llm.ChatGeneral
}
