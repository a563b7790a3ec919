package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driven"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
	"github.com/custodia-labs/docintake/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService is one assistant conversation. The scope is fixed at
// construction; each instance owns its own transcript.
type ChatService struct {
	api      driven.IntakeAPI
	notifier driven.Notifier
	scope    domain.ChatScope

	mu         sync.RWMutex
	busy       bool
	transcript []domain.ChatMessage
	log        []domain.ChatEntry
}

// NewChatService creates an assistant conversation bound to scope.
func NewChatService(api driven.IntakeAPI, notifier driven.Notifier, scope domain.ChatScope) *ChatService {
	if notifier == nil {
		notifier = driven.NopNotifier{}
	}
	return &ChatService{
		api:      api,
		notifier: notifier,
		scope:    scope,
	}
}

// Send submits text with the full prior transcript.
//
// The user message is logged immediately. On success both turns join the
// transcript. On failure an apology is logged and the transcript is left
// as it was.
func (s *ChatService) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.notifier.Notify(domain.Notification{Level: domain.NotifyWarning, Message: domain.EmptyChatMessage})
		return "", domain.ErrEmptyInput
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", domain.ErrChatInProgress
	}
	s.busy = true
	userMsg := domain.ChatMessage{Role: domain.ChatRoleUser, Content: text}
	s.log = append(s.log, domain.ChatEntry{Message: userMsg})
	history := make([]domain.ChatMessage, len(s.transcript))
	copy(history, s.transcript)
	s.mu.Unlock()

	logger.Debug("Chat [%s]: sending turn with %d prior messages", s.scope, len(history))

	reply, err := s.api.Chat(ctx, driven.ChatRequest{
		Query:      text,
		History:    history,
		DocumentID: s.scope.DocumentID,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if err != nil {
		logger.Warn("Chat [%s] failed: %v", s.scope, err)
		s.log = append(s.log, domain.ChatEntry{
			Message: domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: domain.ChatApology},
			Failed:  true,
		})
		return "", fmt.Errorf("chat: %w", err)
	}

	assistantMsg := domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: reply}
	s.transcript = append(s.transcript, userMsg, assistantMsg)
	s.log = append(s.log, domain.ChatEntry{Message: assistantMsg})
	return reply, nil
}

// Log returns everything shown to the user, including failed turns.
func (s *ChatService) Log() []domain.ChatEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ChatEntry, len(s.log))
	copy(out, s.log)
	return out
}

// Transcript returns the successful turns sent as history.
func (s *ChatService) Transcript() []domain.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Busy reports whether a message is outstanding.
func (s *ChatService) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}

// Scope returns the scope fixed at construction.
func (s *ChatService) Scope() domain.ChatScope {
	return s.scope
}
