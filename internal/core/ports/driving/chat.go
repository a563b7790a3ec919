package driving

import (
	"context"

	"github.com/custodia-labs/docintake/internal/core/domain"
)

// ChatService is one assistant conversation bound to a scope.
type ChatService interface {
	// Send submits text and returns the assistant reply.
	Send(ctx context.Context, text string) (string, error)

	// Log returns everything shown to the user, including failed turns.
	Log() []domain.ChatEntry

	// Transcript returns the successful turns sent as history.
	Transcript() []domain.ChatMessage

	// Busy reports whether a message is outstanding.
	Busy() bool

	// Scope returns the scope fixed at construction.
	Scope() domain.ChatScope
}
