package toast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docintake/internal/core/domain"
)

func TestStack_PushKeepsOrder(t *testing.T) {
	s := NewStack(nil)

	s.Push(domain.Notification{Level: domain.NotifyWarning, Message: "Missing signature"})
	s.Push(domain.Notification{Level: domain.NotifyWarning, Message: "Amount above limit"})

	active := s.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "Missing signature", active[0].Message)
	assert.Equal(t, "Amount above limit", active[1].Message)
}

func TestStack_PushReturnsExpiry(t *testing.T) {
	s := NewStack(nil)
	s.SetLifetime(0)

	cmd := s.Push(domain.Notification{Message: "hello"})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ToastExpired)
	require.True(t, ok)

	s.Dismiss(msg.ID)
	assert.Empty(t, s.Active())
	assert.Equal(t, "", s.View())
}

func TestStack_DismissUnknownIsNoop(t *testing.T) {
	s := NewStack(nil)
	s.Push(domain.Notification{Message: "stay"})

	s.Dismiss(42)

	assert.Len(t, s.Active(), 1)
}

func TestStack_ViewShowsMostRecent(t *testing.T) {
	s := NewStack(nil)
	for _, m := range []string{"one", "two", "three", "four"} {
		s.Push(domain.Notification{Level: domain.NotifyInfo, Message: m})
	}

	view := s.View()

	assert.NotContains(t, view, "one")
	assert.Contains(t, view, "two")
	assert.Contains(t, view, "four")
}

func TestStack_ViewStripsEscapes(t *testing.T) {
	s := NewStack(nil)
	s.Push(domain.Notification{Level: domain.NotifyError, Message: "boom\x1b]0;pwned\x07\x1b[2J"})

	view := s.View()

	assert.Contains(t, view, "boom")
	assert.NotContains(t, view, "pwned")
	assert.NotContains(t, view, "\x1b")
}
