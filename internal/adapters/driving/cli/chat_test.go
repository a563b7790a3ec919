package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
)

func TestChatCmd_SingleTurn(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	chats := &testChats{}
	newChat = chats.New

	out, err := execute("chat", "how many complaints?")

	require.NoError(t, err)
	require.Len(t, chats.opened, 1)
	assert.True(t, chats.opened[0].scope.IsGlobal())
	assert.Equal(t, []string{"how many complaints?"}, chats.opened[0].sent)
	assert.Contains(t, out, "echo: how many complaints?")
}

func TestChatCmd_DocumentScope(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	chats := &testChats{}
	newChat = chats.New

	_, err := execute("chat", "--document", "doc-3", "summarise")

	require.NoError(t, err)
	require.Len(t, chats.opened, 1)
	assert.Equal(t, domain.DocumentScope("doc-3"), chats.opened[0].scope)
}

func TestChatCmd_RendersMarkup(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	chats := &testChats{}
	newChat = func(scope domain.ChatScope) driving.ChatService {
		chat := chats.New(scope).(*mockChatService)
		chat.replies = map[string]string{"hi": "**Hello**\nthere"}
		return chat
	}

	out, err := execute("chat", "hi")

	require.NoError(t, err)
	assert.Contains(t, out, "Hello\nthere")
	assert.NotContains(t, out, "**")
}

func TestChatCmd_FailureShowsApology(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	chats := &testChats{err: errors.New("HTTP 502")}
	newChat = chats.New

	out, err := execute("chat", "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat failed")
	assert.Contains(t, out, domain.ChatApology)
}

func TestChatCmd_BlankMessageIsIgnored(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	chats := &testChats{}
	newChat = chats.New

	out, err := execute("chat", "   ")

	require.NoError(t, err)
	assert.Empty(t, chats.opened[0].sent)
	assert.NotContains(t, out, "echo")
}

func TestChatCmd_Loop(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	chats := &testChats{}
	newChat = chats.New
	rootCmd.SetIn(strings.NewReader("first\n\nsecond\n/exit\nnever\n"))

	out, err := execute("chat")

	require.NoError(t, err)
	require.Len(t, chats.opened, 1)
	assert.Equal(t, []string{"first", "second"}, chats.opened[0].sent)
	assert.Contains(t, out, "echo: first")
	assert.Contains(t, out, "echo: second")
}

func TestChatCmd_LoopContinuesAfterFailure(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	chats := &testChats{err: errors.New("timeout")}
	newChat = chats.New
	rootCmd.SetIn(strings.NewReader("one\ntwo\n"))

	out, err := execute("chat")

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, chats.opened[0].sent)
	assert.Equal(t, 2, strings.Count(out, domain.ChatApology))
}

func TestChatCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	newChat = nil

	_, err := execute("chat", "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat service not configured")
}
