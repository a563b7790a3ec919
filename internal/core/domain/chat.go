package domain

// ChatRole identifies the author of a chat message.
type ChatRole string

// Chat roles.
const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn in a transcript.
type ChatMessage struct {
	Role    ChatRole
	Content string
}

// ChatEntry is a message as displayed. Failed marks the apology shown
// in place of an assistant reply; it never enters the transcript.
type ChatEntry struct {
	Message ChatMessage
	Failed  bool
}

// ChatScope binds a transcript globally or to one document.
type ChatScope struct {
	// DocumentID is empty for the global assistant.
	DocumentID string
}

// GlobalScope returns the scope of the global assistant.
func GlobalScope() ChatScope {
	return ChatScope{}
}

// DocumentScope returns the scope of a document assistant.
func DocumentScope(documentID string) ChatScope {
	return ChatScope{DocumentID: documentID}
}

// IsGlobal reports whether the scope is not tied to a document.
func (s ChatScope) IsGlobal() bool {
	return s.DocumentID == ""
}

// String returns a short label for logs.
func (s ChatScope) String() string {
	if s.IsGlobal() {
		return "global"
	}
	return "document:" + s.DocumentID
}

// ChatApology is shown when a turn fails.
const ChatApology = "Sorry, I could not process your request. Please try again."

// EmptyChatMessage warns about a blank message.
const EmptyChatMessage = "Please enter a message"
