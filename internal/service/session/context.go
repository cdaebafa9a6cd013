package session

import (
	"strings"

	"github.com/dmoreira/alfredo/backend/internal/model/session"
)

// BuildContext flattens the full log into the single string handed to the
// conversation capability. The remote side is stateless, so this string is
// the only memory of prior turns: every message, in order, no truncation.
func BuildContext(snapshot Snapshot) string {
	if len(snapshot.Messages) == 0 {
		return ""
	}

	parts := make([]string, 0, len(snapshot.Messages))
	for _, message := range snapshot.Messages {
		role := "User"
		if message.Sender == session.SenderAssistant {
			role = "Assistant"
		}
		parts = append(parts, role+": "+message.Text)
	}

	return strings.Join(parts, " - ")
}
