package session

import (
	"fmt"
	"strings"
	"time"
)

const transcriptRule = 70

// Transcript renders the session history as a plain-text export with a
// numbered USER/ASSISTANT block per message. Assistant blocks carry the
// response time and quality score recorded for the turn.
func (s *Session) Transcript() string {
	messages := s.Messages()
	stats := s.Stats()

	var b strings.Builder
	rule := strings.Repeat("=", transcriptRule)

	b.WriteString(rule + "\n")
	b.WriteString("CUSTOMER SUPPORT CHAT TRANSCRIPT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Session:   %s\n", s.ID())
	fmt.Fprintf(&b, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Messages:  %d\n", len(messages))
	if stats.Turns > 0 {
		fmt.Fprintf(&b, "Avg quality score: %.2f\n", stats.AvgQualityScore)
		fmt.Fprintf(&b, "Avg response time: %.2fs\n", stats.AvgResponseSeconds)
	}
	b.WriteString(rule + "\n\n")

	for i, msg := range messages {
		fmt.Fprintf(&b, "[%d] %s:\n", i+1, strings.ToUpper(string(msg.Role)))
		b.WriteString(msg.Content + "\n")
		if msg.Role == RoleAssistant {
			fmt.Fprintf(&b, "(response time: %.2fs, quality score: %.2f)\n", msg.ResponseSeconds, msg.QualityScore)
		}
		b.WriteString("\n")
	}

	return b.String()
}
