package telegram

import (
	"strings"
	"unicode/utf8"
)

// MaxMessageLen is the Telegram limit for a single message.
const MaxMessageLen = 4096

// truncate shortens text to fit into a single message.
func truncate(text string) string {
	if utf8.RuneCountInString(text) <= MaxMessageLen {
		return text
	}
	return string([]rune(text)[:MaxMessageLen-20]) + "\n\n... (truncated)"
}

// inlineCode wraps s as legacy-Markdown inline code. Backticks cannot be
// escaped inside code spans, so they are replaced.
func inlineCode(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "'") + "`"
}
