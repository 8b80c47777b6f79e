// Package display formats console output.
package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// Lines wraps each message and joins them, one per line, with a trailing
// newline. It returns "" for no messages.
func Lines(msgs []string) string {
	if len(msgs) == 0 {
		return ""
	}

	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(Wrap(m))
		b.WriteString("\n")
	}
	return b.String()
}
