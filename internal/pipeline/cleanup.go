package pipeline

import (
	"os"
	"strings"
	"unicode/utf8"
)

// maxReplyLen keeps each reply under the platform's message text limit
const maxReplyLen = 3900

// Cleanup removes a run directory and everything in it. Removing a
// directory that is already gone is not an error.
func Cleanup(dir string) error {
	if dir == "" {
		return nil
	}
	return os.RemoveAll(dir)
}

// splitText cuts s into chunks of at most limit bytes, breaking on line
// boundaries where possible and never inside a UTF-8 sequence.
func splitText(s string, limit int) []string {
	if len(s) <= limit {
		return []string{s}
	}

	var chunks []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			chunks = append(chunks, strings.TrimRight(b.String(), "\n"))
			b.Reset()
		}
	}

	for _, line := range strings.SplitAfter(s, "\n") {
		if b.Len()+len(line) > limit {
			flush()
		}
		for len(line) > limit {
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		b.WriteString(line)
	}
	flush()
	return chunks
}
