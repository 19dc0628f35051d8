package ffmpeg

import (
	"strings"
	"sync"
)

const tailLines = 10

// tailBuffer keeps the last few lines written to it. ffmpeg error output can
// be long; only the end is useful in returned errors.
type tailBuffer struct {
	mu      sync.Mutex
	lines   []string
	partial strings.Builder
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, b := range p {
		if b == '\n' {
			t.pushLine()
			continue
		}
		t.partial.WriteByte(b)
	}
	return len(p), nil
}

func (t *tailBuffer) pushLine() {
	line := strings.TrimRight(t.partial.String(), "\r")
	t.partial.Reset()
	if strings.TrimSpace(line) == "" {
		return
	}
	t.lines = append(t.lines, line)
	if len(t.lines) > tailLines {
		t.lines = t.lines[len(t.lines)-tailLines:]
	}
}

// Tail returns the retained lines joined, including any unterminated last line.
func (t *tailBuffer) Tail() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	lines := t.lines
	if t.partial.Len() > 0 {
		lines = append(append([]string(nil), lines...), t.partial.String())
	}
	return strings.TrimSpace(strings.Join(lines, "; "))
}
