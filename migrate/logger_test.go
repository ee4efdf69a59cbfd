package migrate

import (
	"fmt"
	"strings"
	"sync"
)

// recordingLogger keeps every line as "level: message".
type recordingLogger struct {
	mu  sync.Mutex
	out []string
}

func (l *recordingLogger) record(level string, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = append(l.out, level+": "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Info(format string, args ...any)    { l.record("info", format, args...) }
func (l *recordingLogger) Warn(format string, args ...any)    { l.record("warn", format, args...) }
func (l *recordingLogger) Error(format string, args ...any)   { l.record("error", format, args...) }
func (l *recordingLogger) Success(format string, args ...any) { l.record("success", format, args...) }

func (l *recordingLogger) lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.out...)
}

func (l *recordingLogger) contains(substr string) bool {
	for _, line := range l.lines() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
