// Package console renders engine log events on a terminal, one colour per level.
package console

import (
	"fmt"
	"io"
	"log"

	"github.com/toothbrush/sitefinity-updater/internal/termfmt"
)

type Logger struct {
	logger *log.Logger
	color  bool
}

func New(w io.Writer, color bool) *Logger {
	return &Logger{
		logger: log.New(w, "", 0),
		color:  color,
	}
}

func (l *Logger) Info(format string, args ...any)  { l.print(termfmt.Fg(termfmt.Cyan), format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.print(termfmt.Fg(termfmt.Yellow), format, args...) }
func (l *Logger) Error(format string, args ...any) { l.print(termfmt.Fg(termfmt.Red), format, args...) }

// Success stands out a bit more than the rest.
func (l *Logger) Success(format string, args ...any) {
	l.print(termfmt.Bold().Fg(termfmt.Green), format, args...)
}

func (l *Logger) print(style termfmt.Style, format string, args ...any) {
	style = style.V(fmt.Sprintf(format, args...))
	if !l.color {
		style = style.Plain()
	}
	l.logger.Printf("%s", style)
}
