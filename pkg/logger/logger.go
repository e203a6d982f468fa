package logger

import (
	"log"
)

// Verbosity levels, from chattiest to fully muted. SILENCE is above every
// level so a logger configured with it drops everything.
const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

// stdLogger writes through the standard log package and filters by level.
type stdLogger struct {
	level int
}

func NewLogger(level int) *stdLogger {
	return &stdLogger{level: level}
}

func (l *stdLogger) Debugf(msg string, a ...any) {
	l.printf(DEBUG, msg, a...)
}

func (l *stdLogger) Infof(msg string, a ...any) {
	l.printf(INFO, msg, a...)
}

func (l *stdLogger) Warnf(msg string, a ...any) {
	l.printf(WARNING, msg, a...)
}

func (l *stdLogger) Errorf(msg string, a ...any) {
	l.printf(ERROR, msg, a...)
}

func (l *stdLogger) printf(level int, msg string, a ...any) {
	if l.level > level {
		return
	}

	log.Printf(msg+"\n", a...)
}
