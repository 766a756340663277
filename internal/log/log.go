package log

import (
	"fmt"
	"io"
	"time"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type logger struct {
	w   io.Writer
	now func() time.Time
}

// New returns a Logger writing one line per message to w.
func New(w io.Writer) Logger {
	return &logger{w: w, now: time.Now}
}

// Discard drops every message.
var Discard Logger = &logger{w: io.Discard, now: time.Now}

func (l *logger) Infof(format string, args ...interface{}) {
	l.writeLog("INFO", fmt.Sprintf(format, args...))
}

func (l *logger) Warnf(format string, args ...interface{}) {
	l.writeLog("WARN", fmt.Sprintf(format, args...))
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.writeLog("ERROR", fmt.Sprintf(format, args...))
}

func (l *logger) writeLog(level, msg string) {
	ts := l.now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.w, "%s %s %s\n", ts, level, msg)
}
