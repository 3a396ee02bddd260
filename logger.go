package di

import (
	"fmt"
	"log"

	"github.com/rs/zerolog"
)

// Logger is the interface used to log the errors
// that occur while an object is built or closed.
type Logger interface {
	Error(args ...interface{})
}

// BasicLogger is a Logger that uses log.Println
// to write the error on the standard output.
type BasicLogger struct{}

func (l *BasicLogger) Error(args ...interface{}) {
	log.Println(args...)
}

// MuteLogger is a Logger that doesn't log anything.
type MuteLogger struct{}

func (l *MuteLogger) Error(args ...interface{}) {}

// ZerologLogger is a Logger that writes the errors
// with a zerolog.Logger.
type ZerologLogger struct {
	L zerolog.Logger
}

func (l *ZerologLogger) Error(args ...interface{}) {
	l.L.Error().Msg(fmt.Sprint(args...))
}
