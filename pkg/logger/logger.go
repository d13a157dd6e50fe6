package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger. Development gets a console writer at
// debug level, everything else structured JSON at info level.
func Init(environment string) {
	if environment == "development" {
		log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(zerolog.DebugLevel)
		return
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

func Debug(msg string, keysAndValues ...interface{}) {
	withFields(log.Debug(), keysAndValues).Msg(msg)
}

func Info(msg string, keysAndValues ...interface{}) {
	withFields(log.Info(), keysAndValues).Msg(msg)
}

func Warn(msg string, keysAndValues ...interface{}) {
	withFields(log.Warn(), keysAndValues).Msg(msg)
}

func Error(msg string, keysAndValues ...interface{}) {
	withFields(log.Error(), keysAndValues).Msg(msg)
}

func Fatal(msg string, keysAndValues ...interface{}) {
	withFields(log.Fatal(), keysAndValues).Msg(msg)
}

// withFields accepts alternating key/value pairs. A bare trailing error is
// attached under "error" so call sites can pass errors directly.
func withFields(ev *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	i := 0
	for i < len(keysAndValues) {
		if err, ok := keysAndValues[i].(error); ok {
			ev = ev.Err(err)
			i++
			continue
		}
		key, ok := keysAndValues[i].(string)
		if !ok || i+1 >= len(keysAndValues) {
			ev = ev.Interface("extra", keysAndValues[i])
			i++
			continue
		}
		ev = ev.Interface(key, keysAndValues[i+1])
		i += 2
	}
	return ev
}
