package logsvc

import (
	"io/ioutil"
	"log"

	"github.com/apexdrive/console/core"
)

// ConsoleLogger writes to the std logger only; used in debug mode where
// shipping to rollbar is just noise.
type ConsoleLogger struct {
	std *log.Logger
}

var _ core.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(std *log.Logger) *ConsoleLogger {
	return &ConsoleLogger{std: std}
}

// NewNopLogger returns a logger that discards everything; for tests.
func NewNopLogger() *ConsoleLogger {
	return &ConsoleLogger{std: log.New(ioutil.Discard, "", 0)}
}

func (l ConsoleLogger) print(level, msg string, args []interface{}) {
	l.std.Println(level + " " + msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l ConsoleLogger) Debug(msg string, args ...interface{}) { l.print("DEBUG:", msg, args) }
func (l ConsoleLogger) Info(msg string, args ...interface{})  { l.print("INFO:", msg, args) }
func (l ConsoleLogger) Warn(msg string, args ...interface{})  { l.print("WARN:", msg, args) }
func (l ConsoleLogger) Error(msg string, args ...interface{}) { l.print("ERROR:", msg, args) }

func (l ConsoleLogger) Fatal(msg string, args ...interface{}) {
	l.print("FATAL:", msg, args)
	l.std.Fatal(msg)
}
