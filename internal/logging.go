package internal

import (
	"os"

	"github.com/op/go-logging"
)

const module = "modgate"

var (
	Log    = logging.MustGetLogger(module)
	format = logging.MustStringFormatter(
		`%{color}%{time:2006-01-02 15:04:05} %{level:.4s}%{color:reset} %{message}`,
	)
)

// InitLogging sets the level of the package logger, 0 being CRITICAL and 5 DEBUG.
func InitLogging(level int) {
	if level < int(logging.CRITICAL) {
		level = int(logging.CRITICAL)
	} else if level > int(logging.DEBUG) {
		level = int(logging.DEBUG)
	}

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.Level(level), module)
	logging.SetBackend(leveled)
}
