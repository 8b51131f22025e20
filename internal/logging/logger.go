package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

// New creates the process logger. SSB_JSON_LOG=1 switches to JSON output.
func New(name, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	if env := os.Getenv("SSB_LOG_LEVEL"); env != "" {
		level = env
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: os.Getenv("SSB_JSON_LOG") == "1",
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
