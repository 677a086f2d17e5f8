package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"google.golang.org/api/docs/v1"
)

// Enabled controls whether debug logging is emitted.
//
// When enabled, logs are written to stderr by default.
var Enabled bool

var (
	mu     sync.Mutex
	logger = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	})
	l.SetLevel(log.DebugLevel)
	return l
}

// SetWriter overrides the destination for all log output.
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

// Logger returns the shared structured logger. Info and above are always
// emitted; debug lines go through Log.
func Logger() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Log writes a formatted debug line when debug is enabled.
func Log(format string, args ...any) {
	if !Enabled {
		return
	}
	Logger().Debug(fmt.Sprintf(format, args...))
}

// LogRequests writes a batch of Docs requests as indented JSON when debug is
// enabled.
func LogRequests(label string, reqs []*docs.Request) {
	if !Enabled || len(reqs) == 0 {
		return
	}

	b, err := json.MarshalIndent(reqs, "", "  ")
	if err != nil {
		Logger().Debug("unable to encode requests", "label", label, "error", err)
		return
	}
	Logger().Debug(label, "requests", len(reqs), "payload", string(b))
}
