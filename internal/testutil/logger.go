package testutil

import (
	"bytes"
	"log/slog"

	"github.com/preston-bernstein/fpl-dashboard/internal/logging"
)

// NewBufferLogger returns a debug-level text logger writing into the returned
// buffer, stamped like the production logger.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{
		Level:   "debug",
		Service: "fpl-dashboard-test",
		Output:  &buf,
	})
	return logger, &buf
}
