package telemetry

import (
	"io"
	"os"
)

// newTraceFileWriter opens (appending) the span export file.
func newTraceFileWriter(path string) (io.Writer, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
