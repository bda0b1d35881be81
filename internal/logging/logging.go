// Package logging builds the logr.Logger used across prismctl.
//
// Logs are written to stderr so that the interactive console on stdout stays
// readable. Verbosity follows logr conventions: V(0) is info, V(1) is debug.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Format selects the log line encoding.
type Format string

const (
	// FormatText renders key/value pairs after the message.
	FormatText Format = "text"
	// FormatJSON renders each line as a JSON object.
	FormatJSON Format = "json"
)

// levels maps configured level names to logr verbosity.
var levels = map[string]int{
	"info":  0,
	"debug": 1,
	"trace": 2,
}

// ParseLevel converts a level name into a logr verbosity.
func ParseLevel(level string) (int, error) {
	v, ok := levels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return 0, fmt.Errorf("invalid log level %q (valid: info, debug, trace)", level)
	}
	return v, nil
}

// New returns a logger writing to w. Unknown formats fall back to text.
func New(w io.Writer, verbosity int, format Format) logr.Logger {
	opts := funcr.Options{
		LogTimestamp:    true,
		TimestampFormat: "15:04:05",
		Verbosity:       verbosity,
	}

	if format == FormatJSON {
		return funcr.NewJSON(func(obj string) {
			_, _ = fmt.Fprintln(w, obj)
		}, opts)
	}

	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			_, _ = fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		_, _ = fmt.Fprintln(w, args)
	}, opts)
}
