package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Appender is an output for log entries. A zapcore.Core satisfies it.
type Appender interface {
	// Write submits a structured log entry to the appender for logging.
	Write(zapcore.Entry, []zapcore.Field) error
	// Sync is for signaling that any buffered logs to `Write` should be flushed. E.g: at shutdown.
	Sync() error
}

// ConsoleAppender writes tab-delimited log lines to an io.Writer.
type ConsoleAppender struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewWriterAppender creates a new appender that writes to the given writer.
func NewWriterAppender(writer io.Writer) *ConsoleAppender {
	return &ConsoleAppender{writer: writer}
}

// NewFileAppender creates an appender that writes to filename, rotating it once it grows past
// maxSizeMB megabytes and keeping at most maxBackups old files.
func NewFileAppender(filename string, maxSizeMB, maxBackups int) *ConsoleAppender {
	return &ConsoleAppender{writer: &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}}
}

// Write outputs the log entry as one line:
// "<time>\t<LEVEL>\t<logger>\t<file:line>\t<message>[\t<json fields>]".
func (appender *ConsoleAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	line, err := formatEntry(entry, fields)
	appender.mu.Lock()
	defer appender.mu.Unlock()
	if _, writeErr := fmt.Fprintln(appender.writer, line); writeErr != nil {
		return writeErr
	}
	return err
}

// Sync flushes files; it is a no-op for other writers.
func (appender *ConsoleAppender) Sync() error {
	appender.mu.Lock()
	defer appender.mu.Unlock()
	switch w := appender.writer.(type) {
	case *os.File:
		if w != os.Stdout && w != os.Stderr {
			return w.Sync()
		}
	case *lumberjack.Logger:
		// The next write reopens the file.
		return w.Close()
	}
	return nil
}

func formatEntry(entry zapcore.Entry, fields []zapcore.Field) (string, error) {
	const maxLength = 6
	toPrint := make([]string, 0, maxLength)
	toPrint = append(toPrint, entry.Time.Format(DefaultTimeFormatStr))
	toPrint = append(toPrint, strings.ToUpper(entry.Level.String()))
	if entry.LoggerName != "" {
		toPrint = append(toPrint, entry.LoggerName)
	}
	if entry.Caller.Defined {
		toPrint = append(toPrint, callerToString(&entry.Caller))
	}
	toPrint = append(toPrint, entry.Message)
	if len(fields) == 0 {
		return strings.Join(toPrint, "\t"), nil
	}

	// An empty Entry makes the encoder emit only the fields, in order.
	jsonEncoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{SkipLineEnding: true})
	buf, err := jsonEncoder.EncodeEntry(zapcore.Entry{}, fields)
	if err != nil {
		return strings.Join(toPrint, "\t"), err
	}
	toPrint = append(toPrint, buf.String())
	buf.Free()
	return strings.Join(toPrint, "\t"), nil
}

// callerToString renders "dir/file.go:line", matching zap's short caller encoder.
func callerToString(caller *zapcore.EntryCaller) string {
	return caller.TrimmedPath()
}
