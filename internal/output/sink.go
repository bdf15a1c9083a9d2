// Package output writes rendered tree lines to the console, files and in-memory buffers.
package output

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const lineTerminator = '\n'

// LineSink consumes rendered lines.
type LineSink interface {
	WriteLine(line string) error
	Close() error
}

type writerSink struct {
	writer  *bufio.Writer
	closers []io.Closer
}

// NewWriterSink returns a sink writing newline-terminated lines to destination.
// Close flushes buffered output but leaves destination open.
func NewWriterSink(destination io.Writer) LineSink {
	return &writerSink{writer: bufio.NewWriter(destination)}
}

func (sink *writerSink) WriteLine(line string) error {
	if _, err := sink.writer.WriteString(line); err != nil {
		return err
	}
	return sink.writer.WriteByte(lineTerminator)
}

func (sink *writerSink) Close() error {
	closeErrors := []error{sink.writer.Flush()}
	for _, closer := range sink.closers {
		closeErrors = append(closeErrors, closer.Close())
	}
	return errors.Join(closeErrors...)
}

// BufferSink keeps every line in memory.
type BufferSink struct {
	builder strings.Builder
}

// NewBufferSink returns an empty in-memory sink.
func NewBufferSink() *BufferSink {
	return &BufferSink{}
}

func (sink *BufferSink) WriteLine(line string) error {
	sink.builder.WriteString(line)
	sink.builder.WriteByte(lineTerminator)
	return nil
}

func (sink *BufferSink) Close() error {
	return nil
}

// String returns the collected text.
func (sink *BufferSink) String() string {
	return sink.builder.String()
}

type multiSink struct {
	sinks []LineSink
}

// NewMultiSink fans every line out to sinks in order. Writing stops at the
// first failing sink; Close closes every sink and joins their errors.
func NewMultiSink(sinks ...LineSink) LineSink {
	return &multiSink{sinks: append([]LineSink{}, sinks...)}
}

func (sink *multiSink) WriteLine(line string) error {
	for _, target := range sink.sinks {
		if err := target.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}

func (sink *multiSink) Close() error {
	closeErrors := make([]error, 0, len(sink.sinks))
	for _, target := range sink.sinks {
		closeErrors = append(closeErrors, target.Close())
	}
	return errors.Join(closeErrors...)
}

var (
	_ LineSink = (*writerSink)(nil)
	_ LineSink = (*BufferSink)(nil)
	_ LineSink = (*multiSink)(nil)
)
