package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

const (
	// DefaultEncodingName is the encoding used for output files unless another one is requested.
	DefaultEncodingName = "utf-8"

	outputFilePermissions = 0o644

	errorUnknownEncodingFormat = "unsupported output encoding %q: %w"
	errorOpenOutputFileFormat  = "opening output file %s: %w"
)

// LookupEncoding resolves an encoding name. The returned encoding is nil for
// UTF-8, which needs no transformation.
func LookupEncoding(encodingName string) (encoding.Encoding, error) {
	normalizedName := strings.TrimSpace(encodingName)
	if normalizedName == "" {
		return nil, nil
	}
	textEncoding, lookupError := htmlindex.Get(normalizedName)
	if lookupError != nil {
		return nil, fmt.Errorf(errorUnknownEncodingFormat, encodingName, lookupError)
	}
	canonicalName, nameError := htmlindex.Name(textEncoding)
	if nameError == nil && canonicalName == DefaultEncodingName {
		return nil, nil
	}
	return textEncoding, nil
}

// CreateFileSink opens filePath for writing, truncating existing content, and
// returns a sink encoding lines with encodingName. Characters the encoding
// cannot represent are replaced.
func CreateFileSink(filePath string, encodingName string) (LineSink, error) {
	textEncoding, lookupError := LookupEncoding(encodingName)
	if lookupError != nil {
		return nil, lookupError
	}

	// #nosec G304
	fileHandle, openError := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePermissions)
	if openError != nil {
		return nil, fmt.Errorf(errorOpenOutputFileFormat, filePath, openError)
	}

	if textEncoding == nil {
		return &writerSink{writer: bufio.NewWriter(fileHandle), closers: []io.Closer{fileHandle}}, nil
	}

	encodingWriter := transform.NewWriter(fileHandle, encoding.ReplaceUnsupported(textEncoding.NewEncoder()))
	return &writerSink{
		writer:  bufio.NewWriter(encodingWriter),
		closers: []io.Closer{encodingWriter, fileHandle},
	}, nil
}
