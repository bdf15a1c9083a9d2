package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingSink struct {
	writeError error
	closeError error
	closed     bool
}

func (sink *failingSink) WriteLine(string) error { return sink.writeError }

func (sink *failingSink) Close() error {
	sink.closed = true
	return sink.closeError
}

func TestWriterSinkBuffersUntilClose(t *testing.T) {
	var destination bytes.Buffer
	sink := NewWriterSink(&destination)
	require.NoError(t, sink.WriteLine("R"))
	require.NoError(t, sink.WriteLine("└── a.txt"))
	require.NoError(t, sink.Close())
	require.Equal(t, "R\n└── a.txt\n", destination.String())
}

func TestBufferSinkCollectsLines(t *testing.T) {
	sink := NewBufferSink()
	require.NoError(t, sink.WriteLine("R"))
	require.NoError(t, sink.WriteLine("├── b"))
	require.NoError(t, sink.Close())
	require.Equal(t, "R\n├── b\n", sink.String())
}

func TestMultiSinkFansOutAndJoinsCloseErrors(t *testing.T) {
	first := NewBufferSink()
	second := NewBufferSink()
	sink := NewMultiSink(first, second)
	require.NoError(t, sink.WriteLine("R"))
	require.NoError(t, sink.Close())
	require.Equal(t, "R\n", first.String())
	require.Equal(t, first.String(), second.String())

	closeFailure := errors.New("close failed")
	failing := &failingSink{closeError: closeFailure}
	trailing := &failingSink{}
	combined := NewMultiSink(failing, trailing)
	require.ErrorIs(t, combined.Close(), closeFailure)
	require.True(t, trailing.closed)
}

func TestMultiSinkStopsAtFirstWriteFailure(t *testing.T) {
	writeFailure := errors.New("write failed")
	trailing := NewBufferSink()
	sink := NewMultiSink(&failingSink{writeError: writeFailure}, trailing)
	require.ErrorIs(t, sink.WriteLine("R"), writeFailure)
	require.Empty(t, trailing.String())
}

func TestCreateFileSinkTruncatesExistingFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "tree.txt")
	require.NoError(t, os.WriteFile(outputPath, []byte("stale content that is longer than the tree\n"), 0o600))

	sink, err := CreateFileSink(outputPath, DefaultEncodingName)
	require.NoError(t, err)
	require.NoError(t, sink.WriteLine("R"))
	require.NoError(t, sink.WriteLine("└── é.txt"))
	require.NoError(t, sink.Close())

	content, readErr := os.ReadFile(outputPath)
	require.NoError(t, readErr)
	require.Equal(t, "R\n└── é.txt\n", string(content))
}

func TestCreateFileSinkEncodesAndReplacesUnsupportedCharacters(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "tree.txt")
	sink, err := CreateFileSink(outputPath, "windows-1252")
	require.NoError(t, err)
	require.NoError(t, sink.WriteLine("└── é"))
	require.NoError(t, sink.Close())

	content, readErr := os.ReadFile(outputPath)
	require.NoError(t, readErr)
	require.Equal(t, []byte{0x1a, 0x1a, 0x1a, ' ', 0xe9, '\n'}, content)
}

func TestCreateFileSinkRejectsUnknownEncodingBeforeCreatingFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "tree.txt")
	_, err := CreateFileSink(outputPath, "no-such-encoding")
	require.Error(t, err)
	_, statErr := os.Stat(outputPath)
	require.True(t, os.IsNotExist(statErr))
}

func TestLookupEncoding(t *testing.T) {
	testCases := []struct {
		name          string
		encodingName  string
		expectNil     bool
		expectFailure bool
	}{
		{name: "empty_means_utf8", encodingName: "", expectNil: true},
		{name: "utf8_label", encodingName: "UTF-8", expectNil: true},
		{name: "utf8_alias", encodingName: "utf8", expectNil: true},
		{name: "latin1_alias", encodingName: "latin1"},
		{name: "shift_jis", encodingName: "shift_jis"},
		{name: "unknown", encodingName: "klingon", expectFailure: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			textEncoding, err := LookupEncoding(testCase.encodingName)
			if testCase.expectFailure {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, testCase.expectNil, textEncoding == nil)
		})
	}
}
