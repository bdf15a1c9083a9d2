package clipboard

import (
	"errors"
	"testing"
)

func TestServiceCopy(t *testing.T) {
	backendFailure := errors.New("backend failed")

	testCases := []struct {
		name          string
		unsupported   bool
		writeError    error
		expectWritten string
		expectError   error
	}{
		{name: "writes_text", expectWritten: "R\n└── a\n"},
		{name: "reports_unavailable_backend", unsupported: true, expectError: ErrUnavailable},
		{name: "wraps_backend_failure", writeError: backendFailure, expectWritten: "R\n└── a\n", expectError: backendFailure},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			var written string
			service := &Service{
				writeText: func(text string) error {
					written = text
					return testCase.writeError
				},
				unsupported: func() bool { return testCase.unsupported },
			}
			copyError := service.Copy("R\n└── a\n")
			if testCase.expectError == nil && copyError != nil {
				t.Fatalf("unexpected error: %v", copyError)
			}
			if testCase.expectError != nil && !errors.Is(copyError, testCase.expectError) {
				t.Fatalf("expected %v, got %v", testCase.expectError, copyError)
			}
			if written != testCase.expectWritten {
				t.Fatalf("expected %q written, got %q", testCase.expectWritten, written)
			}
		})
	}
}
