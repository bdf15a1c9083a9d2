package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const integrationBinaryBaseName = "tree_integration_binary"

// buildBinary compiles the command into a temporary directory.
func buildBinary(testingHandle *testing.T) string {
	testingHandle.Helper()
	if testing.Short() {
		testingHandle.Skip("skipping binary build in short mode")
	}

	binaryName := integrationBinaryBaseName
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}
	binaryPath := filepath.Join(testingHandle.TempDir(), binaryName)

	commandDirectory, directoryError := os.Getwd()
	if directoryError != nil {
		testingHandle.Fatalf("failed to get working directory: %v", directoryError)
	}
	buildCommand := exec.Command("go", "build", "-o", binaryPath, ".")
	buildCommand.Dir = commandDirectory
	if combinedOutput, buildError := buildCommand.CombinedOutput(); buildError != nil {
		testingHandle.Fatalf("build failed in %s: %v\n%s", commandDirectory, buildError, string(combinedOutput))
	}
	return binaryPath
}

// runBinary executes the binary in workingDirectory and returns stdout, stderr and the run error.
func runBinary(testingHandle *testing.T, binaryPath string, workingDirectory string, arguments ...string) (string, string, error) {
	testingHandle.Helper()
	command := exec.Command(binaryPath, arguments...)
	command.Dir = workingDirectory
	command.Env = append(os.Environ(), "HOME="+testingHandle.TempDir(), "USERPROFILE="+testingHandle.TempDir())
	var stdoutBuffer, stderrBuffer bytes.Buffer
	command.Stdout = &stdoutBuffer
	command.Stderr = &stderrBuffer
	runError := command.Run()
	return stdoutBuffer.String(), stderrBuffer.String(), runError
}

func TestTreeBinary(testingHandle *testing.T) {
	binaryPath := buildBinary(testingHandle)

	workingDirectory := testingHandle.TempDir()
	projectDirectory := filepath.Join(workingDirectory, "project")
	for _, relativePath := range []string{"main.go", "pkg/lib.go", ".git/HEAD"} {
		filePath := filepath.Join(projectDirectory, filepath.FromSlash(relativePath))
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			testingHandle.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filePath, []byte("x"), 0o600); err != nil {
			testingHandle.Fatalf("write: %v", err)
		}
	}

	testCases := []struct {
		name           string
		arguments      []string
		expectedStdout string
		expectedStderr string
		expectFailure  bool
	}{
		{
			name:           "renders_with_default_exclusions",
			arguments:      []string{"project"},
			expectedStdout: "project\n├── main.go\n└── pkg\n    └── lib.go\n",
		},
		{
			name:           "root_flag_and_folders_first",
			arguments:      []string{"-r", "project", "-F", "yes", "-f", ""},
			expectedStdout: "project\n├── .git\n│   └── HEAD\n├── pkg\n│   └── lib.go\n└── main.go\n",
		},
		{
			name:           "missing_root_warns_on_stderr",
			arguments:      []string{"absent"},
			expectedStdout: "absent\n",
			expectedStderr: "root does not exist",
		},
		{
			name:          "invalid_depth_fails",
			arguments:     []string{"project", "-d", "-3"},
			expectFailure: true,
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			stdout, stderr, runError := runBinary(subTest, binaryPath, workingDirectory, testCase.arguments...)
			if testCase.expectFailure {
				if runError == nil {
					subTest.Fatalf("expected failure, got stdout %q", stdout)
				}
				return
			}
			if runError != nil {
				subTest.Fatalf("run failed: %v\n%s", runError, stderr)
			}
			if stdout != testCase.expectedStdout {
				subTest.Fatalf("expected stdout %q, got %q", testCase.expectedStdout, stdout)
			}
			if !strings.Contains(stderr, testCase.expectedStderr) {
				subTest.Fatalf("expected stderr to contain %q, got %q", testCase.expectedStderr, stderr)
			}
		})
	}
}
