package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion     = "unknown"
	developmentVersion = "(devel)"
)

// GetApplicationVersion reports the module version recorded at build time and
// falls back to git describe when running from a source checkout.
func GetApplicationVersion() string {
	if buildInfo, buildInfoAvailable := debug.ReadBuildInfo(); buildInfoAvailable {
		if moduleVersion := buildInfo.Main.Version; moduleVersion != "" && moduleVersion != developmentVersion {
			return moduleVersion
		}
	}

	repositoryDirectory, repositoryError := findRepositoryRoot(".")
	if repositoryError != nil {
		return unknownVersion
	}
	describeArgumentSets := [][]string{
		{"describe", "--tags", "--exact-match"},
		{"describe", "--tags", "--long", "--dirty"},
	}
	for _, describeArguments := range describeArgumentSets {
		// #nosec G204
		describeCommand := exec.Command("git", describeArguments...)
		describeCommand.Dir = repositoryDirectory
		describeOutput, describeError := describeCommand.Output()
		if describeError == nil && len(describeOutput) > 0 {
			return strings.TrimSpace(string(describeOutput))
		}
	}
	return unknownVersion
}

// findRepositoryRoot walks upward from startDirectory to the first directory containing a .git folder.
func findRepositoryRoot(startDirectory string) (string, error) {
	absoluteStartDirectory, absolutePathError := filepath.Abs(startDirectory)
	if absolutePathError != nil {
		return "", fmt.Errorf("failed to get absolute path for %s: %w", startDirectory, absolutePathError)
	}

	currentDirectory := absoluteStartDirectory
	for {
		fileInformation, statError := os.Stat(filepath.Join(currentDirectory, GitDirectoryName))
		if statError == nil && fileInformation.IsDir() {
			return currentDirectory, nil
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			break
		}
		currentDirectory = parentDirectory
	}

	return "", fmt.Errorf("%s directory not found in or above %s", GitDirectoryName, absoluteStartDirectory)
}
