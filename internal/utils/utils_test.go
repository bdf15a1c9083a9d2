package utils_test

import (
	"reflect"
	"testing"

	"github.com/temirov/tree/internal/utils"
)

// TestDeduplicatePatterns verifies that DeduplicatePatterns removes duplicate patterns.
func TestDeduplicatePatterns(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		patterns []string
		expected []string
	}{
		{
			testName: "removes duplicates",
			patterns: []string{"a", "b", "a"},
			expected: []string{"a", "b"},
		},
		{
			testName: "keeps unique",
			patterns: []string{"a", "b"},
			expected: []string{"a", "b"},
		},
	}
	for index, testCase := range testCases {
		actual := utils.DeduplicatePatterns(testCase.patterns)
		if !reflect.DeepEqual(actual, testCase.expected) {
			testingInstance.Errorf("case %d (%s): expected %v, got %v", index, testCase.testName, testCase.expected, actual)
		}
	}
}

// TestSplitList verifies comma splitting, trimming and de-duplication.
func TestSplitList(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		values   []string
		expected []string
	}{
		{
			testName: "single comma separated value",
			values:   []string{".venv, node_modules ,.git"},
			expected: []string{".venv", "node_modules", ".git"},
		},
		{
			testName: "several values with duplicates",
			values:   []string{"build", "dist,build"},
			expected: []string{"build", "dist"},
		},
		{
			testName: "empty values",
			values:   []string{"", " , "},
			expected: []string{},
		},
		{
			testName: "no values",
			values:   nil,
			expected: []string{},
		},
	}
	for index, testCase := range testCases {
		actual := utils.SplitList(testCase.values...)
		if !reflect.DeepEqual(actual, testCase.expected) {
			testingInstance.Errorf("case %d (%s): expected %v, got %v", index, testCase.testName, testCase.expected, actual)
		}
	}
}
