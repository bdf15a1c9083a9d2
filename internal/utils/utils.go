// Package utils contains general helper functions used across the tree tool.
package utils

import (
	"strings"
)

// listSeparator separates entries of list-valued configuration and flag values.
const listSeparator = ","

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// SplitList splits each value on commas, trims every entry, drops empty
// entries and removes duplicates. The result is never nil.
func SplitList(values ...string) []string {
	entries := make([]string, 0, len(values))
	for _, value := range values {
		for _, rawEntry := range strings.Split(value, listSeparator) {
			trimmedEntry := strings.TrimSpace(rawEntry)
			if trimmedEntry == "" {
				continue
			}
			entries = append(entries, trimmedEntry)
		}
	}
	return DeduplicatePatterns(entries)
}
