package tree

import (
	"sort"
	"strings"
)

const pathSeparators = `/\`

// Matcher decides whether a directory is left out of the rendered tree
// together with its whole subtree. A directory name matches when the name
// itself or its stem (the name without its final suffix) is listed.
type Matcher struct {
	names map[string]struct{}
}

// NewMatcher builds a matcher from raw exclusion entries. Entries are trimmed,
// trailing path separators are dropped, and empty entries are ignored.
func NewMatcher(entries []string) Matcher {
	names := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		normalizedEntry := strings.TrimRight(strings.TrimSpace(entry), pathSeparators)
		if normalizedEntry == "" {
			continue
		}
		names[normalizedEntry] = struct{}{}
	}
	return Matcher{names: names}
}

// IsExcluded reports whether a directory with the provided final path segment is excluded.
func (matcher Matcher) IsExcluded(directoryName string) bool {
	if len(matcher.names) == 0 {
		return false
	}
	if _, listed := matcher.names[directoryName]; listed {
		return true
	}
	_, stemListed := matcher.names[nameStem(directoryName)]
	return stemListed
}

// Len returns the number of distinct exclusion entries.
func (matcher Matcher) Len() int {
	return len(matcher.names)
}

// Names returns the exclusion entries in sorted order.
func (matcher Matcher) Names() []string {
	names := make([]string, 0, len(matcher.names))
	for name := range matcher.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// nameStem strips the final suffix from a name. A leading dot does not start
// a suffix and a trailing dot leaves the name unchanged.
func nameStem(name string) string {
	suffixIndex := strings.LastIndex(name, ".")
	if suffixIndex <= 0 || suffixIndex == len(name)-1 {
		return name
	}
	return name[:suffixIndex]
}
