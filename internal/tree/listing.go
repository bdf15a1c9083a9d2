package tree

import (
	"cmp"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

type listedEntry struct {
	path  string
	name  string
	isDir bool
}

// sortKey orders one group of a listing: the category rank puts the group
// emitted first ahead of the other one, then names compare case-insensitively.
type sortKey struct {
	categoryRank int
	foldedName   string
	name         string
}

func newSortKey(entry listedEntry, foldersFirst bool) sortKey {
	categoryRank := 1
	if entry.isDir == foldersFirst {
		categoryRank = 0
	}
	return sortKey{
		categoryRank: categoryRank,
		foldedName:   strings.ToLower(entry.name),
		name:         entry.name,
	}
}

func compareSortKeys(left, right sortKey) int {
	if rankOrder := cmp.Compare(left.categoryRank, right.categoryRank); rankOrder != 0 {
		return rankOrder
	}
	if nameOrder := strings.Compare(left.foldedName, right.foldedName); nameOrder != 0 {
		return nameOrder
	}
	return strings.Compare(left.name, right.name)
}

// listDirectory reads the immediate children of directoryPath and returns them
// split into sorted files and sorted, non-excluded directories.
func listDirectory(directoryPath string, config Config) ([]listedEntry, []listedEntry, error) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil, nil, readDirectoryError
	}

	children := make([]listedEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		children = append(children, listedEntry{
			path:  childPath,
			name:  directoryEntry.Name(),
			isDir: isDirectoryEntry(childPath, directoryEntry),
		})
	}

	slices.SortStableFunc(children, func(left, right listedEntry) int {
		return compareSortKeys(newSortKey(left, config.FoldersFirst), newSortKey(right, config.FoldersFirst))
	})

	var files []listedEntry
	var directories []listedEntry
	for _, child := range children {
		if !child.isDir {
			files = append(files, child)
			continue
		}
		if config.Exclusions.IsExcluded(child.name) {
			continue
		}
		directories = append(directories, child)
	}
	return files, directories, nil
}

// isDirectoryEntry follows symbolic links so a link to a directory is listed as one.
func isDirectoryEntry(entryPath string, directoryEntry os.DirEntry) bool {
	if directoryEntry.IsDir() {
		return true
	}
	if directoryEntry.Type()&os.ModeSymlink == 0 {
		return false
	}
	return isDirectory(entryPath)
}

func isDirectory(path string) bool {
	info, statError := os.Stat(path)
	return statError == nil && info.IsDir()
}
