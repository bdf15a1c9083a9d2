// Package tree renders a directory subtree as lines of a Unicode tree diagram.
package tree

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"path/filepath"
)

const (
	// BranchConnector prefixes an entry that has siblings rendered after it.
	BranchConnector = "├── "
	// TerminalConnector prefixes the final entry rendered in a directory.
	TerminalConnector = "└── "

	branchIndent   = "│   "
	terminalIndent = "    "

	errorAbsolutePathFormat  = "resolving absolute path for %s: %w"
	errorReadDirectoryFormat = "reading directory %s: %v"
	errorNilHandlerMessage   = "tree walk handler is nil"
)

var errStopIteration = errors.New("tree: iteration stopped")

// Entry is one rendered body line of the tree.
type Entry struct {
	Path      string
	Name      string
	IsDir     bool
	Depth     int
	Indent    string
	Connector string
}

// Line returns the display line for the entry.
func (entry Entry) Line() string {
	return entry.Indent + entry.Connector + entry.Name
}

// DirectoryError reports a directory whose children could not be listed.
type DirectoryError struct {
	Path string
	Err  error
}

func (directoryError *DirectoryError) Error() string {
	return fmt.Sprintf(errorReadDirectoryFormat, directoryError.Path, directoryError.Err)
}

func (directoryError *DirectoryError) Unwrap() error {
	return directoryError.Err
}

// Renderer walks directory trees. Warn receives directories below the root that
// could not be listed; such directories keep their own line but render no children.
type Renderer struct {
	Warn func(path string, err error)
}

// NewRenderer returns a renderer reporting skipped directories to warn.
func NewRenderer(warn func(path string, err error)) *Renderer {
	return &Renderer{Warn: warn}
}

// ResolveRoot returns the absolute form of rootPath and the name displayed on the first line.
// A filesystem root has no final segment and is displayed as itself, for example "/".
func ResolveRoot(rootPath string) (string, string, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return "", "", fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	return absoluteRootPath, filepath.Base(absoluteRootPath), nil
}

// Walk invokes handler for every body entry below rootPath in depth-first
// pre-order. A handler error stops the walk and is returned unchanged.
// A root that is not a directory produces no entries. A root that cannot be
// listed is reported as a *DirectoryError.
func (renderer *Renderer) Walk(ctx context.Context, rootPath string, config Config, handler func(Entry) error) error {
	if handler == nil {
		return errors.New(errorNilHandlerMessage)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	walker := &treeWalker{ctx: ctx, handler: handler, warn: renderer.warnFunction()}
	return walker.renderSubtree(rootPath, config, 1)
}

// Lines returns the lazy sequence of display lines for rootPath: the root's
// display name followed by the body. Directories are listed only as the
// sequence is consumed, so stopping early skips the remaining traversal.
// A failure is yielded as the final element.
func (renderer *Renderer) Lines(ctx context.Context, rootPath string, config Config) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		absoluteRootPath, rootName, resolveError := ResolveRoot(rootPath)
		if resolveError != nil {
			yield("", resolveError)
			return
		}
		if !yield(rootName, nil) {
			return
		}
		walkError := renderer.Walk(ctx, absoluteRootPath, config, func(entry Entry) error {
			if !yield(entry.Line(), nil) {
				return errStopIteration
			}
			return nil
		})
		if walkError != nil && !errors.Is(walkError, errStopIteration) {
			yield("", walkError)
		}
	}
}

func (renderer *Renderer) warnFunction() func(string, error) {
	if renderer == nil || renderer.Warn == nil {
		return func(string, error) {}
	}
	return renderer.Warn
}

// Walk runs a renderer that discards warnings.
func Walk(ctx context.Context, rootPath string, config Config, handler func(Entry) error) error {
	return NewRenderer(nil).Walk(ctx, rootPath, config, handler)
}

// Lines runs a renderer that discards warnings.
func Lines(ctx context.Context, rootPath string, config Config) iter.Seq2[string, error] {
	return NewRenderer(nil).Lines(ctx, rootPath, config)
}

type treeWalker struct {
	ctx     context.Context
	handler func(Entry) error
	warn    func(string, error)
}

func (walker *treeWalker) renderSubtree(directoryPath string, config Config, depth int) error {
	if !isDirectory(directoryPath) {
		return nil
	}
	if config.exhausted() {
		return nil
	}
	if contextError := walker.ctx.Err(); contextError != nil {
		return contextError
	}

	files, directories, listError := listDirectory(directoryPath, config)
	if listError != nil {
		return &DirectoryError{Path: directoryPath, Err: listError}
	}

	if config.FoldersFirst {
		if err := walker.emitDirectories(directories, len(files) > 0, config, depth); err != nil {
			return err
		}
		return walker.emitFiles(files, len(directories) == 0, config, depth)
	}
	if err := walker.emitFiles(files, len(directories) == 0, config, depth); err != nil {
		return err
	}
	return walker.emitDirectories(directories, len(files) > 0, config, depth)
}

func (walker *treeWalker) emitFiles(files []listedEntry, directoriesEmpty bool, config Config, depth int) error {
	lastIndex := len(files) - 1
	for index, file := range files {
		isLast := index == lastIndex && (config.FoldersFirst || directoriesEmpty)
		connector, _ := selectConnector(isLast)
		if err := walker.handler(Entry{
			Path:      file.path,
			Name:      file.name,
			Depth:     depth,
			Indent:    config.Indent,
			Connector: connector,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (walker *treeWalker) emitDirectories(directories []listedEntry, filesNonEmpty bool, config Config, depth int) error {
	lastIndex := len(directories) - 1
	for index, directory := range directories {
		isLast := index == lastIndex && !(config.FoldersFirst && filesNonEmpty)
		connector, extension := selectConnector(isLast)
		if err := walker.handler(Entry{
			Path:      directory.path,
			Name:      directory.name,
			IsDir:     true,
			Depth:     depth,
			Indent:    config.Indent,
			Connector: connector,
		}); err != nil {
			return err
		}

		descendError := walker.renderSubtree(directory.path, config.descend(extension), depth+1)
		var directoryError *DirectoryError
		if errors.As(descendError, &directoryError) && directoryError.Path == directory.path {
			walker.warn(directory.path, directoryError.Err)
			continue
		}
		if descendError != nil {
			return descendError
		}
	}
	return nil
}

// selectConnector returns the connector for an entry and the indent extension
// its children receive.
func selectConnector(isLast bool) (string, string) {
	if isLast {
		return TerminalConnector, terminalIndent
	}
	return BranchConnector, branchIndent
}
