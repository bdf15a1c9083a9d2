// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/tree/internal/config"
	"github.com/temirov/tree/internal/output"
	"github.com/temirov/tree/internal/services/clipboard"
	"github.com/temirov/tree/internal/tree"
	"github.com/temirov/tree/internal/utils"
)

const (
	rootFlagName          = "root"
	rootFlagShorthand     = "r"
	filterFlagName        = "filter"
	filterFlagShorthand   = "f"
	foldersFirstFlagName  = "folders-first"
	foldersFirstShorthand = "F"
	outputFileFlagName    = "output-file"
	outputFileShorthand   = "o"
	encodingFlagName      = "encoding"
	maxDepthFlagName      = "max-depth"
	maxDepthFlagShorthand = "d"
	configFlagName        = "config"
	summaryFlagName       = "summary"
	copyFlagName          = "copy"
	versionFlagName       = "version"
	defaultRootPath       = "."
	versionTemplate       = "tree version: %s\n"
	rootUse               = "tree [root]"
	rootShortDescription  = "Print the directory tree"
	rootLongDescription   = `tree prints the directory tree below a root directory using box-drawing connectors.
Excluded directory names come from --filter, then from .tree.ini, then from the built-in list.
Use --output-file to also save the tree and --copy to place it on the clipboard.`
	rootUsageExample = `  # Print the current directory two levels deep, folders first
  tree -d 2 -F

  # Include every directory and save the output
  tree -f '' -o tree.txt ./project`

	rootFlagDescription         = "the root directory to start the tree"
	filterFlagDescription       = "directory names to exclude; replaces the configured list, pass '' to include all directories"
	foldersFirstFlagDescription = "print folders before files"
	outputFileFlagDescription   = "also save the output to a file"
	encodingFlagDescription     = "encoding of the output file"
	maxDepthFlagDescription     = "the max depth of the tree to print"
	configFlagDescription       = "configuration file to use instead of ./" + utils.ConfigFileName
	summaryFlagDescription      = "print the number of directories and files"
	copyFlagDescription         = "copy the output to the system clipboard"
	versionFlagDescription      = "display application version"

	summaryTemplate = "%d %s, %d %s"

	errorConflictingRootFormat      = "conflicting root paths %q and %q"
	errorLoadConfigurationFormat    = "loading configuration: %w"
	errorConfiguredDepthFormat      = "configured max_depth: %w"
	errorOpenOutputFormat           = "preparing output: %w"
	errorWriteOutputFormat          = "writing output: %w"
	errorCloseOutputFormat          = "closing output: %w"
	warningSkippedDirectoryMessage  = "skipping unreadable directory"
	warningMissingRootMessage       = "root does not exist"
	warningRootNotDirectoryMessage  = "root is not a directory"
	warningClipboardFailedMessage   = "copying to clipboard failed"
	warningConsolePreparationFailed = "switching console to UTF-8 failed"
	logFieldPath                    = "path"
)

// Environment carries the process resources a command run uses.
type Environment struct {
	Stdout           io.Writer
	Copier           clipboard.Copier
	WorkingDirectory string
}

type commandOptions struct {
	rootPath        string
	filters         []string
	foldersFirst    bool
	outputFilePath  string
	encodingName    string
	maxDepth        int
	configPath      string
	summary         bool
	copyToClipboard bool
	showVersion     bool
}

// renderSettings are the values a run renders with after flags and configuration are combined.
type renderSettings struct {
	rootPath     string
	exclusions   []string
	foldersFirst bool
	maxDepth     int
}

// Execute runs the tree application.
func Execute(logger *zap.Logger) error {
	if consoleError := output.PrepareConsole(os.Stdout); consoleError != nil {
		logger.Warn(warningConsolePreparationFailed, zap.Error(consoleError))
	}
	rootCommand := NewRootCommand(logger, Environment{
		Stdout: os.Stdout,
		Copier: clipboard.NewService(),
	})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(context.Background())
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(logger *zap.Logger, environment Environment) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	if environment.Stdout == nil {
		environment.Stdout = io.Discard
	}
	var options commandOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, writeError := fmt.Fprintf(environment.Stdout, versionTemplate, utils.GetApplicationVersion())
				return writeError
			}
			if len(arguments) == 1 {
				if command.Flags().Changed(rootFlagName) && options.rootPath != arguments[0] {
					return fmt.Errorf(errorConflictingRootFormat, options.rootPath, arguments[0])
				}
				options.rootPath = arguments[0]
			}
			return runTree(command, logger, environment, options)
		},
	}
	rootCommand.SetOut(environment.Stdout)

	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&options.rootPath, rootFlagName, rootFlagShorthand, defaultRootPath, rootFlagDescription)
	flagSet.StringArrayVarP(&options.filters, filterFlagName, filterFlagShorthand, nil, filterFlagDescription)
	registerBooleanFlag(flagSet, &options.foldersFirst, foldersFirstFlagName, foldersFirstShorthand, false, foldersFirstFlagDescription)
	flagSet.StringVarP(&options.outputFilePath, outputFileFlagName, outputFileShorthand, "", outputFileFlagDescription)
	flagSet.StringVar(&options.encodingName, encodingFlagName, output.DefaultEncodingName, encodingFlagDescription)
	registerDepthFlag(flagSet, &options.maxDepth, maxDepthFlagName, maxDepthFlagShorthand, maxDepthFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(flagSet, &options.summary, summaryFlagName, "", false, summaryFlagDescription)
	registerBooleanFlag(flagSet, &options.copyToClipboard, copyFlagName, "", false, copyFlagDescription)
	flagSet.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)

	return rootCommand
}

// resolveSettings applies flag > configuration file > built-in default.
func resolveSettings(command *cobra.Command, options commandOptions, applicationConfig config.ApplicationConfiguration) (renderSettings, error) {
	settings := renderSettings{
		rootPath:     options.rootPath,
		exclusions:   applicationConfig.DefaultExclusions(),
		foldersFirst: options.foldersFirst,
		maxDepth:     options.maxDepth,
	}
	flagSet := command.Flags()
	if flagSet.Changed(filterFlagName) {
		settings.exclusions = utils.SplitList(options.filters...)
	}
	if !flagSet.Changed(foldersFirstFlagName) && applicationConfig.Render.FoldersFirst != nil {
		settings.foldersFirst = *applicationConfig.Render.FoldersFirst
	}
	if !flagSet.Changed(maxDepthFlagName) && applicationConfig.Render.MaxDepth != nil {
		configuredDepth, depthError := tree.ParseDepth(*applicationConfig.Render.MaxDepth)
		if depthError != nil {
			return renderSettings{}, fmt.Errorf(errorConfiguredDepthFormat, depthError)
		}
		settings.maxDepth = configuredDepth
	}
	return settings, nil
}

func runTree(command *cobra.Command, logger *zap.Logger, environment Environment, options commandOptions) (runError error) {
	applicationConfig, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: environment.WorkingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return fmt.Errorf(errorLoadConfigurationFormat, loadError)
	}
	settings, settingsError := resolveSettings(command, options, applicationConfig)
	if settingsError != nil {
		return settingsError
	}
	if _, encodingError := output.LookupEncoding(options.encodingName); encodingError != nil {
		return encodingError
	}

	sinks := []output.LineSink{output.NewWriterSink(environment.Stdout)}
	if options.outputFilePath != "" {
		fileSink, fileError := output.CreateFileSink(options.outputFilePath, options.encodingName)
		if fileError != nil {
			return fmt.Errorf(errorOpenOutputFormat, fileError)
		}
		sinks = append(sinks, fileSink)
	}
	var clipboardBuffer *output.BufferSink
	if options.copyToClipboard {
		clipboardBuffer = output.NewBufferSink()
		sinks = append(sinks, clipboardBuffer)
	}
	lineSink := output.NewMultiSink(sinks...)
	defer func() {
		if closeError := lineSink.Close(); closeError != nil && runError == nil {
			runError = fmt.Errorf(errorCloseOutputFormat, closeError)
		}
	}()

	absoluteRootPath, rootName, resolveError := tree.ResolveRoot(settings.rootPath)
	if resolveError != nil {
		return resolveError
	}
	warnAboutRoot(logger, absoluteRootPath)

	counter, renderError := renderTree(command.Context(), logger, lineSink, absoluteRootPath, rootName, settings)
	if renderError != nil {
		return renderError
	}
	if options.summary {
		if writeError := writeSummary(lineSink, counter); writeError != nil {
			return writeError
		}
	}
	if clipboardBuffer != nil && environment.Copier != nil {
		if copyError := environment.Copier.Copy(clipboardBuffer.String()); copyError != nil {
			logger.Warn(warningClipboardFailedMessage, zap.Error(copyError))
		}
	}
	return nil
}

// entryCounter tallies the rendered body entries for the summary line.
type entryCounter struct {
	directories int
	files       int
}

func (counter *entryCounter) add(entry tree.Entry) {
	if entry.IsDir {
		counter.directories++
		return
	}
	counter.files++
}

func renderTree(ctx context.Context, logger *zap.Logger, lineSink output.LineSink, absoluteRootPath string, rootName string, settings renderSettings) (entryCounter, error) {
	var counter entryCounter
	if writeError := lineSink.WriteLine(rootName); writeError != nil {
		return counter, fmt.Errorf(errorWriteOutputFormat, writeError)
	}
	renderer := tree.NewRenderer(func(path string, err error) {
		logger.Warn(warningSkippedDirectoryMessage, zap.String(logFieldPath, path), zap.Error(err))
	})
	renderConfig := tree.NewConfig(settings.maxDepth, tree.NewMatcher(settings.exclusions), settings.foldersFirst)
	walkError := renderer.Walk(ctx, absoluteRootPath, renderConfig, func(entry tree.Entry) error {
		counter.add(entry)
		if writeError := lineSink.WriteLine(entry.Line()); writeError != nil {
			return fmt.Errorf(errorWriteOutputFormat, writeError)
		}
		return nil
	})
	return counter, walkError
}

func warnAboutRoot(logger *zap.Logger, absoluteRootPath string) {
	rootInfo, statError := os.Stat(absoluteRootPath)
	switch {
	case errors.Is(statError, os.ErrNotExist):
		logger.Warn(warningMissingRootMessage, zap.String(logFieldPath, absoluteRootPath))
	case statError == nil && !rootInfo.IsDir():
		logger.Warn(warningRootNotDirectoryMessage, zap.String(logFieldPath, absoluteRootPath))
	}
}

func writeSummary(lineSink output.LineSink, counter entryCounter) error {
	summaryLine := fmt.Sprintf(summaryTemplate,
		counter.directories, pluralize(counter.directories, "directory", "directories"),
		counter.files, pluralize(counter.files, "file", "files"))
	for _, line := range []string{"", summaryLine} {
		if writeError := lineSink.WriteLine(line); writeError != nil {
			return fmt.Errorf(errorWriteOutputFormat, writeError)
		}
	}
	return nil
}

func pluralize(count int, singular string, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
