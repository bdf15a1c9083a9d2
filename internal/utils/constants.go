package utils

const (
	// ConfigFileName is the name of the configuration file looked up in the working directory.
	ConfigFileName = ".tree.ini"
	// GlobalConfigDirectoryName is the directory below the user's home holding the global configuration file.
	GlobalConfigDirectoryName = ".config/tree"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
)

// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes the fatal log entry written when the command fails.
const ApplicationExecutionFailedMessage = "tree failed"
