package utils

const (
	// LoggerInitializationFailedMessageFormat is used when the zap logger cannot be built.
	LoggerInitializationFailedMessageFormat = "initialize logger: %w"

	// ConfigFileName is the name of both the local and the global configuration file.
	ConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".tokenum"
)
