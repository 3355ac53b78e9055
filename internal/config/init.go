package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/tokenum/internal/tokenizer"
	"github.com/temirov/tokenum/internal/types"
	"github.com/temirov/tokenum/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into ~/.tokenum.
	InitTargetGlobal InitTarget = "global"

	configurationFileMode      = 0o600
	configurationDirectoryMode = 0o755
	configurationType          = "yaml"

	writeConfigurationOperation = "write configuration to"
	homeDirectoryOperation      = "resolve home directory for"
	workingDirectoryOperation   = "resolve working directory for"
	createDirectoryOperation    = "create configuration directory"
	configurationExistsFormat   = "configuration file already exists at %s, use --force to replace it"
	unsupportedTargetFormat     = "init target must be local or global, not: %s"
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// defaultConfigurationValues are the built-in defaults, keyed the way the
// configuration file nests them.
func defaultConfigurationValues() map[string]any {
	return map[string]any{
		"count.encoding":            tokenizer.DefaultEncoding,
		"count.max_size":            utils.DefaultSizeLimitExpression,
		"count.min_token":           0,
		"count.max_token":           0,
		"count.only_valid":          false,
		"count.format":              types.FormatRaw,
		"count.clipboard":           false,
		"count.paths.exclude":       []string{},
		"count.paths.use_gitignore": true,
		"count.paths.use_ignore":    true,
		"count.paths.hidden":        false,
	}
}

// InitializeConfiguration writes the default configuration to the requested
// target and returns the path it wrote. An existing file is only replaced
// when Force is set.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath, err := resolveInitDestination(options)
	if err != nil {
		return "", err
	}

	writer := viper.New()
	writer.SetConfigType(configurationType)
	writer.SetConfigPermissions(configurationFileMode)
	for key, value := range defaultConfigurationValues() {
		writer.Set(key, value)
	}

	var writeErr error
	if options.Force {
		writeErr = writer.WriteConfigAs(destinationPath)
	} else {
		writeErr = writer.SafeWriteConfigAs(destinationPath)
	}
	var alreadyExists viper.ConfigFileAlreadyExistsError
	switch {
	case writeErr == nil:
		return destinationPath, nil
	case errors.As(writeErr, &alreadyExists), errors.Is(writeErr, os.ErrExist):
		return "", types.NewParameterError(configurationExistsFormat, destinationPath)
	default:
		return "", types.NewIOError(writeConfigurationOperation, destinationPath, writeErr)
	}
}

func resolveInitDestination(options InitOptions) (string, error) {
	switch options.Target {
	case InitTargetLocal, "":
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			current, err := os.Getwd()
			if err != nil {
				return "", types.NewIOError(workingDirectoryOperation, utils.ConfigFileName, err)
			}
			workingDirectory = current
		}
		return filepath.Join(workingDirectory, utils.ConfigFileName), nil
	case InitTargetGlobal:
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return "", types.NewIOError(homeDirectoryOperation, utils.ConfigFileName, err)
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if err := os.MkdirAll(configurationDirectory, configurationDirectoryMode); err != nil {
			return "", types.NewIOError(createDirectoryOperation, configurationDirectory, err)
		}
		return filepath.Join(configurationDirectory, utils.ConfigFileName), nil
	default:
		return "", types.NewParameterError(unsupportedTargetFormat, options.Target)
	}
}
