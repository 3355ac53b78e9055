package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/tokenum/internal/utils"
)

const (
	workingDirectoryErrorFormat  = "determine working directory: %w"
	statConfigurationErrorFormat = "stat configuration %s: %w"
	directoryConfigurationFormat = "configuration path %s is a directory"
	readConfigurationErrorFormat = "read configuration from %s: %w"
	decodeConfigurationFormat    = "decode configuration: %w"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds the configuration file contents.
type ApplicationConfiguration struct {
	Count CountConfiguration `mapstructure:"count"`
}

// CountConfiguration supplies defaults for the counting flags. Unset
// pointer and empty string fields leave the built-in default in place.
type CountConfiguration struct {
	Encoding  string            `mapstructure:"encoding"`
	MaxSize   string            `mapstructure:"max_size"`
	MinToken  *uint64           `mapstructure:"min_token"`
	MaxToken  *uint64           `mapstructure:"max_token"`
	OnlyValid *bool             `mapstructure:"only_valid"`
	Format    string            `mapstructure:"format"`
	Clipboard *bool             `mapstructure:"clipboard"`
	Paths     PathConfiguration `mapstructure:"paths"`
}

// PathConfiguration configures inclusion and exclusion rules for path traversal.
type PathConfiguration struct {
	Exclude       []string `mapstructure:"exclude"`
	UseGitignore  *bool    `mapstructure:"use_gitignore"`
	UseIgnoreFile *bool    `mapstructure:"use_ignore"`
	Hidden        *bool    `mapstructure:"hidden"`
}

// LoadApplicationConfiguration layers the global ~/.tokenum/config.yaml and
// then the local ./config.yaml (or the explicit file) into one viper
// instance. Keys in the later file win; lists are replaced, not appended.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf(workingDirectoryErrorFormat, err)
		}
		workingDirectory = currentDirectory
	}

	reader := viper.New()
	reader.SetConfigType(configurationType)

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		if mergeErr := mergeConfigurationFile(reader, globalPath, false); mergeErr != nil {
			return ApplicationConfiguration{}, mergeErr
		}
	}
	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if mergeErr := mergeConfigurationFile(reader, localPath, options.ExplicitFilePath != ""); mergeErr != nil {
		return ApplicationConfiguration{}, mergeErr
	}

	var configuration ApplicationConfiguration
	if err := reader.Unmarshal(&configuration); err != nil {
		return ApplicationConfiguration{}, fmt.Errorf(decodeConfigurationFormat, err)
	}
	if len(configuration.Count.Paths.Exclude) > 0 {
		configuration.Count.Paths.Exclude = utils.DeduplicatePatterns(configuration.Count.Paths.Exclude)
	}
	return configuration, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

// mergeConfigurationFile folds one YAML file into reader. A missing file
// is skipped unless it was requested explicitly.
func mergeConfigurationFile(reader *viper.Viper, path string, required bool) error {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return nil
		}
		return fmt.Errorf(statConfigurationErrorFormat, path, statErr)
	}
	if info.IsDir() {
		return fmt.Errorf(directoryConfigurationFormat, path)
	}
	file, openErr := os.Open(path)
	if openErr != nil {
		return fmt.Errorf(readConfigurationErrorFormat, path, openErr)
	}
	defer file.Close()
	if mergeErr := reader.MergeConfig(file); mergeErr != nil {
		return fmt.Errorf(readConfigurationErrorFormat, path, mergeErr)
	}
	return nil
}
