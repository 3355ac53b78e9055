// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/tokenum/internal/commands"
	"github.com/temirov/tokenum/internal/config"
	"github.com/temirov/tokenum/internal/output"
	"github.com/temirov/tokenum/internal/services/clipboard"
	"github.com/temirov/tokenum/internal/tokenizer"
	"github.com/temirov/tokenum/internal/types"
	"github.com/temirov/tokenum/internal/utils"
)

const (
	filesFlagName        = "files"
	filesFlagShorthand   = "f"
	stringFlagName       = "string"
	stringFlagShorthand  = "s"
	pathFlagName         = "path"
	pathFlagShorthand    = "p"
	encodingFlagName     = "encoding"
	encodingShorthand    = "e"
	maxSizeFlagName      = "max-size"
	maxSizeShorthand     = "m"
	minTokenFlagName     = "min-token"
	minTokenShorthand    = "t"
	maxTokenFlagName     = "max-token"
	maxTokenShorthand    = "T"
	onlyValidFlagName    = "only-valid"
	onlyValidShorthand   = "d"
	formatFlagName       = "format"
	configFlagName       = "config"
	noGitignoreFlagName  = "no-gitignore"
	noIgnoreFlagName     = "no-ignore"
	hiddenFlagName       = "hidden"
	exclusionFlagName    = "exclude"
	exclusionShorthand   = "x"
	clipboardFlagName    = "clipboard"
	verboseFlagName      = "verbose"
	versionFlagName      = "version"
	initGlobalFlagName   = "global"
	initForceFlagName    = "force"
	versionTemplate      = "tokenum version: %s\n"
	initWrittenTemplate  = "Configuration written to %s\n"
	rootUse              = "tokenum"
	initUse              = "init"
	rootShortDescription = "count language-model tokens of files, strings and directory trees"
	rootLongDescription  = `tokenum counts tokens with OpenAI BPE encodings.
Use -f for a comma-separated list of files, -s for a literal string and -p to
render a directory tree with per-file counts and per-directory totals.
Binary, empty, oversized and non-UTF-8 files are reported without a count.`
	rootUsageExample = `  # Count tokens of two files
  tokenum -f README.md,main.go

  # Render a tree with cl100k_base, hiding everything but valid text
  tokenum -p ./internal -e cl100k_base -d

  # Only list files between 100 and 5000 tokens, no size limit
  tokenum -p . -t 100 -T 5000 -m 0g`
	initShortDescription = "write the default configuration file"

	filesFlagDescription       = "files to count, e.g. file1,file2,file3"
	stringFlagDescription      = "string to count"
	pathFlagDescription        = "directory to traverse recursively"
	encodingFlagDescription    = "encoding: o200k_base, cl100k_base, p50k_base, p50k_edit or r50k_base"
	maxSizeFlagDescription     = "files larger than this are not counted; suffix b, k, m or g, e.g. 26b, 78k, 98m, 4g; 0 means unlimited"
	minTokenFlagDescription    = "omit files with fewer tokens"
	maxTokenFlagDescription    = "omit files with more tokens; 0 means unlimited"
	onlyValidFlagDescription   = "omit binary, empty, oversized and non-UTF-8 files from the output"
	formatFlagDescription      = "output format: raw, json or xml"
	configFlagDescription      = "configuration file to use instead of ./config.yaml"
	noGitignoreFlagDescription = "do not use .gitignore"
	noIgnoreFlagDescription    = "do not use .ignore"
	hiddenFlagDescription      = "include hidden files and directories"
	exclusionFlagDescription   = "exclude path pattern (repeatable)"
	clipboardFlagDescription   = "also copy the output to the clipboard"
	verboseFlagDescription     = "log skipped entries"
	versionFlagDescription     = "display application version"
	initGlobalFlagDescription  = "write to ~/.tokenum/config.yaml instead of ./config.yaml"
	initForceFlagDescription   = "overwrite an existing configuration file"

	filesSeparator            = ","
	missingInputMessage       = "must specify -f or -s or -p"
	unsupportedEncodingFormat = "-e only support o200k_base, cl100k_base, p50k_base, p50k_edit, r50k_base, not: %s"
	unsupportedFormatMessage  = "--format only support raw, json, xml, not: %s"
	configurationErrorFormat  = "load configuration: %w"
	workingDirectoryFormat    = "determine working directory: %w"
)

// CounterFactory builds the token counter for a run.
type CounterFactory func(tokenizer.Config) (tokenizer.Counter, string, error)

// Environment carries the process-level collaborators of a run.
type Environment struct {
	Logger *zap.Logger
	// LogLevel, when set, is lowered to debug by --verbose.
	LogLevel         *zap.AtomicLevel
	Output           io.Writer
	Clipboard        clipboard.Copier
	NewCounter       CounterFactory
	WorkingDirectory string
}

func (environment Environment) withDefaults() Environment {
	if environment.Logger == nil {
		environment.Logger = zap.NewNop()
	}
	if environment.Output == nil {
		environment.Output = os.Stdout
	}
	if environment.Clipboard == nil {
		environment.Clipboard = clipboard.NewService()
	}
	if environment.NewCounter == nil {
		environment.NewCounter = tokenizer.NewCounter
	}
	return environment
}

// Execute runs the tokenum application with os.Args.
func Execute(environment Environment) error {
	rootCommand := NewRootCommand(environment)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// countFlags holds the raw flag values before configuration is applied.
type countFlags struct {
	files       string
	text        string
	path        string
	encoding    string
	maxSize     string
	minToken    uint64
	maxToken    uint64
	onlyValid   bool
	format      string
	configPath  string
	noGitignore bool
	noIgnore    bool
	hidden      bool
	exclusions  []string
	clipboard   bool
	verbose     bool
	showVersion bool
}

// NewRootCommand builds the tokenum command tree.
func NewRootCommand(environment Environment) *cobra.Command {
	environment = environment.withDefaults()
	var flags countFlags

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if flags.showVersion {
				_, err := fmt.Fprintf(environment.Output, versionTemplate, utils.GetApplicationVersion())
				return err
			}
			if flags.verbose && environment.LogLevel != nil {
				environment.LogLevel.SetLevel(zapcore.DebugLevel)
			}
			options, err := resolveRunOptions(command, flags, environment)
			if err != nil {
				return err
			}
			return runCount(options, environment)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&flags.files, filesFlagName, filesFlagShorthand, "", filesFlagDescription)
	flagSet.StringVarP(&flags.text, stringFlagName, stringFlagShorthand, "", stringFlagDescription)
	flagSet.StringVarP(&flags.path, pathFlagName, pathFlagShorthand, "", pathFlagDescription)
	flagSet.StringVarP(&flags.encoding, encodingFlagName, encodingShorthand, tokenizer.DefaultEncoding, encodingFlagDescription)
	flagSet.StringVarP(&flags.maxSize, maxSizeFlagName, maxSizeShorthand, utils.DefaultSizeLimitExpression, maxSizeFlagDescription)
	flagSet.Uint64VarP(&flags.minToken, minTokenFlagName, minTokenShorthand, 0, minTokenFlagDescription)
	flagSet.Uint64VarP(&flags.maxToken, maxTokenFlagName, maxTokenShorthand, 0, maxTokenFlagDescription)
	registerBooleanFlag(flagSet, &flags.onlyValid, onlyValidFlagName, onlyValidShorthand, false, onlyValidFlagDescription)
	flagSet.StringVar(&flags.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	flagSet.StringVar(&flags.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(flagSet, &flags.noGitignore, noGitignoreFlagName, "", false, noGitignoreFlagDescription)
	registerBooleanFlag(flagSet, &flags.noIgnore, noIgnoreFlagName, "", false, noIgnoreFlagDescription)
	registerBooleanFlag(flagSet, &flags.hidden, hiddenFlagName, "", false, hiddenFlagDescription)
	flagSet.StringArrayVarP(&flags.exclusions, exclusionFlagName, exclusionShorthand, nil, exclusionFlagDescription)
	registerBooleanFlag(flagSet, &flags.clipboard, clipboardFlagName, "", false, clipboardFlagDescription)
	registerBooleanFlag(flagSet, &flags.verbose, verboseFlagName, "", false, verboseFlagDescription)
	registerBooleanFlag(flagSet, &flags.showVersion, versionFlagName, "", false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand(environment))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

func createInitCommand(environment Environment) *cobra.Command {
	var global bool
	var force bool
	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			path, err := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: environment.WorkingDirectory,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(environment.Output, initWrittenTemplate, path)
			return err
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, initGlobalFlagName, "", false, initGlobalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, initForceFlagName, "", false, initForceFlagDescription)
	return initCommand
}

// runOptions are the validated settings of one counting run.
type runOptions struct {
	files      []commands.FileTarget
	text       *string
	path       string
	encoding   string
	sizeLimit  utils.SizeLimit
	tokenRange commands.TokenRange
	onlyValid  bool
	format     string
	clipboard  bool
	walk       commands.WalkOptions
}

// resolveRunOptions applies configuration defaults to every flag the user
// did not set, then validates the result in the order inputs are listed:
// size limit, files, path, encoding, format, and finally that something
// was requested at all.
func resolveRunOptions(command *cobra.Command, flags countFlags, environment Environment) (runOptions, error) {
	workingDirectory := environment.WorkingDirectory
	if workingDirectory == "" {
		current, err := os.Getwd()
		if err != nil {
			return runOptions{}, fmt.Errorf(workingDirectoryFormat, err)
		}
		workingDirectory = current
	}
	applicationConfiguration, err := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: flags.configPath,
	})
	if err != nil {
		return runOptions{}, fmt.Errorf(configurationErrorFormat, err)
	}
	flags = applyConfiguration(command, flags, applicationConfiguration.Count)

	sizeLimit, err := utils.ParseSizeLimit(flags.maxSize)
	if err != nil {
		return runOptions{}, err
	}

	options := runOptions{
		encoding:   flags.encoding,
		sizeLimit:  sizeLimit,
		tokenRange: commands.TokenRange{Min: flags.minToken, Max: flags.maxToken},
		onlyValid:  flags.onlyValid,
		format:     strings.ToLower(strings.TrimSpace(flags.format)),
		clipboard:  flags.clipboard,
		walk: commands.WalkOptions{
			Ignore: config.IgnoreOptions{
				UseGitignore:      !flags.noGitignore,
				UseIgnoreFile:     !flags.noIgnore,
				ExclusionPatterns: flags.exclusions,
			},
			IncludeHidden: flags.hidden,
			Logger:        environment.Logger,
		},
	}

	if command.Flags().Changed(filesFlagName) {
		options.files, err = validateFiles(workingDirectory, strings.Split(flags.files, filesSeparator))
		if err != nil {
			return runOptions{}, err
		}
	}
	if command.Flags().Changed(stringFlagName) {
		text := flags.text
		options.text = &text
	}
	if command.Flags().Changed(pathFlagName) {
		options.path, err = validateDirectory(workingDirectory, flags.path)
		if err != nil {
			return runOptions{}, err
		}
	}
	if !tokenizer.IsSupportedEncoding(options.encoding) {
		return runOptions{}, types.NewParameterError(unsupportedEncodingFormat, options.encoding)
	}
	if !output.IsSupportedFormat(options.format) {
		return runOptions{}, types.NewParameterError(unsupportedFormatMessage, flags.format)
	}
	if len(options.files) == 0 && options.text == nil && options.path == "" {
		return runOptions{}, types.NewParameterError(missingInputMessage)
	}
	return options, nil
}

// applyConfiguration fills in configuration values for flags left at their
// defaults. Explicit flags always win.
func applyConfiguration(command *cobra.Command, flags countFlags, configuration config.CountConfiguration) countFlags {
	changed := command.Flags().Changed
	if !changed(encodingFlagName) && configuration.Encoding != "" {
		flags.encoding = configuration.Encoding
	}
	if !changed(maxSizeFlagName) && configuration.MaxSize != "" {
		flags.maxSize = configuration.MaxSize
	}
	if !changed(minTokenFlagName) && configuration.MinToken != nil {
		flags.minToken = *configuration.MinToken
	}
	if !changed(maxTokenFlagName) && configuration.MaxToken != nil {
		flags.maxToken = *configuration.MaxToken
	}
	if !changed(onlyValidFlagName) && configuration.OnlyValid != nil {
		flags.onlyValid = *configuration.OnlyValid
	}
	if !changed(formatFlagName) && configuration.Format != "" {
		flags.format = configuration.Format
	}
	if !changed(clipboardFlagName) && configuration.Clipboard != nil {
		flags.clipboard = *configuration.Clipboard
	}
	paths := configuration.Paths
	if !changed(noGitignoreFlagName) && paths.UseGitignore != nil {
		flags.noGitignore = !*paths.UseGitignore
	}
	if !changed(noIgnoreFlagName) && paths.UseIgnoreFile != nil {
		flags.noIgnore = !*paths.UseIgnoreFile
	}
	if !changed(hiddenFlagName) && paths.Hidden != nil {
		flags.hidden = *paths.Hidden
	}
	flags.exclusions = utils.DeduplicatePatterns(append(append([]string{}, paths.Exclude...), flags.exclusions...))
	return flags
}

// validateFiles requires every entry, blank ones included, to exist as a
// regular file. Relative entries are resolved against workingDirectory;
// the report keeps them as typed.
func validateFiles(workingDirectory string, files []string) ([]commands.FileTarget, error) {
	targets := make([]commands.FileTarget, 0, len(files))
	for _, file := range files {
		resolved := utils.ResolveAgainst(workingDirectory, file)
		info, err := os.Stat(resolved)
		if file == "" || err != nil || !info.Mode().IsRegular() {
			return nil, types.NewNotFoundError(file)
		}
		targets = append(targets, commands.FileTarget{Label: file, Path: resolved})
	}
	return targets, nil
}

// validateDirectory requires path to be an existing directory and returns
// it resolved against workingDirectory.
func validateDirectory(workingDirectory string, path string) (string, error) {
	resolved := utils.ResolveAgainst(workingDirectory, path)
	info, err := os.Stat(resolved)
	if path == "" || err != nil || !info.IsDir() {
		return "", types.NewNotFoundError(path)
	}
	return resolved, nil
}

// runCount produces the whole report in memory and writes it once, so a
// failure part way through leaves stdout untouched.
func runCount(options runOptions, environment Environment) error {
	counter, encodingName, err := environment.NewCounter(tokenizer.Config{Encoding: options.encoding})
	if err != nil {
		return err
	}
	treeBuilder := commands.TreeBuilder{
		TokenCounter: counter,
		SizeLimit:    options.sizeLimit,
		TokenRange:   options.tokenRange,
		OnlyValid:    options.onlyValid,
		WalkOptions:  options.walk,
		Logger:       environment.Logger,
	}

	report := types.Report{Encoding: encodingName}
	if len(options.files) > 0 {
		report.Files, err = treeBuilder.CountFiles(options.files)
		if err != nil {
			return err
		}
	}
	if options.text != nil {
		stringCount, err := treeBuilder.CountString(*options.text)
		if err != nil {
			return err
		}
		report.String = &stringCount
	}
	if options.path != "" {
		report.Tree, err = treeBuilder.Build(options.path)
		if err != nil {
			return err
		}
	}

	rendered, err := output.Render(report, options.format)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(environment.Output, rendered); err != nil {
		return err
	}
	if options.clipboard {
		return environment.Clipboard.Copy(rendered)
	}
	return nil
}
