// Package config loads ignore rules and YAML defaults for the tokenum CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/temirov/tokenum/internal/utils"
)

const (
	gitInfoDirectoryName      = "info"
	gitExcludeFileName        = "exclude"
	loadIgnoreFileErrorFormat = "loading %s: %w"
)

// IgnoreOptions selects which ignore sources apply to a walk.
type IgnoreOptions struct {
	UseGitignore      bool
	UseIgnoreFile     bool
	ExclusionPatterns []string
}

// IgnoreRules is the stack of matchers in effect for one directory: the
// exclusion patterns of the walk root, the git ignore sources above the
// root, then the ignore files of every directory from the root down. Each matcher resolves paths against the
// directory it was loaded from.
type IgnoreRules struct {
	matchers []gitignore.IgnoreMatcher
}

// NewIgnoreRules returns the rules for rootDirectory itself: its exclusion
// patterns plus whatever ignore files it contains. When rootDirectory lies
// inside a git repository, the repository's .git/info/exclude and the
// .gitignore files of every directory from the repository root down to
// rootDirectory apply as well, each scoped to its own directory.
func NewIgnoreRules(rootDirectory string, options IgnoreOptions) (IgnoreRules, error) {
	var rules IgnoreRules
	if exclusion := newExclusionMatcher(rootDirectory, options.ExclusionPatterns); exclusion != nil {
		rules.matchers = append(rules.matchers, exclusion)
	}
	if options.UseGitignore {
		inherited, err := loadRepositoryIgnores(rootDirectory)
		if err != nil {
			return IgnoreRules{}, err
		}
		rules.matchers = append(rules.matchers, inherited...)
	}
	return rules.Descend(rootDirectory, options)
}

// loadRepositoryIgnores loads the git ignore sources that sit above
// rootDirectory in its enclosing repository.
func loadRepositoryIgnores(rootDirectory string) ([]gitignore.IgnoreMatcher, error) {
	repositoryRoot, found := utils.FindRepositoryRoot(rootDirectory)
	if !found {
		return nil, nil
	}
	var matchers []gitignore.IgnoreMatcher
	excludePath := filepath.Join(repositoryRoot, utils.GitDirectoryName, gitInfoDirectoryName, gitExcludeFileName)
	exclude, err := loadIgnoreFile(excludePath, repositoryRoot)
	if err != nil {
		return nil, err
	}
	if exclude != nil {
		matchers = append(matchers, exclude)
	}
	for _, ancestor := range ancestorsBetween(repositoryRoot, rootDirectory) {
		matcher, err := loadIgnoreFile(filepath.Join(ancestor, utils.GitIgnoreFileName), ancestor)
		if err != nil {
			return nil, err
		}
		if matcher != nil {
			matchers = append(matchers, matcher)
		}
	}
	return matchers, nil
}

// ancestorsBetween lists repositoryRoot and the directories below it on the
// way to directory, top down, excluding directory itself.
func ancestorsBetween(repositoryRoot string, directory string) []string {
	var ancestors []string
	for current := filepath.Clean(directory); current != filepath.Clean(repositoryRoot); {
		parent := filepath.Dir(current)
		if parent == current {
			return nil
		}
		ancestors = append([]string{parent}, ancestors...)
		current = parent
	}
	return ancestors
}

// Descend returns the rules that apply inside directory, adding the ignore
// files found there. The receiver is left untouched so sibling directories
// do not see each other's rules.
func (rules IgnoreRules) Descend(directory string, options IgnoreOptions) (IgnoreRules, error) {
	var loaded []gitignore.IgnoreMatcher
	if options.UseIgnoreFile {
		matcher, err := loadIgnoreFile(filepath.Join(directory, utils.IgnoreFileName), directory)
		if err != nil {
			return IgnoreRules{}, err
		}
		if matcher != nil {
			loaded = append(loaded, matcher)
		}
	}
	if options.UseGitignore {
		matcher, err := loadIgnoreFile(filepath.Join(directory, utils.GitIgnoreFileName), directory)
		if err != nil {
			return IgnoreRules{}, err
		}
		if matcher != nil {
			loaded = append(loaded, matcher)
		}
	}
	if len(loaded) == 0 {
		return rules, nil
	}
	combined := make([]gitignore.IgnoreMatcher, 0, len(rules.matchers)+len(loaded))
	combined = append(combined, rules.matchers...)
	combined = append(combined, loaded...)
	return IgnoreRules{matchers: combined}, nil
}

// Ignored reports whether absolutePath is excluded by any matcher in effect.
func (rules IgnoreRules) Ignored(absolutePath string, isDirectory bool) bool {
	for _, matcher := range rules.matchers {
		if matcher.Match(absolutePath, isDirectory) {
			return true
		}
	}
	return false
}

// loadIgnoreFile parses the ignore file at ignoreFilePath with patterns
// relative to baseDirectory. A missing file yields a nil matcher.
func loadIgnoreFile(ignoreFilePath string, baseDirectory string) (gitignore.IgnoreMatcher, error) {
	info, statErr := os.Stat(ignoreFilePath)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return nil, nil
		}
		return nil, fmt.Errorf(loadIgnoreFileErrorFormat, ignoreFilePath, statErr)
	}
	if info.IsDir() {
		return nil, nil
	}
	matcher, err := gitignore.NewGitIgnore(ignoreFilePath, baseDirectory)
	if err != nil {
		return nil, fmt.Errorf(loadIgnoreFileErrorFormat, ignoreFilePath, err)
	}
	return matcher, nil
}

func newExclusionMatcher(rootDirectory string, patterns []string) gitignore.IgnoreMatcher {
	var cleaned []string
	for _, pattern := range utils.DeduplicatePatterns(patterns) {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	if len(cleaned) == 0 {
		return nil
	}
	return gitignore.NewGitIgnoreFromReader(rootDirectory, strings.NewReader(strings.Join(cleaned, "\n")))
}
