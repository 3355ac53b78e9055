package commands

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/tokenum/internal/config"
	"github.com/temirov/tokenum/internal/types"
	"github.com/temirov/tokenum/internal/utils"
)

const (
	walkReadDirectoryOperation = "read directory"
	walkIgnoreRulesOperation   = "load ignore rules for"

	debugSkipGitDirectory = "skipping git directory"
	debugSkipHidden       = "skipping hidden entry"
	debugSkipIgnored      = "skipping ignored entry"
	debugSkipDangling     = "skipping dangling symlink"
	debugSkipIrregular    = "skipping irregular file"
)

// WalkOptions controls which entries a walk yields.
type WalkOptions struct {
	Ignore        config.IgnoreOptions
	IncludeHidden bool
	Logger        *zap.Logger
}

// WalkEntry is one file or directory below the walk root.
type WalkEntry struct {
	Path         string
	RelativePath string
	IsDirectory  bool
	// IsSymlink marks an entry reached through a symbolic link. Symlinked
	// directories are reported but never descended.
	IsSymlink bool
}

// Walk visits every entry below rootDirectory depth-first, in lexical order
// within each directory. The root itself is not visited. Ignored
// directories are not descended. The first error returned by visit or by
// the filesystem stops the walk.
func Walk(rootDirectory string, options WalkOptions, visit func(WalkEntry) error) error {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rules, err := config.NewIgnoreRules(rootDirectory, options.Ignore)
	if err != nil {
		return types.NewIOError(walkIgnoreRulesOperation, rootDirectory, err)
	}
	walker := directoryWalker{root: rootDirectory, options: options, logger: logger, visit: visit}
	return walker.walkDirectory(rootDirectory, rules)
}

type directoryWalker struct {
	root    string
	options WalkOptions
	logger  *zap.Logger
	visit   func(WalkEntry) error
}

func (walker directoryWalker) walkDirectory(directory string, rules config.IgnoreRules) error {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return types.NewIOError(walkReadDirectoryOperation, directory, err)
	}
	for _, entry := range entries {
		entryPath := filepath.Join(directory, entry.Name())
		walkEntry, keep := walker.resolveEntry(entryPath, entry, rules)
		if !keep {
			continue
		}
		if err := walker.visit(walkEntry); err != nil {
			return err
		}
		if !walkEntry.IsDirectory || walkEntry.IsSymlink {
			continue
		}
		nestedRules, err := rules.Descend(entryPath, walker.options.Ignore)
		if err != nil {
			return types.NewIOError(walkIgnoreRulesOperation, entryPath, err)
		}
		if err := walker.walkDirectory(entryPath, nestedRules); err != nil {
			return err
		}
	}
	return nil
}

// resolveEntry applies the skip rules to one directory entry.
func (walker directoryWalker) resolveEntry(entryPath string, entry os.DirEntry, rules config.IgnoreRules) (WalkEntry, bool) {
	name := entry.Name()
	if name == utils.GitDirectoryName {
		walker.logger.Debug(debugSkipGitDirectory, zap.String("path", entryPath))
		return WalkEntry{}, false
	}
	if !walker.options.IncludeHidden && utils.IsHiddenName(name) {
		walker.logger.Debug(debugSkipHidden, zap.String("path", entryPath))
		return WalkEntry{}, false
	}

	walkEntry := WalkEntry{
		Path:         entryPath,
		RelativePath: utils.RelativePathOrSelf(entryPath, walker.root),
	}
	mode := entry.Type()
	switch {
	case mode&os.ModeSymlink != 0:
		targetInfo, statErr := os.Stat(entryPath)
		if statErr != nil {
			walker.logger.Debug(debugSkipDangling, zap.String("path", entryPath), zap.Error(statErr))
			return WalkEntry{}, false
		}
		walkEntry.IsSymlink = true
		walkEntry.IsDirectory = targetInfo.IsDir()
		if !walkEntry.IsDirectory && !targetInfo.Mode().IsRegular() {
			walker.logger.Debug(debugSkipIrregular, zap.String("path", entryPath))
			return WalkEntry{}, false
		}
	case mode.IsDir():
		walkEntry.IsDirectory = true
	case !mode.IsRegular():
		walker.logger.Debug(debugSkipIrregular, zap.String("path", entryPath))
		return WalkEntry{}, false
	}

	if rules.Ignored(entryPath, walkEntry.IsDirectory) {
		walker.logger.Debug(debugSkipIgnored, zap.String("path", entryPath))
		return WalkEntry{}, false
	}
	return walkEntry, true
}
