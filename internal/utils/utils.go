// Package utils contains general helper functions used across the tokenum tool.
package utils

import (
	"path/filepath"
	"strings"
)

// Ignore file constants used across the project.
const (
	// IgnoreFileName is the name of the project's ignore file.
	IgnoreFileName = ".ignore"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
)

const hiddenEntryPrefix = "."

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ResolveAgainst returns path unchanged when it is absolute or directory
// is empty, and joined onto directory otherwise.
func ResolveAgainst(directory string, path string) string {
	if directory == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(directory, path)
}

// RelativePathOrSelf calculates the relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// PathComponents splits a slash-separated relative path into its components.
// The root itself (".") has none.
func PathComponents(relativePath string) []string {
	if relativePath == "" || relativePath == "." {
		return nil
	}
	return strings.Split(filepath.ToSlash(relativePath), "/")
}

// IsHiddenName reports whether a base name is a dot-file or dot-directory.
func IsHiddenName(name string) bool {
	return strings.HasPrefix(name, hiddenEntryPrefix) && name != "." && name != ".."
}
