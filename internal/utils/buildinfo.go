package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion      = "unknown"
	develModuleVersion  = "(devel)"
	gitExecutable       = "git"
	currentDirectoryDot = "."
)

// Version is set at link time with
// -ldflags "-X github.com/temirov/tokenum/internal/utils.Version=v1.2.3".
var Version string

var gitDescribeArguments = [][]string{
	{"describe", "--tags", "--exact-match"},
	{"describe", "--tags", "--long", "--dirty"},
}

// GetApplicationVersion reports the first version it can find: the
// link-time Version, then the module version recorded in the build, then
// git describe run in the enclosing repository.
func GetApplicationVersion() string {
	for _, resolve := range []func() string{linkedVersion, moduleVersion, describedVersion} {
		if version := resolve(); version != "" {
			return version
		}
	}
	return unknownVersion
}

func linkedVersion() string {
	return strings.TrimSpace(Version)
}

func moduleVersion() string {
	buildInfo, available := debug.ReadBuildInfo()
	if !available || buildInfo.Main.Version == develModuleVersion {
		return ""
	}
	return buildInfo.Main.Version
}

func describedVersion() string {
	repositoryRoot, found := FindRepositoryRoot(currentDirectoryDot)
	if !found {
		return ""
	}
	for _, arguments := range gitDescribeArguments {
		// #nosec G204
		command := exec.Command(gitExecutable, arguments...)
		command.Dir = repositoryRoot
		described, err := command.Output()
		if err == nil && len(strings.TrimSpace(string(described))) > 0 {
			return strings.TrimSpace(string(described))
		}
	}
	return ""
}

// FindRepositoryRoot returns the nearest directory at or above start that
// holds a .git directory.
func FindRepositoryRoot(start string) (string, bool) {
	directory, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		info, statErr := os.Stat(filepath.Join(directory, GitDirectoryName))
		if statErr == nil && info.IsDir() {
			return directory, true
		}
		parent := filepath.Dir(directory)
		if parent == directory {
			return "", false
		}
		directory = parent
	}
}
