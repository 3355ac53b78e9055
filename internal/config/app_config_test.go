package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/tokenum/internal/utils"
)

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func uint64Pointer(value uint64) *uint64 {
	pointer := value
	return &pointer
}

type configTestCase struct {
	name            string
	globalContent   string
	localContent    string
	explicitPath    string
	explicitContent string
	expectEncoding  string
	expectMaxSize   string
	expectMinToken  *uint64
	expectOnlyValid *bool
	expectHidden    *bool
	expectExclude   []string
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:            "local_overrides_global",
			globalContent:   "count:\n  encoding: cl100k_base\n  max_size: 1m\n  only_valid: true\n  paths:\n    hidden: true\n",
			localContent:    "count:\n  encoding: p50k_base\n  min_token: 5\n  only_valid: false\n",
			expectEncoding:  "p50k_base",
			expectMaxSize:   "1m",
			expectMinToken:  uint64Pointer(5),
			expectOnlyValid: boolPointer(false),
			expectHidden:    boolPointer(true),
		},
		{
			name:            "explicit_path_replaces_local",
			globalContent:   "count:\n  encoding: r50k_base\n",
			localContent:    "count:\n  encoding: p50k_edit\n",
			explicitPath:    "custom.yaml",
			explicitContent: "count:\n  max_size: 0g\n",
			expectEncoding:  "r50k_base",
			expectMaxSize:   "0g",
		},
		{
			name:          "exclude_patterns_deduplicated",
			localContent:  "count:\n  paths:\n    exclude: [\"*.md\", \"vendor/\", \"*.md\"]\n",
			expectExclude: []string{"*.md", "vendor/"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				t.Fatalf("create config dir: %v", err)
			}
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configDir, utils.ConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, utils.ConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				if err := os.WriteFile(target, []byte(testCase.explicitContent), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}
			count := loadedConfig.Count

			if count.Encoding != testCase.expectEncoding {
				t.Fatalf("expected encoding %q, got %q", testCase.expectEncoding, count.Encoding)
			}
			if count.MaxSize != testCase.expectMaxSize {
				t.Fatalf("expected max size %q, got %q", testCase.expectMaxSize, count.MaxSize)
			}
			if !reflect.DeepEqual(count.MinToken, testCase.expectMinToken) {
				t.Fatalf("unexpected min token value %v", count.MinToken)
			}
			if !reflect.DeepEqual(count.OnlyValid, testCase.expectOnlyValid) {
				t.Fatalf("unexpected only_valid value %v", count.OnlyValid)
			}
			if !reflect.DeepEqual(count.Paths.Hidden, testCase.expectHidden) {
				t.Fatalf("unexpected hidden value %v", count.Paths.Hidden)
			}
			if len(testCase.expectExclude) > 0 && !reflect.DeepEqual(count.Paths.Exclude, testCase.expectExclude) {
				t.Fatalf("expected exclude %v, got %v", testCase.expectExclude, count.Paths.Exclude)
			}
		})
	}
}

func TestLoadApplicationConfigurationMissingExplicitFile(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	_, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: t.TempDir(),
		ExplicitFilePath: "missing.yaml",
	})
	if err == nil {
		t.Fatalf("expected error for missing explicit configuration")
	}
}

func TestLoadApplicationConfigurationWithoutFiles(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	loadedConfig, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: t.TempDir()})
	if err != nil {
		t.Fatalf("LoadApplicationConfiguration error: %v", err)
	}
	if loadedConfig.Count.Encoding != "" || loadedConfig.Count.OnlyValid != nil || loadedConfig.Count.MaxToken != nil {
		t.Fatalf("expected empty configuration, got %+v", loadedConfig.Count)
	}
}

func TestLoadApplicationConfigurationLocalListReplacesGlobal(t *testing.T) {
	homeDir := t.TempDir()
	workingDir := t.TempDir()
	configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	global := "count:\n  format: xml\n  max_token: 100\n  paths:\n    exclude: [\"dist/\"]\n    use_gitignore: false\n"
	if err := os.WriteFile(filepath.Join(configDir, utils.ConfigFileName), []byte(global), 0o600); err != nil {
		t.Fatalf("write global config: %v", err)
	}
	local := "count:\n  clipboard: true\n  paths:\n    exclude: [\"*.lock\"]\n"
	if err := os.WriteFile(filepath.Join(workingDir, utils.ConfigFileName), []byte(local), 0o600); err != nil {
		t.Fatalf("write local config: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)

	loadedConfig, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir})
	if err != nil {
		t.Fatalf("LoadApplicationConfiguration error: %v", err)
	}
	count := loadedConfig.Count
	if count.Format != "xml" {
		t.Fatalf("expected global format to survive, got %q", count.Format)
	}
	if count.MaxToken == nil || *count.MaxToken != 100 {
		t.Fatalf("expected global max_token to survive, got %v", count.MaxToken)
	}
	if count.Clipboard == nil || !*count.Clipboard {
		t.Fatalf("expected local clipboard")
	}
	if count.Paths.UseGitignore == nil || *count.Paths.UseGitignore {
		t.Fatalf("expected global use_gitignore false to survive")
	}
	if !reflect.DeepEqual(count.Paths.Exclude, []string{"*.lock"}) {
		t.Fatalf("expected local exclusions to replace global ones, got %v", count.Paths.Exclude)
	}
}

func TestLoadApplicationConfigurationRejectsMalformedYAML(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	workingDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(workingDir, utils.ConfigFileName), []byte("count: [unterminated\n"), 0o600); err != nil {
		t.Fatalf("write local config: %v", err)
	}
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected malformed configuration to fail")
	}
}
