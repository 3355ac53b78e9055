package utils_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/temirov/tokenum/internal/utils"
)

func TestDeduplicatePatterns(t *testing.T) {
	result := utils.DeduplicatePatterns([]string{"*.log", "build/", "*.log", "tmp", "build/"})
	expected := []string{"*.log", "build/", "tmp"}
	if !reflect.DeepEqual(result, expected) {
		t.Fatalf("expected %v, got %v", expected, result)
	}
}

func TestResolveAgainst(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "work")
	absolute := filepath.Join(string(filepath.Separator), "elsewhere", "a.txt")
	testCases := []struct {
		name      string
		directory string
		path      string
		expected  string
	}{
		{name: "relative joined", directory: base, path: "docs/a.txt", expected: filepath.Join(base, "docs", "a.txt")},
		{name: "absolute kept", directory: base, path: absolute, expected: absolute},
		{name: "no directory", directory: "", path: "a.txt", expected: "a.txt"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if resolved := utils.ResolveAgainst(testCase.directory, testCase.path); resolved != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, resolved)
			}
		})
	}
}

func TestRelativePathOrSelf(t *testing.T) {
	root := t.TempDir()
	if relative := utils.RelativePathOrSelf(root, root); relative != "." {
		t.Fatalf("expected '.', got %q", relative)
	}
	nested := filepath.Join(root, "sub", "file.txt")
	if relative := utils.RelativePathOrSelf(nested, root); relative != "sub/file.txt" {
		t.Fatalf("expected sub/file.txt, got %q", relative)
	}
}

func TestPathComponents(t *testing.T) {
	if components := utils.PathComponents("."); components != nil {
		t.Fatalf("expected no components for the root, got %v", components)
	}
	expected := []string{"sub", "deeper", "file.txt"}
	if components := utils.PathComponents("sub/deeper/file.txt"); !reflect.DeepEqual(components, expected) {
		t.Fatalf("expected %v, got %v", expected, components)
	}
}

func TestIsHiddenName(t *testing.T) {
	testCases := map[string]bool{
		".git":       true,
		".gitignore": true,
		"main.go":    false,
		".":          false,
		"..":         false,
	}
	for name, expected := range testCases {
		if utils.IsHiddenName(name) != expected {
			t.Fatalf("IsHiddenName(%q) expected %t", name, expected)
		}
	}
}

func TestIsBinary(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		expected bool
	}{
		{name: "empty", data: nil, expected: false},
		{name: "plain text", data: []byte("hello world\n"), expected: false},
		{name: "nul byte", data: []byte{'a', 0x00, 'b'}, expected: true},
		{name: "backspace byte", data: []byte{0x08}, expected: true},
		{name: "tab is text", data: []byte{'\t', 'a'}, expected: false},
		{name: "control byte after sniff window", data: append(make51Letters(), 0x00), expected: false},
		{name: "control byte at window edge", data: append(make49Letters(), 0x01), expected: true},
		{name: "invalid utf8 is not binary", data: []byte{0xff, 0xfe, 'a'}, expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if result := utils.IsBinary(testCase.data); result != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, result)
			}
		})
	}
}

func TestIsBinaryNeverFlagsTextLikePrefixes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prefix := rapid.SliceOfN(rapid.ByteRange(0x09, 0xff), 0, 50).Draw(t, "prefix")
		tail := rapid.SliceOf(rapid.Byte()).Draw(t, "tail")
		data := append(append([]byte{}, prefix...), tail...)
		if len(prefix) == 50 && utils.IsBinary(data) {
			t.Fatalf("bytes beyond the sniff window flagged data as binary: %v", data)
		}
		if len(tail) == 0 && utils.IsBinary(data) {
			t.Fatalf("text-like bytes flagged as binary: %v", data)
		}
	})
}

func make51Letters() []byte {
	return repeatLetter(51)
}

func make49Letters() []byte {
	return repeatLetter(49)
}

func repeatLetter(count int) []byte {
	data := make([]byte, count)
	for index := range data {
		data[index] = 'x'
	}
	return data
}
