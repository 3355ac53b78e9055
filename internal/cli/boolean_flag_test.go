package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func TestBooleanFlagAcceptsLiterals(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		defaultValue bool
		arguments    []string
		expected     bool
		expectError  bool
	}{
		{name: "default kept", defaultValue: false, arguments: []string{}, expected: false},
		{name: "bare long form", defaultValue: false, arguments: []string{"--only-valid"}, expected: true},
		{name: "equals false", defaultValue: true, arguments: []string{"--only-valid=false"}, expected: false},
		{name: "separate no", defaultValue: true, arguments: []string{"--only-valid", "no"}, expected: false},
		{name: "separate on", defaultValue: false, arguments: []string{"--only-valid", "on"}, expected: true},
		{name: "bare shorthand", defaultValue: false, arguments: []string{"-d"}, expected: true},
		{name: "shorthand off", defaultValue: true, arguments: []string{"-d", "off"}, expected: false},
		{name: "shorthand numeric", defaultValue: true, arguments: []string{"-d", "0"}, expected: false},
		{name: "unknown literal rejected", defaultValue: false, arguments: []string{"--only-valid=maybe"}, expectError: true},
		{name: "trailing non literal left alone", defaultValue: false, arguments: []string{"-d", "maybe"}, expected: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			command := &cobra.Command{Use: "switch-test"}
			value := !testCase.defaultValue
			registerBooleanFlag(command.Flags(), &value, "only-valid", "d", testCase.defaultValue, "hide non-valid files")
			parseErr := command.ParseFlags(normalizeBooleanFlagArguments(command, testCase.arguments))
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected parse error for %v", testCase.arguments)
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			if value != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, value)
			}
		})
	}
}

func TestParseSwitch(t *testing.T) {
	testCases := []struct {
		literal  string
		expected bool
		known    bool
	}{
		{literal: "", expected: true, known: true},
		{literal: "YES", expected: true, known: true},
		{literal: " off ", expected: false, known: true},
		{literal: "1", expected: true, known: true},
		{literal: "n", expected: false, known: true},
		{literal: "2", known: false},
	}
	for _, testCase := range testCases {
		value, known := parseSwitch(testCase.literal)
		if known != testCase.known {
			t.Fatalf("%q: expected known=%t, got %t", testCase.literal, testCase.known, known)
		}
		if known && value != testCase.expected {
			t.Fatalf("%q: expected %t, got %t", testCase.literal, testCase.expected, value)
		}
	}
}

func TestNormalizeBooleanFlagArgumentsCoversSubcommands(t *testing.T) {
	root := &cobra.Command{Use: "tokenum"}
	var onlyValid, force bool
	registerBooleanFlag(root.Flags(), &onlyValid, "only-valid", "d", false, "")
	child := &cobra.Command{Use: "init"}
	registerBooleanFlag(child.Flags(), &force, "force", "", false, "")
	root.AddCommand(child)

	arguments := []string{"init", "--force", "yes", "-d", "no", "--", "-d", "no"}
	expected := []string{"init", "--force=yes", "--only-valid=no", "--", "-d", "no"}
	if rewritten := normalizeBooleanFlagArguments(root, arguments); !reflect.DeepEqual(rewritten, expected) {
		t.Fatalf("expected %v, got %v", expected, rewritten)
	}
}
