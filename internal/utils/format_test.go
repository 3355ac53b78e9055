package utils_test

import (
	"fmt"
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/temirov/tokenum/internal/types"
	"github.com/temirov/tokenum/internal/utils"
)

func TestFormatFileSize(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    uint64
		expected string
	}{
		{name: "zero", bytes: 0, expected: "0 bytes"},
		{name: "just below a kibibyte", bytes: 1023, expected: "1023 bytes"},
		{name: "one kibibyte", bytes: 1024, expected: "1.00Kb"},
		{name: "two kibibytes", bytes: 2048, expected: "2.00Kb"},
		{name: "fractional kibibytes", bytes: 1536, expected: "1.50Kb"},
		{name: "ten mebibytes", bytes: 10 * 1024 * 1024, expected: "10.00Mb"},
		{name: "one gibibyte", bytes: 1073741824, expected: "1.00Gb"},
		{name: "largest count", bytes: math.MaxUint64, expected: "17179869184.00Gb"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.FormatFileSize(testCase.bytes)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}

func TestParseSizeLimit(t *testing.T) {
	testCases := []struct {
		name          string
		expression    string
		expectedBytes uint64
		expectedLabel string
	}{
		{name: "bytes", expression: "26b", expectedBytes: 26, expectedLabel: "26 bytes"},
		{name: "kibibytes", expression: "78k", expectedBytes: 78 * 1024, expectedLabel: "78Kb"},
		{name: "upper case suffix", expression: "98M", expectedBytes: 98 * 1024 * 1024, expectedLabel: "98Mb"},
		{name: "gibibytes", expression: "4g", expectedBytes: 4 * 1024 * 1024 * 1024, expectedLabel: "4Gb"},
		{name: "zero bytes is unlimited", expression: "0b", expectedBytes: math.MaxUint64, expectedLabel: "17179869183Gb"},
		{name: "zero kibibytes is unlimited", expression: "0k", expectedBytes: math.MaxUint64, expectedLabel: "17179869183Gb"},
		{name: "zero gibibytes is unlimited", expression: "0G", expectedBytes: math.MaxUint64, expectedLabel: "17179869183Gb"},
		{name: "blank keeps default", expression: " ", expectedBytes: 10 * 1024 * 1024, expectedLabel: "10Mb"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			limit, err := utils.ParseSizeLimit(testCase.expression)
			if err != nil {
				t.Fatalf("ParseSizeLimit(%q) error: %v", testCase.expression, err)
			}
			if limit.Bytes != testCase.expectedBytes {
				t.Fatalf("expected %d bytes, got %d", testCase.expectedBytes, limit.Bytes)
			}
			if limit.Label != testCase.expectedLabel {
				t.Fatalf("expected label %q, got %q", testCase.expectedLabel, limit.Label)
			}
		})
	}
}

func TestParseSizeLimitRejectsMalformedValues(t *testing.T) {
	testCases := []struct {
		name         string
		expression   string
		expectedKind types.ErrorKind
	}{
		{name: "unsupported suffix", expression: "10x", expectedKind: types.ParameterError},
		{name: "non numeric prefix", expression: "tenm", expectedKind: types.ParseError},
		{name: "suffix only", expression: "m", expectedKind: types.ParseError},
		{name: "missing suffix", expression: "5", expectedKind: types.ParseError},
		{name: "negative", expression: "-5m", expectedKind: types.ParseError},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := utils.ParseSizeLimit(testCase.expression)
			if err == nil {
				t.Fatalf("expected error for %q", testCase.expression)
			}
			if !types.IsKind(err, testCase.expectedKind) {
				t.Fatalf("expected %s error, got %v", testCase.expectedKind, err)
			}
		})
	}
}

func TestSizeLimitExceeded(t *testing.T) {
	limit, err := utils.ParseSizeLimit("1k")
	if err != nil {
		t.Fatalf("ParseSizeLimit error: %v", err)
	}
	if limit.Exceeded(1024) {
		t.Fatalf("a size equal to the limit must not exceed it")
	}
	if !limit.Exceeded(1025) {
		t.Fatalf("expected 1025 bytes to exceed a 1k limit")
	}
	if utils.UnlimitedSizeLimit().Exceeded(math.MaxUint64) {
		t.Fatalf("unlimited limit must accept every size")
	}
	if utils.DefaultSizeLimit().Bytes != 10*1024*1024 {
		t.Fatalf("unexpected default limit %d", utils.DefaultSizeLimit().Bytes)
	}
}

func TestSizeLimitSuffixesScale(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		value := rapid.Uint64Range(1, 1<<20).Draw(t, "value")
		kibibytes, err := utils.ParseSizeLimit(fmt.Sprintf("%dK", value))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if kibibytes.Bytes != value*1024 || kibibytes.Label != fmt.Sprintf("%dKb", value) {
			t.Fatalf("unexpected limit %+v for %dK", kibibytes, value)
		}
		if kibibytes.Exceeded(value*1024) || !kibibytes.Exceeded(value*1024+1) {
			t.Fatalf("limit %+v must accept its own size and reject one byte more", kibibytes)
		}
	})
}

func TestFormatFileSizeBelowKibibyteIsExact(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.Uint64Range(0, 1023).Draw(t, "size")
		if formatted := utils.FormatFileSize(size); formatted != fmt.Sprintf("%d bytes", size) {
			t.Fatalf("expected %d bytes, got %s", size, formatted)
		}
	})
}
