package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/temirov/tokenum/internal/types"
)

const (
	bytesPerKibibyte = 1024
	bytesPerMebibyte = 1024 * bytesPerKibibyte
	bytesPerGibibyte = 1024 * bytesPerMebibyte

	// DefaultSizeLimitExpression is the -m value used when none is supplied.
	DefaultSizeLimitExpression = "10m"

	unsupportedSuffixFormat = "-m suffix only support b, k, m, g, not %s"
	sizeLimitParseTarget    = "u64"
)

// FormatFileSize renders a byte count using binary units with two decimals,
// or as a plain byte count below one kibibyte.
func FormatFileSize(bytes uint64) string {
	switch {
	case bytes >= bytesPerGibibyte:
		return fmt.Sprintf("%.2fGb", divideBytes(bytes, bytesPerGibibyte))
	case bytes >= bytesPerMebibyte:
		return fmt.Sprintf("%.2fMb", divideBytes(bytes, bytesPerMebibyte))
	case bytes >= bytesPerKibibyte:
		return fmt.Sprintf("%.2fKb", divideBytes(bytes, bytesPerKibibyte))
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}

// divideBytes converts bytes to units of divisor without routing the whole
// count through a float: the quotient and remainder are split first.
func divideBytes(bytes uint64, divisor uint64) float64 {
	quotient := bytes / divisor
	remainder := bytes - quotient*divisor
	return float64(quotient) + float64(remainder)/float64(divisor)
}

// SizeLimit is the maximum file size that is still read and tokenized.
type SizeLimit struct {
	Bytes uint64
	Label string
}

// Unlimited reports whether the limit accepts every size.
func (limit SizeLimit) Unlimited() bool {
	return limit.Bytes == math.MaxUint64
}

// Exceeded reports whether size is above the limit.
func (limit SizeLimit) Exceeded(size uint64) bool {
	return size > limit.Bytes
}

// UnlimitedSizeLimit returns the limit used for a zero -m value.
func UnlimitedSizeLimit() SizeLimit {
	return SizeLimit{
		Bytes: math.MaxUint64,
		Label: fmt.Sprintf("%dGb", uint64(math.MaxUint64)/bytesPerGibibyte),
	}
}

// DefaultSizeLimit returns the 10 MiB limit applied when -m is absent.
func DefaultSizeLimit() SizeLimit {
	return SizeLimit{Bytes: 10 * bytesPerMebibyte, Label: "10Mb"}
}

var sizeLimitUnits = map[rune]struct {
	multiplier  uint64
	labelFormat string
}{
	'b': {multiplier: 1, labelFormat: "%d bytes"},
	'k': {multiplier: bytesPerKibibyte, labelFormat: "%dKb"},
	'm': {multiplier: bytesPerMebibyte, labelFormat: "%dMb"},
	'g': {multiplier: bytesPerGibibyte, labelFormat: "%dGb"},
}

// ParseSizeLimit parses expressions such as 26b, 78K, 98m or 4g. A numeric
// value of zero with any suffix means unlimited; a blank expression keeps the
// default.
func ParseSizeLimit(expression string) (SizeLimit, error) {
	normalized := strings.ToLower(strings.TrimSpace(expression))
	if normalized == "" {
		return DefaultSizeLimit(), nil
	}
	runes := []rune(normalized)
	suffix := runes[len(runes)-1]
	numericPart := string(runes[:len(runes)-1])
	value, parseError := strconv.ParseUint(numericPart, 10, 64)
	if parseError != nil {
		return SizeLimit{}, types.NewParseError(expression, sizeLimitParseTarget, parseError)
	}
	unit, known := sizeLimitUnits[suffix]
	if !known {
		return SizeLimit{}, types.NewParameterError(unsupportedSuffixFormat, string(suffix))
	}
	if value == 0 {
		return UnlimitedSizeLimit(), nil
	}
	bytes := value * unit.multiplier
	if unit.multiplier != 1 && bytes/unit.multiplier != value {
		bytes = math.MaxUint64
	}
	return SizeLimit{Bytes: bytes, Label: fmt.Sprintf(unit.labelFormat, value)}, nil
}
