// Package tokenizer adapts tiktoken encodings into token counters and
// classifies file content before it is counted.
package tokenizer

import "strings"

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters provided by the CLI.
type Config struct {
	Encoding string
}

const (
	// EncodingO200kBase is used by GPT-4o and o1 models.
	EncodingO200kBase = "o200k_base"
	// EncodingCL100kBase is used by ChatGPT models and text-embedding-ada-002.
	EncodingCL100kBase = "cl100k_base"
	// EncodingP50kBase is used by code models, text-davinci-002 and text-davinci-003.
	EncodingP50kBase = "p50k_base"
	// EncodingP50kEdit is used by edit models such as text-davinci-edit-001.
	EncodingP50kEdit = "p50k_edit"
	// EncodingR50kBase is used by GPT-3 models such as davinci.
	EncodingR50kBase = "r50k_base"

	// DefaultEncoding is selected when no encoding is requested.
	DefaultEncoding = EncodingO200kBase

	gpt2Alias = "gpt2"
)

// SupportedEncodings lists the encodings accepted by the -e flag, in help order.
var SupportedEncodings = []string{
	EncodingO200kBase,
	EncodingCL100kBase,
	EncodingP50kBase,
	EncodingP50kEdit,
	EncodingR50kBase,
}

// IsSupportedEncoding reports whether name is one of SupportedEncodings.
func IsSupportedEncoding(name string) bool {
	for _, supported := range SupportedEncodings {
		if supported == name {
			return true
		}
	}
	return false
}

// resolveEncoding maps a requested name onto a tiktoken encoding. Unknown
// names fall back to DefaultEncoding rather than failing.
func resolveEncoding(requested string) string {
	normalized := strings.ToLower(strings.TrimSpace(requested))
	if normalized == gpt2Alias {
		return EncodingR50kBase
	}
	if IsSupportedEncoding(normalized) {
		return normalized
	}
	return DefaultEncoding
}

// NewCounter returns a Counter for the requested encoding together with the
// encoding name that was actually loaded.
func NewCounter(cfg Config) (Counter, string, error) {
	encodingName := resolveEncoding(cfg.Encoding)
	counter, err := loadBPECounter(encodingName)
	if err != nil {
		return nil, "", err
	}
	return counter, encodingName, nil
}
