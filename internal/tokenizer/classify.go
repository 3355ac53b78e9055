package tokenizer

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/temirov/tokenum/internal/types"
	"github.com/temirov/tokenum/internal/utils"
)

// Classify decides how a file of the given size is treated. data is ignored
// when size exceeds maxSize, so callers need not read oversized files. The
// decoded text is returned only for valid content.
func Classify(data []byte, size uint64, maxSize uint64) (types.Classification, string) {
	if size > maxSize {
		return types.Classification{Kind: types.ClassificationOversized}, ""
	}
	if utils.IsBinary(data) {
		return types.Classification{Kind: types.ClassificationBinary}, ""
	}
	decoded := decodeLossy(data)
	if decoded == "" {
		return types.Classification{Kind: types.ClassificationEmpty}, ""
	}
	if strings.ContainsRune(decoded, utf8.RuneError) {
		return types.Classification{Kind: types.ClassificationInvalidEncoding}, ""
	}
	return types.Classification{Kind: types.ClassificationValid}, decoded
}

// decodeLossy converts data to a string, replacing each invalid UTF-8
// sequence with U+FFFD.
func decodeLossy(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}

// CountBytes classifies data and, when it is valid text, fills in its token
// count using counter.
func CountBytes(counter Counter, data []byte, size uint64, maxSize uint64) (types.Classification, error) {
	if counter == nil {
		return types.Classification{}, errors.New("nil tokenizer counter")
	}
	classification, text := Classify(data, size, maxSize)
	if !classification.IsValid() {
		return classification, nil
	}
	tokens, err := counter.CountString(text)
	if err != nil {
		return types.Classification{}, err
	}
	classification.TokenCount = uint64(tokens)
	return classification, nil
}
