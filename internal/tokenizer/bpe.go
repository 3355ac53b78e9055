package tokenizer

import (
	"errors"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"

	"github.com/temirov/tokenum/internal/types"
)

// allSpecialTokens makes text such as <|endoftext|> encode as its single
// control token instead of being rejected.
var allSpecialTokens = []string{"all"}

// The ranks of every supported encoding ship inside the binary, so loading
// one never touches the network or the tiktoken cache directory.
func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

var errEncodingNotLoaded = errors.New("byte-pair encoding not loaded")

// bpeCounter counts tokens with one tiktoken byte-pair encoding.
type bpeCounter struct {
	ranks        *tiktoken.Tiktoken
	encodingName string
}

// loadBPECounter loads the embedded ranks of encodingName.
func loadBPECounter(encodingName string) (bpeCounter, error) {
	ranks, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return bpeCounter{}, types.NewEncodingError(encodingName, err)
	}
	return bpeCounter{ranks: ranks, encodingName: encodingName}, nil
}

func (counter bpeCounter) Name() string {
	return counter.encodingName
}

func (counter bpeCounter) CountString(input string) (int, error) {
	if counter.ranks == nil {
		return 0, errEncodingNotLoaded
	}
	return len(counter.ranks.Encode(input, allSpecialTokens, nil)), nil
}
