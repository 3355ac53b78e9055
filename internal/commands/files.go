package commands

import (
	"errors"

	"github.com/temirov/tokenum/internal/types"
)

const stringCountOperation = "count tokens in"

var errNilCounter = errors.New("nil tokenizer counter")

// FileTarget is one requested file: Label as the user wrote it and Path
// where it is read from.
type FileTarget struct {
	Label string
	Path  string
}

// CountFiles inspects each listed file in order. A file is reported under
// the same rules the tree applies to its leaves.
func (treeBuilder *TreeBuilder) CountFiles(targets []FileTarget) ([]types.FileCount, error) {
	var counts []types.FileCount
	for _, target := range targets {
		inspection, err := treeBuilder.inspectFile(target.Path)
		if err != nil {
			return nil, err
		}
		if !treeBuilder.applyPolicy(inspection).Visible {
			treeBuilder.logSuppressed(target.Path, inspection)
			continue
		}
		counts = append(counts, types.FileCount{
			Path:           target.Label,
			Annotation:     annotateFile(inspection, treeBuilder.SizeLimit),
			Classification: inspection.Classification.Kind.String(),
			SizeBytes:      inspection.SizeBytes,
			Tokens:         inspection.Classification.TokenCount,
		})
	}
	return counts, nil
}

// CountString counts the tokens of text as given, special tokens included.
func (treeBuilder *TreeBuilder) CountString(text string) (types.StringCount, error) {
	if treeBuilder.TokenCounter == nil {
		return types.StringCount{}, types.NewIOError(stringCountOperation, "-s string", errNilCounter)
	}
	tokens, err := treeBuilder.TokenCounter.CountString(text)
	if err != nil {
		return types.StringCount{}, types.NewIOError(stringCountOperation, "-s string", err)
	}
	return types.StringCount{Tokens: uint64(tokens)}, nil
}
