package commands

import (
	"go.uber.org/zap"

	"github.com/temirov/tokenum/internal/tokenizer"
	"github.com/temirov/tokenum/internal/utils"
)

// TokenRange bounds the token count of files that are reported. A zero Max
// means no upper bound.
type TokenRange struct {
	Min uint64
	Max uint64
}

// Contains reports whether tokens lies within the range, inclusive.
func (tokenRange TokenRange) Contains(tokens uint64) bool {
	if tokens < tokenRange.Min {
		return false
	}
	return tokenRange.Max == 0 || tokens <= tokenRange.Max
}

// TreeBuilder builds annotated directory trees using configured options.
type TreeBuilder struct {
	TokenCounter tokenizer.Counter
	SizeLimit    utils.SizeLimit
	TokenRange   TokenRange
	// OnlyValid hides files that are not valid text. Hidden files still
	// count towards their directories' totals.
	OnlyValid   bool
	WalkOptions WalkOptions
	Logger      *zap.Logger
}

func (treeBuilder *TreeBuilder) logger() *zap.Logger {
	if treeBuilder.Logger == nil {
		return zap.NewNop()
	}
	return treeBuilder.Logger
}
