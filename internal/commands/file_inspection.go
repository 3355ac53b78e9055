package commands

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/temirov/tokenum/internal/tokenizer"
	"github.com/temirov/tokenum/internal/types"
	"github.com/temirov/tokenum/internal/utils"
)

const (
	fileStatOperation  = "stat"
	fileReadOperation  = "read"
	fileCountOperation = "count tokens in"

	validAnnotationFormat     = "%s, %d tokens"
	emptyAnnotationFormat     = "%s, 0 token"
	invalidAnnotationFormat   = "%s, contain invalid UTF-8"
	binaryAnnotationFormat    = "%s, binary file"
	oversizedAnnotationFormat = "%s, file size %d bytes > %s"

	directoryEmptyAnnotationFormat = "%s, total 0 token"
	directoryAnnotationFormat      = "%s, total %d tokens"

	debugOmitOutOfRange = "omitting file outside token range"
	debugHideNonValid   = "hiding non-valid file"
)

type fileInspection struct {
	Classification types.Classification
	SizeBytes      uint64
}

// filePolicy is what a classified file contributes to the report.
type filePolicy struct {
	Visible bool
	Size    uint64
	Tokens  uint64
}

// inspectFile stats path and classifies it. Files above the size limit are
// never opened.
func (treeBuilder *TreeBuilder) inspectFile(path string) (fileInspection, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileInspection{}, types.NewIOError(fileStatOperation, path, err)
	}
	size := uint64(info.Size())
	inspection := fileInspection{SizeBytes: size}

	var data []byte
	if !treeBuilder.SizeLimit.Exceeded(size) {
		data, err = os.ReadFile(path)
		if err != nil {
			return fileInspection{}, types.NewIOError(fileReadOperation, path, err)
		}
	}
	classification, err := tokenizer.CountBytes(treeBuilder.TokenCounter, data, size, treeBuilder.SizeLimit.Bytes)
	if err != nil {
		return fileInspection{}, types.NewIOError(fileCountOperation, path, err)
	}
	inspection.Classification = classification
	return inspection, nil
}

// applyPolicy decides visibility and the totals a file adds to its
// directories. Valid files outside the token range vanish entirely, empty
// files add nothing, and other unreadable content adds its size only.
func (treeBuilder *TreeBuilder) applyPolicy(inspection fileInspection) filePolicy {
	classification := inspection.Classification
	switch classification.Kind {
	case types.ClassificationValid:
		if !treeBuilder.TokenRange.Contains(classification.TokenCount) {
			return filePolicy{}
		}
		return filePolicy{Visible: true, Size: inspection.SizeBytes, Tokens: classification.TokenCount}
	case types.ClassificationEmpty:
		return filePolicy{Visible: !treeBuilder.OnlyValid}
	default:
		return filePolicy{Visible: !treeBuilder.OnlyValid, Size: inspection.SizeBytes}
	}
}

func (treeBuilder *TreeBuilder) logSuppressed(path string, inspection fileInspection) {
	message := debugHideNonValid
	if inspection.Classification.IsValid() {
		message = debugOmitOutOfRange
	}
	treeBuilder.logger().Debug(message,
		zap.String("path", path),
		zap.Stringer("classification", inspection.Classification.Kind),
		zap.Uint64("tokens", inspection.Classification.TokenCount))
}

func annotateFile(inspection fileInspection, limit utils.SizeLimit) string {
	formattedSize := utils.FormatFileSize(inspection.SizeBytes)
	switch inspection.Classification.Kind {
	case types.ClassificationValid:
		return fmt.Sprintf(validAnnotationFormat, formattedSize, inspection.Classification.TokenCount)
	case types.ClassificationEmpty:
		return fmt.Sprintf(emptyAnnotationFormat, formattedSize)
	case types.ClassificationInvalidEncoding:
		return fmt.Sprintf(invalidAnnotationFormat, formattedSize)
	case types.ClassificationBinary:
		return fmt.Sprintf(binaryAnnotationFormat, formattedSize)
	default:
		return fmt.Sprintf(oversizedAnnotationFormat, formattedSize, inspection.SizeBytes, limit.Label)
	}
}

func annotateDirectory(aggregate types.Aggregate) string {
	formattedSize := utils.FormatFileSize(aggregate.TotalSize)
	if aggregate.TotalTokens == 0 {
		return fmt.Sprintf(directoryEmptyAnnotationFormat, formattedSize)
	}
	return fmt.Sprintf(directoryAnnotationFormat, formattedSize, aggregate.TotalTokens)
}
