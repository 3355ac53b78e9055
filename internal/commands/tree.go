// Package commands builds token reports for files, strings and directory trees.
package commands

import (
	"os"
	"path/filepath"

	"github.com/temirov/tokenum/internal/types"
	"github.com/temirov/tokenum/internal/utils"
)

const (
	rootAbsoluteOperation = "resolve absolute path of"
	rootLinksOperation    = "resolve links of"
)

// Build walks rootDirectoryPath and returns its annotated tree. Every
// directory node carries the totals of the files below it that count
// towards the report.
func (treeBuilder *TreeBuilder) Build(rootDirectoryPath string) (*types.TreeNode, error) {
	canonicalRoot, err := canonicalizeRoot(rootDirectoryPath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(canonicalRoot)
	if err != nil || !info.IsDir() {
		return nil, types.NewNotFoundError(rootDirectoryPath)
	}

	rootNode := types.NewDirectoryNode(rootLabel(canonicalRoot), canonicalRoot)
	walkOptions := treeBuilder.WalkOptions
	if walkOptions.Logger == nil {
		walkOptions.Logger = treeBuilder.logger()
	}
	walkErr := Walk(canonicalRoot, walkOptions, func(entry WalkEntry) error {
		return treeBuilder.insertEntry(rootNode, entry)
	})
	if walkErr != nil {
		return nil, walkErr
	}

	rootNode.Walk(func(node *types.TreeNode, _ int) {
		if node.IsDirectory() {
			node.Annotation = annotateDirectory(*node.Aggregate)
		}
	})
	return rootNode, nil
}

// insertEntry places one walked entry into the tree, creating any missing
// directories on its path.
func (treeBuilder *TreeBuilder) insertEntry(rootNode *types.TreeNode, entry WalkEntry) error {
	components := utils.PathComponents(entry.RelativePath)
	if len(components) == 0 {
		return nil
	}
	parentNode := rootNode
	for _, component := range components[:len(components)-1] {
		parentNode = parentNode.AppendChild(types.NewDirectoryNode(component, filepath.Join(parentNode.Path, component)))
	}
	label := components[len(components)-1]

	if entry.IsDirectory {
		parentNode.AppendChild(types.NewDirectoryNode(label, entry.Path))
		return nil
	}

	inspection, err := treeBuilder.inspectFile(entry.Path)
	if err != nil {
		return err
	}
	policy := treeBuilder.applyPolicy(inspection)
	parentNode.Accumulate(policy.Size, policy.Tokens)
	if !policy.Visible {
		treeBuilder.logSuppressed(entry.Path, inspection)
		return nil
	}

	fileNode := types.NewFileNode(label, entry.Path)
	fileNode.Annotation = annotateFile(inspection, treeBuilder.SizeLimit)
	fileNode.Classification = inspection.Classification.Kind.String()
	fileNode.SizeBytes = inspection.SizeBytes
	fileNode.Tokens = inspection.Classification.TokenCount
	parentNode.AppendChild(fileNode)
	return nil
}

func canonicalizeRoot(rootDirectoryPath string) (string, error) {
	absoluteRoot, err := filepath.Abs(rootDirectoryPath)
	if err != nil {
		return "", types.NewIOError(rootAbsoluteOperation, rootDirectoryPath, err)
	}
	resolvedRoot, err := filepath.EvalSymlinks(absoluteRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return "", types.NewNotFoundError(rootDirectoryPath)
		}
		return "", types.NewIOError(rootLinksOperation, rootDirectoryPath, err)
	}
	return resolvedRoot, nil
}

// rootLabel is the base name of the root, or the whole path when it has none.
func rootLabel(canonicalRoot string) string {
	label := filepath.Base(canonicalRoot)
	if label == "." || label == string(filepath.Separator) || label == canonicalRoot {
		return canonicalRoot
	}
	return label
}
