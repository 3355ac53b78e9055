// Package types defines every cross‑package data structure used by the tokenum CLI.
package types

import "encoding/xml"

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// NodeKind distinguishes directory nodes from file leaves.
type NodeKind int

const (
	NodeKindDirectory NodeKind = iota
	NodeKindFile
)

// String returns the node type label used in structured output.
func (kind NodeKind) String() string {
	if kind == NodeKindFile {
		return NodeTypeFile
	}
	return NodeTypeDirectory
}

// ClassificationKind enumerates the outcomes of inspecting a file.
type ClassificationKind int

const (
	ClassificationValid ClassificationKind = iota
	ClassificationEmpty
	ClassificationBinary
	ClassificationInvalidEncoding
	ClassificationOversized
)

var classificationNames = map[ClassificationKind]string{
	ClassificationValid:           "valid",
	ClassificationEmpty:           "empty",
	ClassificationBinary:          "binary",
	ClassificationInvalidEncoding: "invalid_encoding",
	ClassificationOversized:       "oversized",
}

// String returns the snake_case name of the classification.
func (kind ClassificationKind) String() string {
	if name, ok := classificationNames[kind]; ok {
		return name
	}
	return "unknown"
}

// Classification is the outcome of inspecting one file. TokenCount is only
// meaningful for ClassificationValid.
type Classification struct {
	Kind       ClassificationKind
	TokenCount uint64
}

// IsValid reports whether the file decoded to non-empty text.
func (classification Classification) IsValid() bool {
	return classification.Kind == ClassificationValid
}

// Aggregate holds the cumulative size and token totals of a directory.
type Aggregate struct {
	TotalSize   uint64 `json:"totalSize" xml:"totalSize"`
	TotalTokens uint64 `json:"totalTokens" xml:"totalTokens"`
}

// TreeNode is one path component of a built tree. Directory nodes keep a
// name index over their children so find-or-insert does not scan.
type TreeNode struct {
	XMLName        xml.Name    `json:"-" xml:"node"`
	Label          string      `json:"name" xml:"name"`
	Path           string      `json:"path" xml:"path"`
	Kind           NodeKind    `json:"-" xml:"-"`
	Type           string      `json:"type" xml:"type"`
	Annotation     string      `json:"annotation,omitempty" xml:"annotation,omitempty"`
	Classification string      `json:"classification,omitempty" xml:"classification,omitempty"`
	SizeBytes      uint64      `json:"sizeBytes,omitempty" xml:"sizeBytes,omitempty"`
	Tokens         uint64      `json:"tokens,omitempty" xml:"tokens,omitempty"`
	Aggregate      *Aggregate  `json:"aggregate,omitempty" xml:"aggregate,omitempty"`
	Children       []*TreeNode `json:"children,omitempty" xml:"children>node,omitempty"`

	parent     *TreeNode
	childIndex map[string]int
}

// NewDirectoryNode creates an empty directory node.
func NewDirectoryNode(label string, path string) *TreeNode {
	return &TreeNode{
		Label:      label,
		Path:       path,
		Kind:       NodeKindDirectory,
		Type:       NodeTypeDirectory,
		Aggregate:  &Aggregate{},
		childIndex: map[string]int{},
	}
}

// NewFileNode creates a file leaf.
func NewFileNode(label string, path string) *TreeNode {
	return &TreeNode{
		Label: label,
		Path:  path,
		Kind:  NodeKindFile,
		Type:  NodeTypeFile,
	}
}

// IsDirectory reports whether the node is a directory.
func (node *TreeNode) IsDirectory() bool {
	return node.Kind == NodeKindDirectory
}

// Parent returns the enclosing directory node, or nil for the root.
func (node *TreeNode) Parent() *TreeNode {
	return node.parent
}

// Child returns the direct child with the given label.
func (node *TreeNode) Child(label string) (*TreeNode, bool) {
	index, ok := node.childIndex[label]
	if !ok {
		return nil, false
	}
	return node.Children[index], true
}

// AppendChild attaches child in first-seen order. A label that is already
// present returns the existing child unchanged.
func (node *TreeNode) AppendChild(child *TreeNode) *TreeNode {
	if existing, ok := node.Child(child.Label); ok {
		return existing
	}
	if node.childIndex == nil {
		node.childIndex = map[string]int{}
	}
	child.parent = node
	node.childIndex[child.Label] = len(node.Children)
	node.Children = append(node.Children, child)
	return child
}

// Accumulate adds size and tokens to the directory node and every
// directory above it. Cost is proportional to depth.
func (node *TreeNode) Accumulate(size uint64, tokens uint64) {
	for directory := node; directory != nil; directory = directory.parent {
		if directory.Aggregate == nil {
			directory.Aggregate = &Aggregate{}
		}
		directory.Aggregate.TotalSize += size
		directory.Aggregate.TotalTokens += tokens
	}
}

// Walk visits node and its descendants depth-first in pre-order.
func (node *TreeNode) Walk(visit func(node *TreeNode, depth int)) {
	node.walk(visit, 0)
}

func (node *TreeNode) walk(visit func(node *TreeNode, depth int), depth int) {
	visit(node, depth)
	for _, child := range node.Children {
		child.walk(visit, depth+1)
	}
}

// FileCount captures the token result of one explicitly requested file.
type FileCount struct {
	Path           string `json:"path" xml:"path"`
	Annotation     string `json:"annotation" xml:"annotation"`
	Classification string `json:"classification" xml:"classification"`
	SizeBytes      uint64 `json:"sizeBytes" xml:"sizeBytes"`
	Tokens         uint64 `json:"tokens,omitempty" xml:"tokens,omitempty"`
}

// StringCount captures the token result of the ad-hoc string input.
type StringCount struct {
	Tokens uint64 `json:"tokens" xml:"tokens"`
}

// Report is everything one invocation produced.
type Report struct {
	XMLName  xml.Name     `json:"-" xml:"report"`
	Encoding string       `json:"encoding" xml:"encoding"`
	Files    []FileCount  `json:"files,omitempty" xml:"files>file,omitempty"`
	String   *StringCount `json:"string,omitempty" xml:"string,omitempty"`
	Tree     *TreeNode    `json:"tree,omitempty" xml:"tree>node,omitempty"`
}
