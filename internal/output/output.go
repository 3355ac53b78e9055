// Package output renders token reports as raw text, JSON or XML.
package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/tokenum/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader = xml.Header

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	labeledLineFormat = "%s%s (%s)\n"
	stringLineFormat  = "-s string: %d tokens\n"

	unsupportedFormatMessage = "--format only support raw, json, xml, not: %s"
)

// Render renders report in the requested format.
func Render(report types.Report, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case types.FormatRaw, "":
		return RenderReportRaw(report), nil
	case types.FormatJSON:
		return RenderReportJSON(report)
	case types.FormatXML:
		return RenderReportXML(report)
	default:
		return "", types.NewParameterError(unsupportedFormatMessage, format)
	}
}

// IsSupportedFormat reports whether format names a known renderer.
func IsSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case types.FormatRaw, types.FormatJSON, types.FormatXML:
		return true
	}
	return false
}

// RenderReportRaw renders the file lines, then the string line, then the tree.
func RenderReportRaw(report types.Report) string {
	var buffer bytes.Buffer
	for _, file := range report.Files {
		WriteFileRaw(&buffer, file)
	}
	if report.String != nil {
		fmt.Fprintf(&buffer, stringLineFormat, report.String.Tokens)
	}
	if report.Tree != nil {
		WriteTreeRaw(&buffer, report.Tree)
	}
	return buffer.String()
}

// RenderReportJSON marshals the report as indented JSON.
func RenderReportJSON(report types.Report) (string, error) {
	encoded, jsonEncodeError := json.MarshalIndent(report, indentPrefix, indentSpacer)
	if jsonEncodeError != nil {
		return "", jsonEncodeError
	}
	return string(encoded) + "\n", nil
}

// RenderReportXML marshals the report as an indented XML document.
func RenderReportXML(report types.Report) (string, error) {
	encoded, xmlMarshalError := xml.MarshalIndent(report, indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return "", xmlMarshalError
	}
	return xmlHeader + string(encoded) + "\n", nil
}

// WriteFileRaw writes one -f result line.
func WriteFileRaw(writer io.Writer, file types.FileCount) {
	fmt.Fprintf(writer, labeledLineFormat, "", file.Path, file.Annotation)
}

// RenderTreeRaw returns the tree as connector-drawn lines, one node per line.
func RenderTreeRaw(node *types.TreeNode) string {
	var buffer bytes.Buffer
	WriteTreeRaw(&buffer, node)
	return buffer.String()
}

// WriteTreeRaw writes the tree depth-first in pre-order.
func WriteTreeRaw(writer io.Writer, node *types.TreeNode) {
	renderTreeNode(writer, node, "", true, true)
}

func treeNodeLinePrefix(prefix string, isRoot bool, isLast bool) (string, string) {
	if isRoot {
		return "", ""
	}
	connector := treeBranchConnector
	childPrefix := prefix + treeBranchPadding
	if isLast {
		connector = treeLastConnector
		childPrefix = prefix + treeLastPadding
	}
	return prefix + connector, childPrefix
}

func renderTreeNode(writer io.Writer, node *types.TreeNode, prefix string, isRoot bool, isLast bool) {
	if node == nil {
		return
	}
	linePrefix, childPrefix := treeNodeLinePrefix(prefix, isRoot, isLast)
	fmt.Fprintf(writer, labeledLineFormat, linePrefix, node.Label, node.Annotation)
	for index, child := range node.Children {
		renderTreeNode(writer, child, childPrefix, false, index == len(node.Children)-1)
	}
}
