package manifest

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CodeBlock represents a fenced code block from a markdown document.
type CodeBlock struct {
	// Heading is the text of the closest heading before the block, if any.
	Heading string
	// Lang is the language identifier of the code block (e.g., "yaml").
	Lang string
	// Content is the raw text inside the code block.
	Content string
}

// ExtractCodeBlocks uses a markdown AST to find all fenced code blocks
// and the heading of the section they sit in.
func ExtractCodeBlocks(source []byte) ([]CodeBlock, error) {
	var blocks []CodeBlock
	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fencedCodeBlock, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var block CodeBlock
		if fencedCodeBlock.Info != nil {
			block.Lang = strings.TrimSpace(string(fencedCodeBlock.Info.Text(source)))
		}

		var content bytes.Buffer
		lines := fencedCodeBlock.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			content.Write(line.Value(source))
		}
		block.Content = content.String()

		for prev := fencedCodeBlock.PreviousSibling(); prev != nil; prev = prev.PreviousSibling() {
			if h, ok := prev.(*ast.Heading); ok {
				block.Heading = strings.TrimSpace(string(h.Text(source)))
				break
			}
		}

		blocks = append(blocks, block)
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}

	return blocks, nil
}

// ExtractYAMLBlocks returns every yaml or yml fenced block, in document
// order.
func ExtractYAMLBlocks(source []byte) ([]CodeBlock, error) {
	blocks, err := ExtractCodeBlocks(source)
	if err != nil {
		return nil, err
	}
	var out []CodeBlock
	for _, b := range blocks {
		lang, _, _ := strings.Cut(b.Lang, " ")
		switch strings.ToLower(lang) {
		case "yaml", "yml":
			out = append(out, b)
		}
	}
	return out, nil
}
