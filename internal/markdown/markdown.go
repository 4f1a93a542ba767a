// SPDX-License-Identifier: MPL-2.0

package markdown

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// SkipMarker opts the following code block out of execution.
const SkipMarker = "exemd-skip"

var skipComment = regexp.MustCompile(`<!--\s*` + SkipMarker + `\s*-->`)

type (
	// Document is a parsed Markdown file.
	Document struct {
		// Source names the file the document was read from.
		Source string
		// Blocks lists every fenced code block in document order.
		Blocks []Block
	}

	// Block is one fenced code block.
	Block struct {
		// Index is the zero-based position among all fenced blocks.
		Index int
		// Lang is the first word of the info string, empty when absent.
		Lang string
		// Info is the full info string.
		Info string
		// Code is the block content, byte for byte.
		Code string
		// Line is the one-based line of the opening fence.
		Line int
		// Skip is set by a preceding skip comment or a skip info attribute.
		Skip bool
	}
)

// ReadFile parses the Markdown file at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markdown %s: %w", path, err)
	}
	return Parse(data, path), nil
}

// Parse extracts the fenced code blocks of source.
func Parse(source []byte, name string) *Document {
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	doc := &Document{Source: name}
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		doc.Blocks = append(doc.Blocks, newBlock(fcb, source, len(doc.Blocks)))
		return ast.WalkSkipChildren, nil
	})
	return doc
}

// Runnable returns the blocks that are not skipped and whose language is
// accepted by known.
func (d *Document) Runnable(known func(lang string) bool) []Block {
	var out []Block
	for _, b := range d.Blocks {
		if b.Skip || b.Lang == "" || !known(b.Lang) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Location identifies the block in reports, e.g. "README.md:12 (java)".
func (b Block) Location(source string) string {
	if b.Lang == "" {
		return fmt.Sprintf("%s:%d", source, b.Line)
	}
	return fmt.Sprintf("%s:%d (%s)", source, b.Line, b.Lang)
}

func newBlock(fcb *ast.FencedCodeBlock, source []byte, index int) Block {
	b := Block{
		Index: index,
		Lang:  string(fcb.Language(source)),
		Code:  string(linesText(fcb.Lines(), source)),
		Line:  fenceLine(fcb, source),
	}
	if fcb.Info != nil {
		b.Info = string(fcb.Info.Segment.Value(source))
	}
	b.Skip = hasSkipAttribute(b.Info) || precededBySkipComment(fcb, source)
	return b
}

func hasSkipAttribute(info string) bool {
	fields := strings.Fields(info)
	if len(fields) < 2 {
		return false
	}
	for _, f := range fields[1:] {
		if f == SkipMarker {
			return true
		}
	}
	return false
}

func precededBySkipComment(n ast.Node, source []byte) bool {
	prev, ok := n.PreviousSibling().(*ast.HTMLBlock)
	if !ok {
		return false
	}
	body := linesText(prev.Lines(), source)
	if prev.HasClosure() {
		body = append(body, prev.ClosureLine.Value(source)...)
	}
	return skipComment.Match(body)
}

func linesText(lines *text.Segments, source []byte) []byte {
	var buf bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.Bytes()
}

// fenceLine locates the opening fence: the info string when present, else
// the line above the first content line.
func fenceLine(fcb *ast.FencedCodeBlock, source []byte) int {
	if fcb.Info != nil {
		return lineAt(source, fcb.Info.Segment.Start)
	}
	if fcb.Lines().Len() > 0 {
		return lineAt(source, fcb.Lines().At(0).Start) - 1
	}
	return 0
}

func lineAt(source []byte, offset int) int {
	return bytes.Count(source[:offset], []byte("\n")) + 1
}
