package pager

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
)

// previewRunes is the preview length in characters, before the
// continuation marker.
const previewRunes = 30

// continuation marks a preview that was cut short.
const continuation = "...more"

var previewParser = goldmark.New().Parser()

// Preview flattens a message body to plain text and truncates it to the
// preview length, appending a continuation marker when content was cut.
// Discord messages are markdown, so naive truncation tends to spend the
// whole preview on formatting syntax; flattening first keeps the visible
// words.
func Preview(content string) string {
	text := flattenMarkdown(content)

	runes := []rune(text)
	if len(runes) <= previewRunes {
		return text
	}
	return string(runes[:previewRunes]) + continuation
}

// flattenMarkdown walks the markdown AST and collects only the textual
// content, collapsing all whitespace runs to single spaces.
func flattenMarkdown(content string) string {
	source := []byte(content)
	root := previewParser.Parse(gtext.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindText:
			t := n.(*ast.Text)
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case ast.KindAutoLink:
			b.Write(n.(*ast.AutoLink).URL(source))
		case ast.KindCodeBlock, ast.KindFencedCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.Write(seg.Value(source))
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(b.String()), " ")
}
