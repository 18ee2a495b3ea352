package csfix

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var snippetLangs = map[string]bool{
	"cs":     true,
	"csharp": true,
	"c#":     true,
}

type snippetSpan struct {
	start, stop int
	content     string
}

// FixMarkdownSnippets runs the pipeline over every fenced C# code block in a
// markdown document. Prose, fences and non-C# blocks pass through untouched.
func FixMarkdownSnippets(source string, pipeline Pipeline) string {
	spans, err := extractSnippetSpans([]byte(source))
	if err != nil || len(spans) == 0 {
		return source
	}

	// Splice from the last block backwards so earlier offsets stay valid.
	out := source
	for i := len(spans) - 1; i >= 0; i-- {
		span := spans[i]
		out = out[:span.start] + pipeline.Transform(span.content) + out[span.stop:]
	}
	return out
}

func extractSnippetSpans(source []byte) ([]snippetSpan, error) {
	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(source))

	var spans []snippetSpan
	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		block, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		lang := strings.ToLower(string(block.Language(source)))
		if !snippetLangs[lang] {
			return ast.WalkSkipChildren, nil
		}

		lines := block.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		start := lines.At(0).Start
		stop := lines.At(lines.Len() - 1).Stop
		spans = append(spans, snippetSpan{
			start:   start,
			stop:    stop,
			content: string(source[start:stop]),
		})
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}
	return spans, nil
}
