package transform

import (
	"context"
	"strings"

	"cvdoc/internal/scene"
)

// TranslateDocument returns a copy of doc whose non-blank text nodes have been replaced by
// the transformer output, in paint order. Nodes past the end of a short result keep their
// text. On error the copy is returned untouched together with the error. The second result
// counts the nodes that changed.
func TranslateDocument(ctx context.Context, t TextTransformer, doc *scene.Document, opts Options) (*scene.Document, int, error) {
	out := doc.Clone()

	var (
		nodes []*scene.Text
		texts []string
	)
	for _, n := range out.TextNodes() {
		if strings.TrimSpace(n.Text) == "" {
			continue
		}
		nodes = append(nodes, n)
		texts = append(texts, n.Text)
	}
	if len(texts) == 0 {
		return out, 0, nil
	}

	got, err := t.TransformTexts(ctx, texts, opts)
	if err != nil {
		return out, 0, err
	}

	changed := 0
	for i, n := range nodes {
		if i >= len(got) {
			break
		}
		if got[i] == texts[i] {
			continue
		}
		n.Replace(got[i])
		changed++
	}
	return out, changed, nil
}
