package markdown

import (
	"bytes"
	"fmt"
	"strings"

	mdrenderer "github.com/teekennedy/goldmark-markdown"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"dida-sync/internal/model"
)

// rewriteBody parses the task body into an AST, applies the two transform
// passes (heading promotion, attachment relinking) and renders the tree back
// to markdown.
func rewriteBody(body string, atts []model.ResolvedAttachment) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", nil
	}

	source := []byte(body)
	md := goldmark.New(goldmark.WithRenderer(mdrenderer.NewRenderer()))

	doc := md.Parser().Parse(text.NewReader(source))
	promoteHeadings(doc)
	relinkAttachments(doc, source, atts)

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, source, doc); err != nil {
		return "", fmt.Errorf("failed to render rewritten body: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// promoteHeadings pushes every top-level heading one level down so the body
// nests under the rendered task heading. Markdown has no level 7, so 6 stays 6.
func promoteHeadings(doc ast.Node) {
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if h, ok := node.(*ast.Heading); ok && h.Level < 6 {
			h.Level++
		}
	}
}

// relinkAttachments rewrites embedded references whose URL's leading path
// segment matches a resolved attachment id: the URL becomes the local path,
// and a generic "file" embed becomes a plain link labeled with the
// attachment's display name.
func relinkAttachments(doc ast.Node, source []byte, atts []model.ResolvedAttachment) {
	if len(atts) == 0 {
		return
	}

	byID := make(map[string]model.ResolvedAttachment, len(atts))
	for _, a := range atts {
		byID[a.ID] = a
	}

	type embedConversion struct {
		img *ast.Image
		att model.ResolvedAttachment
	}
	var embeds []embedConversion

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		img, ok := n.(*ast.Image)
		if !ok {
			return ast.WalkContinue, nil
		}

		leading := strings.SplitN(string(img.Destination), "/", 2)[0]
		att, ok := byID[leading]
		if !ok {
			return ast.WalkContinue, nil
		}

		if altText(img, source) == "file" {
			embeds = append(embeds, embedConversion{img: img, att: att})
			return ast.WalkSkipChildren, nil
		}

		img.Destination = []byte(att.Path)
		return ast.WalkSkipChildren, nil
	})

	// ReplaceChild detaches the removed node's sibling links, which would cut
	// the walker's traversal short, so embed conversion happens after the
	// walk.
	for _, e := range embeds {
		link := ast.NewLink()
		link.Destination = []byte(e.att.Path)
		link.AppendChild(link, ast.NewString([]byte(e.att.Name)))
		parent := e.img.Parent()
		parent.ReplaceChild(parent, e.img, link)
	}
}

// altText collects the plain text children of an image node.
func altText(img *ast.Image, source []byte) string {
	var sb strings.Builder
	for c := img.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
	}
	return sb.String()
}
