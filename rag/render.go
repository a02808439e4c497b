package rag

import (
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// RenderAnswerHTML converts a markdown answer into sanitized HTML suitable for
// embedding in a web page. Script and other unsafe markup is stripped.
func RenderAnswerHTML(answer string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})

	unsafe := markdown.ToHTML([]byte(answer), p, renderer)
	return string(bluemonday.UGCPolicy().SanitizeBytes(unsafe))
}
