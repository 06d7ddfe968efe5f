package api

import (
	"html/template"

	"github.com/russross/blackfriday/v2"
)

// Raw HTML in model output is dropped and only safe link schemes are kept.
const markdownHTMLFlags = blackfriday.UseXHTML |
	blackfriday.SkipHTML |
	blackfriday.Safelink |
	blackfriday.NofollowLinks |
	blackfriday.NoreferrerLinks |
	blackfriday.HrefTargetBlank

// RenderMarkdown converts generated markdown into HTML for the result pane.
func RenderMarkdown(markdown string) template.HTML {
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: markdownHTMLFlags,
	})
	out := blackfriday.Run([]byte(markdown),
		blackfriday.WithRenderer(renderer),
		blackfriday.WithExtensions(blackfriday.CommonExtensions),
	)
	return template.HTML(out)
}
