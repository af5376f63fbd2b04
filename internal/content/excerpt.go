package content

import (
	"html"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/microcosm-cc/bluemonday"
)

const ellipsis = "…"

var excerptPolicy = newExcerptPolicy()

func newExcerptPolicy() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}

// Excerpt returns the text of formatted markup with whitespace collapsed,
// truncated to width display cells. A width of zero or less keeps the whole
// text.
func Excerpt(formatted string, width int) string {
	text := html.UnescapeString(excerptPolicy.Sanitize(formatted))
	text = strings.Join(strings.Fields(text), " ")
	if width <= 0 {
		return text
	}
	return runewidth.Truncate(text, width, ellipsis)
}
