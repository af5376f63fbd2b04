package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	testCases := []struct {
		name      string
		formatted string
		width     int
		want      string
	}{
		{name: "strips markup", formatted: `<div><p>Hello <strong>world</strong></p></div>`, want: "Hello world"},
		{name: "separates lines", formatted: `<div>a<br />b</div>`, want: "a b"},
		{name: "collapses whitespace", formatted: "<div><p>a\n\n   b</p>\n<p>c</p></div>", want: "a b c"},
		{name: "unescapes entities", formatted: `<p>Tom &amp; Jerry &lt;3</p>`, want: "Tom & Jerry <3"},
		{name: "fits width", formatted: `<p>short</p>`, width: 10, want: "short"},
		{name: "truncates", formatted: `<p>Hello world</p>`, width: 8, want: "Hello w…"},
		{name: "wide runes", formatted: `<p>日本語テキスト</p>`, width: 7, want: "日本語…"},
		{name: "empty", formatted: `<div></div>`, width: 5, want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Excerpt(tc.formatted, tc.width))
		})
	}
}
