package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transform(t *testing.T, tpl Templates, input string) string {
	t.Helper()

	var sb strings.Builder
	err := NewXMLParser().Parse(InputSource{Reader: strings.NewReader(input)}, tpl.NewTransformer(NewStreamResult(&sb)))
	require.NoError(t, err)
	return sb.String()
}

func TestXHTMLTemplates(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "unwraps body", input: `<html><body><p>x</p>y</body></html>`, want: `<div><p>x</p>y</div>`},
		{name: "drops whitespace around body", input: "<html>\n<body><p>x</p></body>\n</html>", want: `<div><p>x</p></div>`},
		{name: "empty body", input: `<html><body></body></html>`, want: `<div></div>`},
		{name: "drops processing instructions", input: `<html><body><?pi x?>a</body></html>`, want: `<div>a</div>`},
		{name: "lone div stands in for wrapper", input: `<html><body><div><p>a</p></div></body></html>`, want: `<div><p>a</p></div>`},
		{name: "lone div keeps attributes", input: `<html><body><div class="note">a</div></body></html>`, want: `<div class="note">a</div>`},
		{name: "lone div between whitespace", input: "<html><body>\n<div>a</div>\n</body></html>", want: `<div>a</div>`},
		{name: "nested lone div", input: `<html><body><div><div>x</div></div></body></html>`, want: `<div><div>x</div></div>`},
		{name: "div followed by text", input: `<html><body><div>a</div>b</body></html>`, want: `<div><div>a</div>b</div>`},
		{name: "text before div", input: `<html><body>b<div>a</div></body></html>`, want: `<div>b<div>a</div></div>`},
		{name: "two divs", input: `<html><body><div>a</div><div>b</div></body></html>`, want: `<div><div>a</div><div>b</div></div>`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, transform(t, XHTMLTemplates, tc.input))
		})
	}
}

func TestTextTemplates(t *testing.T) {
	got := transform(t, TextTemplates, `<text><line>a</line><line>b &amp; c</line><line>d</line></text>`)
	assert.Equal(t, `<div>a<br />b &amp; c<br />d</div>`, got)
}
