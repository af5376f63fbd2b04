package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextReader_Parse(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: `<text></text>`},
		{name: "single line", input: "a", want: `<text><line>a</line></text>`},
		{name: "two lines", input: "a\nb", want: `<text><line>a</line><line>b</line></text>`},
		{name: "trailing newline", input: "a\n", want: `<text><line>a</line></text>`},
		{name: "blank line", input: "a\n\nb", want: `<text><line>a</line><line></line><line>b</line></text>`},
		{name: "crlf and cr", input: "a\r\nb\rc", want: `<text><line>a</line><line>b</line><line>c</line></text>`},
		{name: "trims controls and spaces", input: " \t a b \x01\n", want: `<text><line>a b</line></text>`},
		{name: "markup is literal", input: "<b>x</b> & y", want: `<text><line>&lt;b&gt;x&lt;/b&gt; &amp; y</line></text>`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var sb strings.Builder
			err := TextReader{}.Parse(InputSource{Reader: strings.NewReader(tc.input)}, NewStreamResult(&sb))
			require.NoError(t, err)
			assert.Equal(t, tc.want, sb.String())
		})
	}
}

func TestScanLines_SplitCRLFAcrossReads(t *testing.T) {
	advance, token, err := scanLines([]byte("a\r"), false)
	require.NoError(t, err)
	assert.Equal(t, 0, advance)
	assert.Nil(t, token)

	advance, token, err = scanLines([]byte("a\r\nb"), false)
	require.NoError(t, err)
	assert.Equal(t, 3, advance)
	assert.Equal(t, []byte("a"), token)
}

func TestTextFilter(t *testing.T) {
	f := NewTextFilter()

	assert.NoError(t, f.Validate(Text.MimeType(), strings.NewReader("<p>anything & everything")))

	prefix, err := f.Prefix(Text.MimeType())
	require.NoError(t, err)
	assert.Empty(t, prefix)

	suffix, err := f.Suffix(Text.MimeType())
	require.NoError(t, err)
	assert.Empty(t, suffix)

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lines joined by breaks", input: "a\nb", want: `<div>a<br />b</div>`},
		{name: "single line", input: "hello", want: `<div>hello</div>`},
		{name: "empty", input: "", want: `<div></div>`},
		{name: "blank lines kept", input: "a\n\nb", want: `<div>a<br /><br />b</div>`},
		{name: "escapes markup", input: "<script>x</script>", want: `<div>&lt;script&gt;x&lt;/script&gt;</div>`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FormatText(tc.input, nil, Text, f)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
