package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvents(t *testing.T, events ...Event) string {
	t.Helper()

	var sb strings.Builder
	h := NewStreamResult(&sb)
	require.NoError(t, h.Handle(Event{Kind: StartDocument}))
	for _, ev := range events {
		require.NoError(t, h.Handle(ev))
	}
	require.NoError(t, h.Handle(Event{Kind: EndDocument}))
	return sb.String()
}

func TestStreamResult(t *testing.T) {
	testCases := []struct {
		name   string
		events []Event
		want   string
	}{
		{
			name:   "void element",
			events: []Event{startElement("br"), endElement("br")},
			want:   `<br />`,
		},
		{
			name:   "empty non-void element",
			events: []Event{startElement("p"), endElement("p")},
			want:   `<p></p>`,
		},
		{
			name:   "text escaping",
			events: []Event{startElement("p"), characters("a < b & c > d \"q\"\r"), endElement("p")},
			want:   `<p>a &lt; b &amp; c &gt; d "q"&#xD;</p>`,
		},
		{
			name: "attribute escaping",
			events: []Event{
				startElement("a", Attr{Name: "title", Value: "say \"hi\"\n\t<&>"}),
				endElement("a"),
			},
			want: `<a title="say &quot;hi&quot;&#xA;&#x9;&lt;&amp;&gt;"></a>`,
		},
		{
			name:   "invalid characters",
			events: []Event{startElement("p"), characters("a\x00b\xffc\U0001F600"), endElement("p")},
			want:   "<p>a\uFFFDb\uFFFDc\U0001F600</p>",
		},
		{
			name: "prefix mapping declared on next element",
			events: []Event{
				{Kind: StartPrefixMapping, Name: "ex", Data: "urn:a"},
				{Kind: StartPrefixMapping, Name: "ex", Data: "urn:b"},
				startElement("div"),
				startElement("p"),
				endElement("p"),
				endElement("div"),
				{Kind: EndPrefixMapping, Name: "ex"},
			},
			want: `<div xmlns:ex="urn:b"><p></p></div>`,
		},
		{
			name:   "processing instruction",
			events: []Event{startElement("p"), {Kind: ProcessingInstruction, Name: "pi", Data: "a?>b"}, endElement("p")},
			want:   `<p><?pi a? >b?></p>`,
		},
		{
			name:   "empty characters",
			events: []Event{startElement("br"), characters(""), endElement("br")},
			want:   `<br />`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, writeEvents(t, tc.events...))
		})
	}
}

func TestStreamResult_OutputReparses(t *testing.T) {
	out := writeEvents(t,
		startElement("div", Attr{Name: "title", Value: "\x01<\"x\">"}),
		characters("bad \x1b text & <tags>"),
		endElement("div"),
	)

	err := NewXMLParser().Parse(InputSource{Reader: strings.NewReader(out)}, &recorder{})
	assert.NoError(t, err)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "StartElement", StartElement.String())
	assert.Equal(t, "EndPrefixMapping", EndPrefixMapping.String())
	assert.Equal(t, "Unknown", Kind(99).String())
}
