package content

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestFormat_IdentityWithoutTemplates(t *testing.T) {
	f := &mockFilter{}
	f.On("Templates", "application/x-raw").Return(nil, nil)
	f.On("XMLReader", mock.Anything, "application/x-raw").
		Return(NewXHTMLReader(NewXMLParser(), nil, nil, discardLogger()), nil)

	got, err := FormatString("application/x-raw", nil, InputSource{Reader: strings.NewReader(`<p><b>x</b></p>`)}, f)
	require.NoError(t, err)
	assert.Equal(t, `<html><body><p><strong>x</strong></p></body></html>`, got)

	f.AssertExpectations(t)
}

func TestFormat_SetupErrors(t *testing.T) {
	broken := errors.New("broken")

	t.Run("templates", func(t *testing.T) {
		f := &mockFilter{}
		f.On("Templates", "application/x-raw").Return(nil, broken)

		_, err := FormatString("application/x-raw", nil, InputSource{Reader: strings.NewReader("x")}, f)
		assert.ErrorIs(t, err, broken)
	})

	t.Run("reader", func(t *testing.T) {
		f := &mockFilter{}
		f.On("Templates", "application/x-raw").Return(nil, nil)
		f.On("XMLReader", mock.Anything, "application/x-raw").Return(nil, broken)

		_, err := FormatString("application/x-raw", nil, InputSource{Reader: strings.NewReader("x")}, f)
		assert.ErrorIs(t, err, broken)
	})

	t.Run("prefix", func(t *testing.T) {
		f := &mockFilter{}
		f.On("Prefix", "application/x-raw").Return("", broken)

		_, err := FormatText("x", nil, ContentType("application/x-raw"), f)
		assert.ErrorIs(t, err, broken)
	})
}

func TestFormatText_UnknownType(t *testing.T) {
	m := NewMultiContentFilter(map[string]ContentFilter{Text.MimeType(): NewTextFilter()}, nil)

	_, err := FormatText("<p>x</p>", nil, XHTML, m)

	var icte *InvalidContentTypeError
	assert.ErrorAs(t, err, &icte)
}

func TestFormatTextTo_NodeResult(t *testing.T) {
	f := newTestXHTMLFilter(t)

	entry := &html.Node{Type: html.ElementNode, Data: "entry", DataAtom: atom.Lookup([]byte("entry"))}
	err := FormatTextTo(`<p>Hello <b>world</b> &amp; <a href="javascript:x">you</a></p>`, nil, XHTML, f, NewNodeResult(entry))
	require.NoError(t, err)

	doc := goquery.NewDocumentFromNode(entry)
	assert.Equal(t, 1, doc.Find("div").Length())
	assert.Equal(t, "world", doc.Find("div > p > strong").Text())
	assert.Equal(t, "Hello world & you", doc.Find("p").Text())

	href, ok := doc.Find("a").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "#", href)
}

func TestFormatTextTo_TextIntoNodes(t *testing.T) {
	root := &html.Node{Type: html.ElementNode, Data: "content"}
	err := FormatTextTo("one\ntwo", nil, Text, NewTextFilter(), NewNodeResult(root))
	require.NoError(t, err)

	doc := goquery.NewDocumentFromNode(root)
	assert.Equal(t, 1, doc.Find("div > br").Length())
	assert.Equal(t, "onetwo", doc.Find("div").Text())
}

func TestNodeResult_Unbalanced(t *testing.T) {
	root := &html.Node{Type: html.ElementNode, Data: "root"}
	h := NewNodeResult(root)

	require.NoError(t, h.Handle(startElement("p")))
	require.NoError(t, h.Handle(endElement("p")))
	assert.ErrorIs(t, h.Handle(endElement("p")), errUnbalanced)
}
