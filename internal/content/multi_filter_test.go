package content

import (
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFilter struct {
	mock.Mock
}

func (m *mockFilter) Validate(mimeType string, content io.Reader) error {
	args := m.Called(mimeType, content)
	return args.Error(0)
}

func (m *mockFilter) XMLReader(baseURL *url.URL, mimeType string) (XMLReader, error) {
	args := m.Called(baseURL, mimeType)
	r, _ := args.Get(0).(XMLReader)
	return r, args.Error(1)
}

func (m *mockFilter) Templates(mimeType string) (Templates, error) {
	args := m.Called(mimeType)
	tpl, _ := args.Get(0).(Templates)
	return tpl, args.Error(1)
}

func (m *mockFilter) Prefix(mimeType string) (string, error) {
	args := m.Called(mimeType)
	return args.String(0), args.Error(1)
}

func (m *mockFilter) Suffix(mimeType string) (string, error) {
	args := m.Called(mimeType)
	return args.String(0), args.Error(1)
}

func TestMultiContentFilter_UnknownType(t *testing.T) {
	m := NewMultiContentFilter(map[string]ContentFilter{Text.MimeType(): NewTextFilter()}, nil)

	var icte *InvalidContentTypeError

	err := m.Validate("application/x-unknown", strings.NewReader("x"))
	require.ErrorAs(t, err, &icte)
	assert.Equal(t, "application/x-unknown", icte.MimeType)
	assert.EqualError(t, err, "unknown content type application/x-unknown")

	_, err = m.XMLReader(nil, "application/x-unknown")
	assert.ErrorAs(t, err, &icte)
	_, err = m.Templates("application/x-unknown")
	assert.ErrorAs(t, err, &icte)
	_, err = m.Prefix("application/x-unknown")
	assert.ErrorAs(t, err, &icte)
	_, err = m.Suffix("application/x-unknown")
	assert.ErrorAs(t, err, &icte)
}

func TestMultiContentFilter_ExactMatch(t *testing.T) {
	m := NewMultiContentFilter(map[string]ContentFilter{Text.MimeType(): NewTextFilter()}, nil)

	_, err := m.Resolve("TEXT/PLAIN")
	assert.Error(t, err)

	f, err := m.Resolve("text/plain")
	require.NoError(t, err)
	assert.IsType(t, &TextFilter{}, f)
}

func TestMultiContentFilter_DelegatesToDefault(t *testing.T) {
	def := &mockFilter{}
	content := strings.NewReader("x")
	base := &url.URL{Scheme: "http", Host: "example.org"}

	def.On("Validate", "application/x-unknown", content).Return(nil)
	def.On("XMLReader", base, "application/x-unknown").Return(TextReader{}, nil)
	def.On("Templates", "application/x-unknown").Return(TextTemplates, nil)
	def.On("Prefix", "application/x-unknown").Return("<p>", nil)
	def.On("Suffix", "application/x-unknown").Return("</p>", nil)

	m := NewMultiContentFilter(nil, nil)
	m.SetDefault(def)

	assert.NoError(t, m.Validate("application/x-unknown", content))

	r, err := m.XMLReader(base, "application/x-unknown")
	require.NoError(t, err)
	assert.Equal(t, TextReader{}, r)

	tpl, err := m.Templates("application/x-unknown")
	require.NoError(t, err)
	assert.Equal(t, TextTemplates, tpl)

	prefix, err := m.Prefix("application/x-unknown")
	require.NoError(t, err)
	assert.Equal(t, "<p>", prefix)

	suffix, err := m.Suffix("application/x-unknown")
	require.NoError(t, err)
	assert.Equal(t, "</p>", suffix)

	def.AssertExpectations(t)
}

func TestMultiContentFilter_RegisteredWinsOverDefault(t *testing.T) {
	registered := &mockFilter{}
	def := &mockFilter{}
	registered.On("Prefix", "application/x-custom").Return("registered", nil)

	m := NewMultiContentFilter(map[string]ContentFilter{"application/x-custom": registered}, def)

	prefix, err := m.Prefix("application/x-custom")
	require.NoError(t, err)
	assert.Equal(t, "registered", prefix)

	registered.AssertExpectations(t)
	def.AssertNotCalled(t, "Prefix", mock.Anything)
}

func TestNewDefaultFilter(t *testing.T) {
	m, err := NewDefaultFilter([]string{"note"}, WithLogger(discardLogger()))
	require.NoError(t, err)

	assert.Equal(t, []string{"application/xhtml+xml", "text/markdown", "text/plain"}, m.MimeTypes())

	f, err := m.Resolve("application/x-unknown")
	require.NoError(t, err)
	assert.IsType(t, &TextFilter{}, f)

	got, err := FormatText(`<p class="note">x</p>`, nil, XHTML, m)
	require.NoError(t, err)
	assert.Equal(t, `<div><p class="note">x</p></div>`, got)
}
