package content

import (
	"io"
	"net/url"
	"sort"
)

// MultiContentFilter dispatches to a filter registered for the exact mime
// type, falling back to an optional default. It is safe for concurrent use
// once configured.
type MultiContentFilter struct {
	filters map[string]ContentFilter
	def     ContentFilter
}

// NewMultiContentFilter registers filters by mime type. def may be nil.
func NewMultiContentFilter(filters map[string]ContentFilter, def ContentFilter) *MultiContentFilter {
	m := &MultiContentFilter{filters: make(map[string]ContentFilter, len(filters)), def: def}
	for mimeType, f := range filters {
		m.filters[mimeType] = f
	}
	return m
}

// SetDefault sets the filter used for unregistered mime types.
func (m *MultiContentFilter) SetDefault(f ContentFilter) {
	m.def = f
}

// Resolve returns the filter for mimeType.
func (m *MultiContentFilter) Resolve(mimeType string) (ContentFilter, error) {
	if f, ok := m.filters[mimeType]; ok {
		return f, nil
	}
	if m.def != nil {
		return m.def, nil
	}
	return nil, &InvalidContentTypeError{MimeType: mimeType}
}

// MimeTypes returns the registered mime types in sorted order.
func (m *MultiContentFilter) MimeTypes() []string {
	types := make([]string, 0, len(m.filters))
	for mimeType := range m.filters {
		types = append(types, mimeType)
	}
	sort.Strings(types)
	return types
}

func (m *MultiContentFilter) Validate(mimeType string, content io.Reader) error {
	f, err := m.Resolve(mimeType)
	if err != nil {
		return err
	}
	return f.Validate(mimeType, content)
}

func (m *MultiContentFilter) XMLReader(baseURL *url.URL, mimeType string) (XMLReader, error) {
	f, err := m.Resolve(mimeType)
	if err != nil {
		return nil, err
	}
	return f.XMLReader(baseURL, mimeType)
}

func (m *MultiContentFilter) Templates(mimeType string) (Templates, error) {
	f, err := m.Resolve(mimeType)
	if err != nil {
		return nil, err
	}
	return f.Templates(mimeType)
}

func (m *MultiContentFilter) Prefix(mimeType string) (string, error) {
	f, err := m.Resolve(mimeType)
	if err != nil {
		return "", err
	}
	return f.Prefix(mimeType)
}

func (m *MultiContentFilter) Suffix(mimeType string) (string, error) {
	f, err := m.Resolve(mimeType)
	if err != nil {
		return "", err
	}
	return f.Suffix(mimeType)
}

// NewDefaultFilter registers the text, XHTML and Markdown dialects with the
// text filter as default.
func NewDefaultFilter(allowedClasses []string, opts ...XHTMLFilterOption) (*MultiContentFilter, error) {
	xhtml, err := NewXHTMLFilter(allowedClasses, opts...)
	if err != nil {
		return nil, err
	}
	text := NewTextFilter()
	return NewMultiContentFilter(map[string]ContentFilter{
		Text.MimeType():     text,
		XHTML.MimeType():    xhtml,
		Markdown.MimeType(): NewMarkdownFilter(xhtml),
	}, text), nil
}
