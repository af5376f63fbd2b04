package content

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/url"
)

const (
	// XHTMLPrefix opens the document wrapped around XHTML fragment content.
	XHTMLPrefix = `<html xmlns="http://www.w3.org/1999/xhtml"><head><title>Untitled</title></head><body>`
	// XHTMLSuffix closes the document opened by XHTMLPrefix.
	XHTMLSuffix = `</body></html>`
)

// XHTMLFilter handles application/xhtml+xml body fragments.
type XHTMLFilter struct {
	allowedClasses []string
	schema         *Schema
	logger         *slog.Logger
}

type XHTMLFilterOption func(*XHTMLFilter)

// WithLogger sets the logger used to report rejected URLs.
func WithLogger(logger *slog.Logger) XHTMLFilterOption {
	return func(f *XHTMLFilter) {
		f.logger = logger
	}
}

// NewXHTMLFilter compiles the validation schema. An error means the embedded
// schema is broken.
func NewXHTMLFilter(allowedClasses []string, opts ...XHTMLFilterOption) (*XHTMLFilter, error) {
	schema, err := loadSchema(xhtmlTransitionalSchema)
	if err != nil {
		return nil, err
	}

	f := &XHTMLFilter{
		allowedClasses: append([]string(nil), allowedClasses...),
		schema:         schema,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Validate wraps content in XHTMLPrefix and XHTMLSuffix and checks the result
// against the XHTML 1.0 Transitional schema. Well-formedness is checked
// before validity. Positions in the returned error refer to the unwrapped
// content and count characters.
func (f *XHTMLFilter) Validate(mimeType string, content io.Reader) error {
	body, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	doc := make([]byte, 0, len(XHTMLPrefix)+len(body)+len(XHTMLSuffix))
	doc = append(doc, XHTMLPrefix...)
	doc = append(doc, body...)
	doc = append(doc, XHTMLSuffix...)

	err = NewXMLParser().Parse(InputSource{Reader: bytes.NewReader(doc)}, HandlerFunc(func(Event) error { return nil }))
	var pe *ParseError
	if errors.As(err, &pe) {
		line, col := contentPosition(pe.Line, pe.Column)
		return NewInvalidContentError(pe.Msg, line, col)
	}
	if err != nil {
		return err
	}

	v, err := f.schema.validate(doc)
	if err != nil {
		return err
	}
	if v != nil {
		line, col := contentPosition(v.line, v.column)
		return NewInvalidContentError(v.msg, line, col)
	}
	return nil
}

// contentPosition shifts a position on the first line back by the length of
// the prefix.
func contentPosition(line, col int) (int, int) {
	if line == 1 {
		col -= len(XHTMLPrefix)
		if col < 1 {
			col = 1
		}
	}
	return line, col
}

func (f *XHTMLFilter) XMLReader(baseURL *url.URL, mimeType string) (XMLReader, error) {
	return NewXHTMLReader(NewXMLParser(), f.allowedClasses, baseURL, f.logger), nil
}

func (f *XHTMLFilter) Templates(mimeType string) (Templates, error) {
	return XHTMLTemplates, nil
}

func (f *XHTMLFilter) Prefix(mimeType string) (string, error) {
	return XHTMLPrefix, nil
}

func (f *XHTMLFilter) Suffix(mimeType string) (string, error) {
	return XHTMLSuffix, nil
}
