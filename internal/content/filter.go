package content

import (
	"io"
	"net/url"
)

// ContentFilter is implemented by every content dialect.
type ContentFilter interface {
	// Validate checks content for errors a user can correct. It returns an
	// *InvalidContentError for invalid content and an
	// *InvalidContentTypeError if mimeType is not handled.
	Validate(mimeType string, content io.Reader) error

	// XMLReader returns a sanitizing reader for mimeType. If baseURL is not
	// nil, links are rewritten relative to it.
	XMLReader(baseURL *url.URL, mimeType string) (XMLReader, error)

	// Templates returns the transform applied after sanitizing, or nil to
	// copy events unchanged.
	Templates(mimeType string) (Templates, error)

	// Prefix and Suffix return markup wrapped around content before parsing,
	// or "" if none is needed.
	Prefix(mimeType string) (string, error)
	Suffix(mimeType string) (string, error)
}
