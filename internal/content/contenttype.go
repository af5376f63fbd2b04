package content

// ContentType identifies a content dialect by mime type.
type ContentType string

const (
	Text     ContentType = "text/plain"
	XHTML    ContentType = "application/xhtml+xml"
	Markdown ContentType = "text/markdown"
)

func (ct ContentType) MimeType() string {
	return string(ct)
}

func (ct ContentType) String() string {
	return string(ct)
}

// ContentTypes lists the dialects this package provides filters for.
func ContentTypes() []ContentType {
	return []ContentType{Text, XHTML, Markdown}
}
