package content

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownFilter handles text/markdown content by rendering it to XHTML and
// sanitizing the result like an XHTML fragment. Raw HTML in the source is
// omitted and YAML front matter is stripped.
type MarkdownFilter struct {
	xhtml    *XHTMLFilter
	markdown goldmark.Markdown
}

func NewMarkdownFilter(xhtml *XHTMLFilter) *MarkdownFilter {
	return &MarkdownFilter{
		xhtml: xhtml,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM, meta.Meta),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
	}
}

// Validate accepts any input; every Markdown document renders.
func (f *MarkdownFilter) Validate(mimeType string, content io.Reader) error {
	return nil
}

func (f *MarkdownFilter) XMLReader(baseURL *url.URL, mimeType string) (XMLReader, error) {
	return &markdownReader{
		markdown:  f.markdown,
		sanitizer: NewXHTMLReader(NewXMLParser(WithHTMLEntities()), f.xhtml.allowedClasses, baseURL, f.xhtml.logger),
	}, nil
}

func (f *MarkdownFilter) Templates(mimeType string) (Templates, error) {
	return XHTMLTemplates, nil
}

// Prefix returns "" because Markdown is rendered before the XHTML wrapper
// is applied.
func (f *MarkdownFilter) Prefix(mimeType string) (string, error) {
	return "", nil
}

func (f *MarkdownFilter) Suffix(mimeType string) (string, error) {
	return "", nil
}

// Metadata returns the front matter of a Markdown document, or an empty map
// if it has none.
func (f *MarkdownFilter) Metadata(content io.Reader) (map[string]any, error) {
	source, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	ctx := parser.NewContext()
	if err := f.markdown.Convert(source, io.Discard, parser.WithContext(ctx)); err != nil {
		return nil, err
	}
	data, err := meta.TryGet(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = stringKeys(v)
	}
	return out, nil
}

// stringKeys converts nested YAML maps so the result can be encoded as JSON.
func stringKeys(v any) any {
	switch v := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[fmt.Sprint(k)] = stringKeys(val)
		}
		return m
	case map[string]any:
		for k, val := range v {
			v[k] = stringKeys(val)
		}
		return v
	case []any:
		for i := range v {
			v[i] = stringKeys(v[i])
		}
		return v
	default:
		return v
	}
}

type markdownReader struct {
	markdown  goldmark.Markdown
	sanitizer *XHTMLReader
}

func (r *markdownReader) Parse(src InputSource, h Handler) error {
	in, closeFn, err := src.open()
	if err != nil {
		return err
	}
	defer closeFn()

	source, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	var rendered bytes.Buffer
	if err := r.markdown.Convert(source, &rendered); err != nil {
		return err
	}

	return r.sanitizer.Parse(InputSource{Reader: io.MultiReader(
		strings.NewReader(XHTMLPrefix),
		&rendered,
		strings.NewReader(XHTMLSuffix),
	)}, h)
}
