package content

import (
	"io"
	"net/url"
	"strings"
)

// Format parses src with the sanitizing reader of filter, applies its
// templates and sends the result to out. If Format fails, out may have
// received a partial document that must not be shown.
func Format(mimeType string, baseURL *url.URL, src InputSource, filter ContentFilter, out Handler) error {
	tpl, err := filter.Templates(mimeType)
	if err != nil {
		return err
	}
	reader, err := filter.XMLReader(baseURL, mimeType)
	if err != nil {
		return err
	}

	h := out
	if tpl != nil {
		h = tpl.NewTransformer(out)
	}
	return reader.Parse(src, h)
}

// FormatString is like Format but returns the serialized result.
func FormatString(mimeType string, baseURL *url.URL, src InputSource, filter ContentFilter) (string, error) {
	var sb strings.Builder
	if err := Format(mimeType, baseURL, src, filter, NewStreamResult(&sb)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// FormatText sanitizes content of type ct and returns the serialized result.
func FormatText(content string, baseURL *url.URL, ct ContentType, filter ContentFilter) (string, error) {
	src, err := wrappedSource(content, ct, filter)
	if err != nil {
		return "", err
	}
	return FormatString(ct.MimeType(), baseURL, src, filter)
}

// FormatTextTo sanitizes content of type ct into out, for example a
// NodeResult embedding it in a larger document.
func FormatTextTo(content string, baseURL *url.URL, ct ContentType, filter ContentFilter, out Handler) error {
	src, err := wrappedSource(content, ct, filter)
	if err != nil {
		return err
	}
	return Format(ct.MimeType(), baseURL, src, filter, out)
}

func wrappedSource(content string, ct ContentType, filter ContentFilter) (InputSource, error) {
	prefix, err := filter.Prefix(ct.MimeType())
	if err != nil {
		return InputSource{}, err
	}
	suffix, err := filter.Suffix(ct.MimeType())
	if err != nil {
		return InputSource{}, err
	}
	return InputSource{Reader: io.MultiReader(
		strings.NewReader(prefix),
		strings.NewReader(content),
		strings.NewReader(suffix),
	)}, nil
}
