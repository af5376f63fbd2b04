package content

import (
	"bufio"
	"bytes"
	"io"
	"net/url"
	"strings"
)

const maxLineSize = 1 << 20

// TextReader turns plain text into a document of the form
// <text><line>...</line>...</text>, one line element per input line. The
// text is never interpreted as markup.
type TextReader struct{}

func (TextReader) Parse(src InputSource, h Handler) error {
	r, closeFn, err := src.open()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := h.Handle(Event{Kind: StartDocument}); err != nil {
		return err
	}
	if err := h.Handle(startElement("text")); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	scanner.Split(scanLines)
	for scanner.Scan() {
		if err := h.Handle(startElement("line")); err != nil {
			return err
		}
		if err := h.Handle(characters(trimLine(scanner.Text()))); err != nil {
			return err
		}
		if err := h.Handle(endElement("line")); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := h.Handle(endElement("text")); err != nil {
		return err
	}
	return h.Handle(Event{Kind: EndDocument})
}

// scanLines splits on "\n", "\r\n" or a lone "\r".
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// need one more byte to tell "\r" from "\r\n"
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// trimLine removes leading and trailing spaces and control characters.
func trimLine(line string) string {
	return strings.TrimFunc(line, func(r rune) bool { return r <= ' ' })
}

// TextFilter handles text/plain content.
type TextFilter struct{}

func NewTextFilter() *TextFilter {
	return &TextFilter{}
}

// Validate accepts any input.
func (f *TextFilter) Validate(mimeType string, content io.Reader) error {
	return nil
}

func (f *TextFilter) XMLReader(baseURL *url.URL, mimeType string) (XMLReader, error) {
	return TextReader{}, nil
}

func (f *TextFilter) Templates(mimeType string) (Templates, error) {
	return TextTemplates, nil
}

func (f *TextFilter) Prefix(mimeType string) (string, error) {
	return "", nil
}

func (f *TextFilter) Suffix(mimeType string) (string, error) {
	return "", nil
}
