package content

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// ParseError reports input that is not well-formed XML.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Locator reports the input position just past the most recent event.
// Columns count characters.
type Locator interface {
	Position() (line, column int)
}

// LocatorSetter is implemented by handlers that want position information.
// NewXMLParser calls SetLocator before the first event.
type LocatorSetter interface {
	SetLocator(l Locator)
}

// decoderLocator reports decoder positions with columns counted in
// characters rather than bytes.
type decoderLocator struct {
	d     *xml.Decoder
	lines *lineReader
}

func (l *decoderLocator) Position() (int, int) {
	line, col := l.d.InputPos()
	return line, l.lines.column(l.d.InputOffset(), col)
}

// lineReader feeds the decoder one byte at a time and keeps the bytes of the
// current line so byte columns can be converted to character columns.
type lineReader struct {
	r         io.ByteReader
	offset    int64
	lineStart int64
	// lead counts bytes of the current line read before this reader took
	// over; they are single-byte characters.
	lead int
	line []byte
}

func newLineReader(r io.Reader, offset int64, lead int) *lineReader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &lineReader{r: br, offset: offset, lineStart: offset - int64(lead), lead: lead}
}

func (r *lineReader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return b, err
	}
	r.offset++
	if b == '\n' {
		r.lineStart = r.offset
		r.lead = 0
		r.line = r.line[:0]
	} else {
		r.line = append(r.line, b)
	}
	return b, nil
}

func (r *lineReader) Read(p []byte) (int, error) {
	for i := range p {
		b, err := r.ReadByte()
		if err != nil {
			return i, err
		}
		p[i] = b
	}
	return len(p), nil
}

// column converts byteCol, the byte column at decoder offset off, to a
// character column. It returns byteCol when off is not on the current line.
func (r *lineReader) column(off int64, byteCol int) int {
	n := int(off-r.lineStart) - r.lead
	if off < r.lineStart || n < 0 || n > len(r.line) || int(off-r.lineStart)+1 != byteCol {
		return byteCol
	}
	return r.lead + utf8.RuneCount(r.line[:n]) + 1
}

type ParserOption func(*xmlParser)

// WithHTMLEntities makes the parser accept the HTML named character entities
// in addition to the five predefined XML entities.
func WithHTMLEntities() ParserOption {
	return func(p *xmlParser) {
		p.htmlEntities = true
	}
}

type xmlParser struct {
	htmlEntities bool
}

// NewXMLParser returns a strict, namespace-aware XML parser. Comments, the XML
// declaration and DOCTYPE directives are not reported; namespace declarations
// are reported as prefix mappings rather than attributes.
func NewXMLParser(opts ...ParserOption) XMLReader {
	p := &xmlParser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *xmlParser) Parse(src InputSource, h Handler) error {
	r, closeFn, err := src.open()
	if err != nil {
		return err
	}
	defer closeFn()

	loc := &decoderLocator{lines: newLineReader(r, 0, 0)}
	d := xml.NewDecoder(loc.lines)
	d.Strict = true
	d.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		cr, err := charset.NewReaderLabel(label, input)
		if err != nil {
			return nil, err
		}
		// The declaration read so far is ASCII.
		_, col := d.InputPos()
		loc.lines = newLineReader(cr, d.InputOffset(), col-1)
		return loc.lines, nil
	}
	if p.htmlEntities {
		d.Entity = xml.HTMLEntity
	}
	loc.d = d

	if ls, ok := h.(LocatorSetter); ok {
		ls.SetLocator(loc)
	}

	if err := h.Handle(Event{Kind: StartDocument}); err != nil {
		return err
	}

	var (
		depth    int
		seenRoot bool
		scopes   [][]string
	)

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return positionedError(loc, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 && seenRoot {
				return newParseError(loc, "junk after document element")
			}
			seenRoot = true
			depth++

			var prefixes []string
			attrs := make([]Attr, 0, len(t.Attr))
			for _, a := range t.Attr {
				switch {
				case a.Name.Space == "" && a.Name.Local == "xmlns":
					prefixes = append(prefixes, "")
					if err := h.Handle(Event{Kind: StartPrefixMapping, Name: "", Data: a.Value}); err != nil {
						return err
					}
				case a.Name.Space == "xmlns":
					prefixes = append(prefixes, a.Name.Local)
					if err := h.Handle(Event{Kind: StartPrefixMapping, Name: a.Name.Local, Data: a.Value}); err != nil {
						return err
					}
				default:
					attrs = append(attrs, Attr{Space: a.Name.Space, Name: a.Name.Local, Value: a.Value})
				}
			}
			scopes = append(scopes, prefixes)

			if err := h.Handle(Event{Kind: StartElement, Name: t.Name.Local, Space: t.Name.Space, Attrs: attrs}); err != nil {
				return err
			}

		case xml.EndElement:
			depth--
			if err := h.Handle(Event{Kind: EndElement, Name: t.Name.Local, Space: t.Name.Space}); err != nil {
				return err
			}
			prefixes := scopes[len(scopes)-1]
			scopes = scopes[:len(scopes)-1]
			for _, prefix := range prefixes {
				if err := h.Handle(Event{Kind: EndPrefixMapping, Name: prefix}); err != nil {
					return err
				}
			}

		case xml.CharData:
			if depth == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return newParseError(loc, "content is not allowed outside the document element")
				}
				continue
			}
			if err := h.Handle(characters(string(t))); err != nil {
				return err
			}

		case xml.ProcInst:
			if t.Target == "xml" {
				continue
			}
			if err := h.Handle(Event{Kind: ProcessingInstruction, Name: t.Target, Data: string(t.Inst)}); err != nil {
				return err
			}

		case xml.Comment, xml.Directive:
			// not reported
		}
	}

	if !seenRoot {
		return newParseError(loc, "document has no root element")
	}

	return h.Handle(Event{Kind: EndDocument})
}

func newParseError(l Locator, msg string) *ParseError {
	line, col := l.Position()
	return &ParseError{Line: line, Column: col, Msg: msg}
}

func positionedError(l Locator, err error) error {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return newParseError(l, se.Msg)
	}
	return err
}
