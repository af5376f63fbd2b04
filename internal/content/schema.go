package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/jacoelho/xsd"
	"github.com/jacoelho/xsd/xsderrors"
)

//go:embed schema/*.xsd
var schemaFS embed.FS

const (
	xhtmlTransitionalSchema = "schema/xhtml1-transitional.xsd"
	xmlNamespaceSchema      = "schema/xml.xsd"
)

// schemaLocations maps import locations to their embedded copies. Nothing is
// fetched over the network.
var schemaLocations = map[string]string{
	"http://www.w3.org/2001/xml.xsd": xmlNamespaceSchema,
}

// Schema is a compiled XML Schema. It is safe for concurrent use.
type Schema struct {
	engine *xsd.Engine
}

// violation is the first error found while validating a document.
type violation struct {
	msg    string
	line   int
	column int
}

// loadSchema compiles an embedded schema document.
func loadSchema(name string) (*Schema, error) {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return compileSchema(name, data)
}

func compileSchema(name string, data []byte) (*Schema, error) {
	resolver := xsd.ResolverFunc(func(base, location string) (xsd.SchemaSource, error) {
		embedded, ok := schemaLocations[location]
		if !ok {
			return xsd.SchemaSource{}, xsderrors.ErrSchemaNotFound
		}
		data, err := schemaFS.ReadFile(embedded)
		if err != nil {
			return xsd.SchemaSource{}, err
		}
		return xsd.Bytes(location, data), nil
	})

	engine, err := xsd.Compile(xsd.Bytes(name, data).WithResolver(resolver))
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}
	return &Schema{engine: engine}, nil
}

// validate checks a complete document. A nil violation and nil error mean
// doc is valid.
func (s *Schema) validate(doc []byte) (*violation, error) {
	err := s.engine.ValidateWithOptions(bytes.NewReader(doc), xsd.ValidateOptions{MaxErrors: 1})
	if err == nil {
		return nil, nil
	}

	for _, e := range xsderrors.Flatten(err) {
		var diag *xsderrors.Error
		if !errors.As(e, &diag) {
			continue
		}
		msg := diag.Message()
		if msg == "" {
			msg = diag.Error()
		}
		line, col := tokenEnd(doc, diag.Line(), diag.Column())
		return &violation{msg: msg, line: line, column: col}, nil
	}
	return nil, err
}

// tokenEnd takes the one-based line and byte column where a tag or text run
// starts in doc and returns the line and character column just past its end.
// Unknown positions map to the start of the document.
func tokenEnd(doc []byte, line, col int) (int, int) {
	starts := lineStarts(doc)
	if line < 1 || line > len(starts) || col < 1 {
		return 1, 1
	}

	end := starts[line-1] + col - 1
	switch {
	case end >= len(doc):
		end = len(doc)
	case doc[end] == '<':
		end = markupEnd(doc, end)
	default:
		for end < len(doc) && doc[end] != '<' {
			end++
		}
	}

	i := sort.Search(len(starts), func(i int) bool { return starts[i] > end }) - 1
	return i + 1, utf8.RuneCount(doc[starts[i]:end]) + 1
}

// lineStarts returns the offset of the first byte of every line. LF, CR LF
// and a lone CR each end a line.
func lineStarts(doc []byte) []int {
	starts := []int{0}
	for i := 0; i < len(doc); i++ {
		switch doc[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(doc) && doc[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return starts
}

// markupEnd returns the offset just past the '>' closing the tag that starts
// at i, skipping quoted attribute values.
func markupEnd(doc []byte, i int) int {
	var quote byte
	for i++; i < len(doc); i++ {
		c := doc[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i + 1
		}
	}
	return len(doc)
}
