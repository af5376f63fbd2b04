package content

import (
	"errors"
	"io"
)

// Kind identifies the type of a parse event.
type Kind int

const (
	StartDocument Kind = iota
	EndDocument
	StartElement
	EndElement
	Characters
	IgnorableWhitespace
	ProcessingInstruction
	SkippedEntity
	NotationDecl
	UnparsedEntityDecl
	StartPrefixMapping
	EndPrefixMapping
)

var kindNames = [...]string{
	"StartDocument", "EndDocument", "StartElement", "EndElement", "Characters",
	"IgnorableWhitespace", "ProcessingInstruction", "SkippedEntity",
	"NotationDecl", "UnparsedEntityDecl", "StartPrefixMapping", "EndPrefixMapping",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Attr is a single element attribute. Name is the local name; Space holds the
// namespace URI if the attribute was prefixed.
type Attr struct {
	Space string
	Name  string
	Value string
}

// Event is one token of the streaming document model.
//
// Name is the element local name, processing instruction target, entity or
// notation name, or namespace prefix depending on Kind. Data carries
// character data, processing instruction data, the namespace URI of a prefix
// mapping, or a system identifier.
type Event struct {
	Kind  Kind
	Name  string
	Space string
	Attrs []Attr
	Data  string
}

// Handler consumes a stream of events.
type Handler interface {
	Handle(ev Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ev Event) error

func (f HandlerFunc) Handle(ev Event) error {
	return f(ev)
}

var ErrNoInput = errors.New("input source has no reader or system id")

// InputSource is the input to an XMLReader. Reader takes precedence over
// SystemID.
type InputSource struct {
	Reader   io.Reader
	SystemID string
}

// XMLReader produces events for an input source.
type XMLReader interface {
	Parse(src InputSource, h Handler) error
}

func startElement(name string, attrs ...Attr) Event {
	return Event{Kind: StartElement, Name: name, Attrs: attrs}
}

func endElement(name string) Event {
	return Event{Kind: EndElement, Name: name}
}

func characters(data string) Event {
	return Event{Kind: Characters, Data: data}
}
