package content

import "strings"

// Templates is a compiled post-processing transform. Implementations are
// immutable; NewTransformer returns a handler with fresh state each time.
type Templates interface {
	NewTransformer(out Handler) Handler
}

var (
	// TextTemplates renders a text/line document as a div with the lines
	// separated by line breaks.
	TextTemplates Templates = textTemplates{}

	// XHTMLTemplates replaces the html/body document wrapper with a single
	// div holding the body content. A body that is already a single div is
	// passed through as is.
	XHTMLTemplates Templates = xhtmlTemplates{}
)

type textTemplates struct{}

func (textTemplates) NewTransformer(out Handler) Handler {
	return &textTransformer{out: out}
}

type textTransformer struct {
	out   Handler
	depth int
	lines int
}

func (t *textTransformer) Handle(ev Event) error {
	switch ev.Kind {
	case StartDocument, EndDocument:
		return t.out.Handle(ev)

	case StartElement:
		t.depth++
		switch {
		case t.depth == 1:
			return t.out.Handle(startElement("div"))
		case t.depth == 2 && ev.Name == "line":
			t.lines++
			if t.lines > 1 {
				if err := t.out.Handle(startElement("br")); err != nil {
					return err
				}
				return t.out.Handle(endElement("br"))
			}
		}

	case EndElement:
		t.depth--
		if t.depth == 0 {
			return t.out.Handle(endElement("div"))
		}

	case Characters:
		if t.depth == 2 {
			return t.out.Handle(ev)
		}
	}

	return nil
}

type xhtmlTemplates struct{}

func (xhtmlTemplates) NewTransformer(out Handler) Handler {
	return &xhtmlTransformer{out: out}
}

// bodyState tracks whether the body so far holds nothing but one div.
type bodyState int

const (
	bodyEmpty bodyState = iota
	bodyInDiv
	bodyLoneDiv
)

type heldEvent struct {
	ev Event
	// outer marks whitespace directly inside body.
	outer bool
}

// xhtmlTransformer holds body events back until it knows whether the body is
// a single div. That div then stands in for the wrapper, so formatting
// already formatted content changes nothing.
type xhtmlTransformer struct {
	out     Handler
	depth   int
	inBody  bool
	pending bool
	body    bodyState
	held    []heldEvent
}

func (t *xhtmlTransformer) Handle(ev Event) error {
	switch ev.Kind {
	case StartDocument, EndDocument:
		return t.out.Handle(ev)

	case StartPrefixMapping, EndPrefixMapping:
		return t.emit(ev, false)

	case StartElement:
		t.depth++
		switch {
		case t.depth == 1:
			t.pending = true
			return nil
		case t.depth == 2 && ev.Name == "body":
			t.inBody = true
			return nil
		case t.depth == 2:
			if err := t.wrap(); err != nil {
				return err
			}
		case t.depth == 3 && t.pending:
			if t.body == bodyEmpty && ev.Name == "div" {
				t.body = bodyInDiv
			} else if err := t.wrap(); err != nil {
				return err
			}
		}
		return t.emit(ev, false)

	case EndElement:
		t.depth--
		switch {
		case t.depth == 0:
			if t.pending && t.body == bodyLoneDiv {
				return t.unwrap()
			}
			if err := t.wrap(); err != nil {
				return err
			}
			return t.out.Handle(endElement("div"))
		case t.depth == 1 && t.inBody:
			t.inBody = false
			return nil
		case t.depth == 2 && t.pending && t.body == bodyInDiv:
			t.body = bodyLoneDiv
		}
		return t.emit(ev, false)

	case Characters, IgnorableWhitespace:
		if t.depth < 2 {
			return nil
		}
		outer := t.depth == 2
		if outer && t.pending && strings.TrimSpace(ev.Data) != "" {
			if err := t.wrap(); err != nil {
				return err
			}
		}
		return t.emit(ev, outer)
	}

	return nil
}

func (t *xhtmlTransformer) emit(ev Event, outer bool) error {
	if t.pending {
		t.held = append(t.held, heldEvent{ev: ev, outer: outer})
		return nil
	}
	return t.out.Handle(ev)
}

// wrap opens the wrapper div and releases the held events.
func (t *xhtmlTransformer) wrap() error {
	if !t.pending {
		return nil
	}
	t.pending = false
	if err := t.out.Handle(startElement("div")); err != nil {
		return err
	}
	return t.release(false)
}

// unwrap releases the held lone div without a wrapper.
func (t *xhtmlTransformer) unwrap() error {
	t.pending = false
	return t.release(true)
}

func (t *xhtmlTransformer) release(dropOuter bool) error {
	held := t.held
	t.held = nil
	for _, h := range held {
		if dropOuter && h.outer {
			continue
		}
		if err := t.out.Handle(h.ev); err != nil {
			return err
		}
	}
	return nil
}
