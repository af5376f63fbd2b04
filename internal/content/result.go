package content

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// voidElements are serialized in minimized form. Every other element gets an
// explicit end tag so the output stays valid when embedded in an HTML page.
var voidElements = map[string]bool{
	"area": true, "base": true, "basefont": true, "br": true, "col": true,
	"frame": true, "hr": true, "img": true, "input": true, "isindex": true,
	"link": true, "meta": true, "param": true,
}

type streamResult struct {
	w       *bufio.Writer
	pending string
	open    bool
	ns      []Attr
}

// NewStreamResult returns a Handler serializing events to w as UTF-8 XML.
// Output is flushed when the document ends.
func NewStreamResult(w io.Writer) Handler {
	return &streamResult{w: bufio.NewWriter(w)}
}

func (r *streamResult) Handle(ev Event) error {
	switch ev.Kind {
	case StartElement:
		r.closeStartTag()
		r.w.WriteByte('<')
		r.w.WriteString(ev.Name)
		for _, ns := range r.ns {
			if ns.Name == "" {
				r.w.WriteString(` xmlns="`)
			} else {
				r.w.WriteString(` xmlns:`)
				r.w.WriteString(ns.Name)
				r.w.WriteString(`="`)
			}
			r.w.WriteString(escapeAttr(ns.Value))
			r.w.WriteByte('"')
		}
		r.ns = r.ns[:0]
		for _, a := range ev.Attrs {
			r.w.WriteByte(' ')
			r.w.WriteString(a.Name)
			r.w.WriteString(`="`)
			r.w.WriteString(escapeAttr(a.Value))
			r.w.WriteByte('"')
		}
		r.pending = ev.Name
		r.open = true

	case EndElement:
		if r.open && r.pending == ev.Name && voidElements[ev.Name] {
			r.w.WriteString(" />")
			r.open = false
			break
		}
		r.closeStartTag()
		r.w.WriteString("</")
		r.w.WriteString(ev.Name)
		r.w.WriteByte('>')

	case Characters, IgnorableWhitespace:
		if ev.Data == "" {
			break
		}
		r.closeStartTag()
		r.w.WriteString(escapeText(ev.Data))

	case ProcessingInstruction:
		r.closeStartTag()
		r.w.WriteString("<?")
		r.w.WriteString(ev.Name)
		if ev.Data != "" {
			r.w.WriteByte(' ')
			r.w.WriteString(strings.ReplaceAll(ev.Data, "?>", "? >"))
		}
		r.w.WriteString("?>")

	case StartPrefixMapping:
		r.declare(ev.Name, ev.Data)

	case EndDocument:
		r.closeStartTag()
		return r.w.Flush()
	}

	return nil
}

func (r *streamResult) closeStartTag() {
	if r.open {
		r.w.WriteByte('>')
		r.open = false
	}
}

func (r *streamResult) declare(prefix, uri string) {
	for i := range r.ns {
		if r.ns[i].Name == prefix {
			r.ns[i].Value = uri
			return
		}
	}
	r.ns = append(r.ns, Attr{Name: prefix, Value: uri})
}

var errUnbalanced = errors.New("end element without matching start element")

type nodeResult struct {
	root *html.Node
	cur  *html.Node
}

// NewNodeResult returns a Handler appending the event stream as nodes under
// parent. Processing instructions and prefix mappings have no node form and
// are dropped.
func NewNodeResult(parent *html.Node) Handler {
	return &nodeResult{root: parent, cur: parent}
}

func (r *nodeResult) Handle(ev Event) error {
	switch ev.Kind {
	case StartElement:
		n := &html.Node{
			Type:     html.ElementNode,
			Data:     ev.Name,
			DataAtom: atom.Lookup([]byte(ev.Name)),
		}
		for _, a := range ev.Attrs {
			n.Attr = append(n.Attr, html.Attribute{Key: a.Name, Val: a.Value})
		}
		r.cur.AppendChild(n)
		r.cur = n

	case EndElement:
		if r.cur == r.root {
			return errUnbalanced
		}
		r.cur = r.cur.Parent

	case Characters, IgnorableWhitespace:
		if ev.Data == "" {
			break
		}
		if last := r.cur.LastChild; last != nil && last.Type == html.TextNode {
			last.Data += ev.Data
			break
		}
		r.cur.AppendChild(&html.Node{Type: html.TextNode, Data: ev.Data})
	}

	return nil
}

func escapeText(s string) string {
	return escape(s, false)
}

func escapeAttr(s string) string {
	return escape(s, true)
}

func escape(s string, attr bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if (r == utf8.RuneError && size == 1) || !isXMLChar(r) {
			b.WriteRune('\uFFFD')
			continue
		}
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '\r':
			b.WriteString("&#xD;")
		case '"':
			if attr {
				b.WriteString("&quot;")
			} else {
				b.WriteByte('"')
			}
		case '\n':
			if attr {
				b.WriteString("&#xA;")
			} else {
				b.WriteByte('\n')
			}
		case '\t':
			if attr {
				b.WriteString("&#x9;")
			} else {
				b.WriteByte('\t')
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
