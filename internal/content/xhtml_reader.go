package content

import (
	"log/slog"
	"net/url"
	"strings"
)

const noFilter = -1

// neutralBase is used to resolve URLs for protocol checks only.
var neutralBase = &url.URL{Scheme: "http", Host: "localhost", Path: "/"}

// XHTMLReader filters the events of a parent reader down to the allowed
// subset of XHTML. Disallowed elements are dropped with their whole subtree,
// disallowed attributes are removed and URLs with unsafe protocols are
// replaced by "#".
//
// An XHTMLReader may be shared; each call to Parse runs with its own state.
type XHTMLReader struct {
	parent         XMLReader
	allowedClasses set
	baseURL        *url.URL
	logger         *slog.Logger
}

// NewXHTMLReader wraps parent. If baseURL is not nil, accepted URLs are
// rewritten as absolute URLs resolved against it.
func NewXHTMLReader(parent XMLReader, allowedClasses []string, baseURL *url.URL, logger *slog.Logger) *XHTMLReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &XHTMLReader{
		parent:         parent,
		allowedClasses: newClassSet(allowedClasses),
		baseURL:        baseURL,
		logger:         logger,
	}
}

func newClassSet(classes []string) set {
	s := make(set, len(classes))
	for _, c := range classes {
		s[c] = struct{}{}
	}
	return s
}

func (r *XHTMLReader) Parse(src InputSource, h Handler) error {
	return r.parent.Parse(src, r.newSanitizer(h))
}

func (r *XHTMLReader) newSanitizer(next Handler) *sanitizer {
	return &sanitizer{
		reader:       r,
		next:         next,
		elementLevel: -1,
		filterLevel:  noFilter,
	}
}

// sanitizer holds the state of one parse.
type sanitizer struct {
	reader *XHTMLReader
	next   Handler

	// elementLevel is the depth of the current element, counting the
	// synthetic wrapper if one was opened.
	elementLevel int
	// filterLevel is the depth at which a suppressed subtree began.
	filterLevel int
	wrapped     bool
}

// SetLocator forwards position information to the downstream handler.
func (s *sanitizer) SetLocator(l Locator) {
	if ls, ok := s.next.(LocatorSetter); ok {
		ls.SetLocator(l)
	}
}

func (s *sanitizer) filtering() bool {
	return s.filterLevel != noFilter
}

func (s *sanitizer) Handle(ev Event) error {
	switch ev.Kind {
	case StartDocument:
		s.elementLevel = -1
		s.filterLevel = noFilter
		s.wrapped = false
		return s.next.Handle(ev)

	case EndDocument:
		if s.wrapped {
			if err := s.next.Handle(endElement("body")); err != nil {
				return err
			}
			if err := s.next.Handle(endElement("html")); err != nil {
				return err
			}
			s.wrapped = false
		}
		return s.next.Handle(ev)

	case StartElement:
		return s.startElement(ev)

	case EndElement:
		return s.endElement(ev)

	case StartPrefixMapping, EndPrefixMapping:
		if ev.Name == "" {
			return nil
		}
		return s.next.Handle(ev)

	default:
		if s.filtering() {
			return nil
		}
		return s.next.Handle(ev)
	}
}

func (s *sanitizer) startElement(ev Event) error {
	tag := canonicalElement(ev.Name)

	s.elementLevel++

	if s.elementLevel == 0 && tag != "html" {
		if err := s.next.Handle(startElement("html")); err != nil {
			return err
		}
		if err := s.next.Handle(startElement("body")); err != nil {
			return err
		}
		s.elementLevel += 2
		s.wrapped = true
	}

	if s.filtering() {
		return nil
	}

	if !allowedTags.has(tag) {
		s.filterLevel = s.elementLevel
		return nil
	}

	return s.next.Handle(Event{Kind: StartElement, Name: tag, Attrs: s.filterAttributes(tag, ev.Attrs)})
}

func (s *sanitizer) endElement(ev Event) error {
	defer func() { s.elementLevel-- }()

	tag := canonicalElement(ev.Name)

	if s.filtering() {
		if s.filterLevel == s.elementLevel {
			s.filterLevel = noFilter
		}
		return nil
	}

	return s.next.Handle(endElement(tag))
}

func (s *sanitizer) filterAttributes(tag string, attrs []Attr) []Attr {
	if len(attrs) == 0 {
		return nil
	}

	filtered := make([]Attr, 0, len(attrs))
	seen := make(map[string]bool, len(attrs))

	for _, a := range attrs {
		if !htmlAttributeSpace(a.Space) {
			continue
		}
		name := strings.ToLower(a.Name)
		if seen[name] {
			continue
		}

		switch {
		case name == "class":
			if classes := s.filterClasses(a.Value); classes != "" {
				filtered = append(filtered, Attr{Name: name, Value: classes})
				seen[name] = true
			}
		case matchAttribute(allowedAttributes, tag, name):
			value := a.Value
			if matchAttribute(urlAttributes, tag, name) {
				value = s.filterURL(value)
			}
			filtered = append(filtered, Attr{Name: name, Value: value})
			seen[name] = true
		}
	}

	return filtered
}

func (s *sanitizer) filterClasses(value string) string {
	var kept []string
	for _, c := range strings.Fields(value) {
		if s.reader.allowedClasses.has(c) {
			kept = append(kept, c)
		}
	}
	return strings.Join(kept, " ")
}

// filterURL returns the value to emit for a URL attribute.
func (s *sanitizer) filterURL(raw string) string {
	ref, err := url.Parse(raw)
	if err != nil {
		s.reader.logger.Warn("malformed URL", slog.String("url", raw), slog.String("error", err.Error()))
		return "#"
	}

	scheme := strings.ToLower(neutralBase.ResolveReference(ref).Scheme)
	if scheme == "" {
		return raw
	}
	if !allowedProtocols.has(scheme) {
		s.reader.logger.Warn("invalid protocol", slog.String("protocol", scheme))
		return "#"
	}

	if s.reader.baseURL != nil {
		return s.reader.baseURL.ResolveReference(ref).String()
	}
	return raw
}

func canonicalElement(name string) string {
	name = strings.ToLower(name)
	if canon, ok := replacedTags[name]; ok {
		return canon
	}
	return name
}

// htmlAttributeSpace reports whether an attribute in namespace space is one
// of ours. Attributes from any other namespace are dropped.
func htmlAttributeSpace(space string) bool {
	return space == "" || space == xhtmlNamespace || space == xmlNamespace
}
