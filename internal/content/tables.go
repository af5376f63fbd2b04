package content

import (
	"sort"
	"strings"
)

const (
	xhtmlNamespace = "http://www.w3.org/1999/xhtml"
	xmlNamespace   = "http://www.w3.org/XML/1998/namespace"
)

var allowedTags = newSet(
	"a", "abbr", "acronym", "address", "bdo", "big", "blockquote", "body",
	"br", "caption", "cite", "code", "colgroup", "dd", "del", "dfn",
	"div", "dl", "dt", "em", "h1", "h2", "h3", "h4", "h5", "h6", "hr",
	"html", "img", "ins", "kbd", "li", "ol", "p", "pre", "q", "samp",
	"small", "span", "strong", "sub", "sup", "table", "tbody", "td",
	"tfoot", "th", "thead", "tr", "tt", "ul", "var",
)

// replacedTags maps presentational elements onto their semantic equivalents.
var replacedTags = map[string]string{
	"b":      "strong",
	"i":      "em",
	"s":      "del",
	"strike": "del",
	"u":      "em",
}

// allowedAttributes uses the pattern language elem.attr, elem.* (any
// attribute), elem.- (no attributes) and *.attr (attribute on any element).
var allowedAttributes = newSet(
	"*.dir", "*.lang", "*.title", "a.href", "a.charset", "a.hreflang",
	"a.type", "blockquote.cite", "body.-", "colgroup.align",
	"colgroup.char", "colgroup.charoff", "colgroup.span",
	"colgroup.valign", "colgroup.width", "del.cite", "del.datetime",
	"html.-", "img.alt", "img.src", "img.height", "img.longdesc",
	"img.width", "ins.cite", "ins.datetime", "pre.width", "q.cite",
	"table.border", "table.cellpadding", "table.cellspacing",
	"table.frame", "table.rules", "table.summary", "table.width",
	"tbody.align", "tbody.char", "tbody.charoff", "tbody.valign",
	"td.abbr", "td.align", "td.axis", "td.char", "td.charoff",
	"td.colspan", "td.headers", "td.rowspan", "td.scope", "td.valign",
	"tfoot.align", "tfoot.char", "tfoot.charoff", "tfoot.valign",
	"th.abbr", "th.align", "th.axis", "th.char", "th.charoff",
	"th.colspan", "th.headers", "th.rowspan", "th.scope", "th.valign",
	"thead.align", "thead.char", "thead.charoff", "thead.valign",
	"tr.align", "tr.char", "tr.charoff", "tr.valign",
)

// urlAttributes marks the attributes whose values are URLs, in the same
// pattern language as allowedAttributes.
var urlAttributes = newSet(
	"*.href", "*.src", "*.cite", "*.xmlns", "body.background",
	"form.action", "frame.longdesc", "head.profile", "img.ismap",
	"img.longdesc", "img.usemap", "object.archive", "object.codebase",
	"object.data", "object.usemap",
)

var allowedProtocols = newSet("http", "https", "ftp", "mailto")

type set map[string]struct{}

func newSet(items ...string) set {
	s := make(set, len(items))
	for _, item := range items {
		s[strings.ToLower(item)] = struct{}{}
	}
	return s
}

func (s set) has(item string) bool {
	_, ok := s[item]
	return ok
}

func (s set) sorted() []string {
	items := make([]string, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// matchAttribute applies the pattern precedence elem.* > elem.- > *.attr >
// elem.attr to a canonical element and attribute name.
func matchAttribute(patterns set, elem, attr string) bool {
	switch {
	case patterns.has(elem + ".*"):
		return true
	case patterns.has(elem + ".-"):
		return false
	case patterns.has("*." + attr):
		return true
	default:
		return patterns.has(elem + "." + attr)
	}
}

// Allowlist is a read-only view of the sanitizer tables.
type Allowlist struct {
	Tags       []string          `json:"tags"`
	Replaced   map[string]string `json:"replaced"`
	Attributes []string          `json:"attributes"`
	URLs       []string          `json:"url_attributes"`
	Protocols  []string          `json:"protocols"`
}

// DefaultAllowlist returns a copy of the tables used by XHTMLReader.
func DefaultAllowlist() Allowlist {
	replaced := make(map[string]string, len(replacedTags))
	for k, v := range replacedTags {
		replaced[k] = v
	}
	return Allowlist{
		Tags:       allowedTags.sorted(),
		Replaced:   replaced,
		Attributes: allowedAttributes.sorted(),
		URLs:       urlAttributes.sorted(),
		Protocols:  allowedProtocols.sorted(),
	}
}
