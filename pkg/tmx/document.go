package tmx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// rootElement is the local name of the document root the dialect requires.
const rootElement = "ThreatModel"

// Container element names. Borders holds nodes and rectangle boundaries;
// Lines holds connectors and line boundaries.
const (
	bordersContainer = "Borders"
	linesContainer   = "Lines"
)

// document wraps a parsed TMX tree rooted at the ThreatModel element.
type document struct {
	tree *etree.Document
	root *etree.Element
}

// loadDocument parses raw text into a navigable tree. It fails with
// [SyntaxFailure] when the text is not well-formed XML and with
// [SchemaFailure] when the ThreatModel root is absent. Pure function; the
// input string is never retained.
func loadDocument(text string) (*document, error) {
	tree := etree.NewDocument()
	// Without input validation etree silently repairs unclosed and
	// mismatched tags; those must surface as syntax failures.
	tree.ReadSettings.ValidateInput = true
	if err := tree.ReadFromString(text); err != nil {
		return nil, newParseError(SyntaxFailure, err, "document is not well-formed XML")
	}

	root := tree.Root()
	if root == nil || root.Tag != rootElement {
		return nil, newParseError(SchemaFailure, nil, "missing %s root element", rootElement)
	}

	return &document{tree: tree, root: root}, nil
}

// section returns the first descendant container with the given local name,
// or nil when the document has no such section. Nil is a legal answer: a
// minimal document decodes to an empty graph.
func (d *document) section(name string) *etree.Element {
	return findDescendant(d.root, name)
}

// findDescendant walks the tree depth-first for the first element whose
// local name matches tag, ignoring namespace prefixes.
func findDescendant(e *etree.Element, tag string) *etree.Element {
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			return c
		}
		if found := findDescendant(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// lookupField resolves a logical field to a child element using the
// registry's priority-ordered alias list: qualified name first, bare legacy
// name second. Returns nil when no alias matches.
func lookupField(e *etree.Element, field string) *etree.Element {
	if e == nil {
		return nil
	}
	for _, name := range aliasesFor(field) {
		for _, c := range e.ChildElements() {
			if c.Tag == name.tag && c.Space == name.space {
				return c
			}
		}
	}
	return nil
}

// textField returns the trimmed text of a logical field, or "" when the
// field is absent.
func textField(e *etree.Element, field string) string {
	c := lookupField(e, field)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text())
}

// floatField parses a logical field as a float. Absent or unparsable values
// yield the fallback; a bad coordinate is not worth rejecting the element.
func floatField(e *etree.Element, field string, fallback float64) float64 {
	s := textField(e, field)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

// typeDiscriminator reads the wrapper value's type attribute (i:type in
// qualified documents, bare type in legacy ones) and strips any namespace
// prefix from its value.
func typeDiscriminator(e *etree.Element) string {
	if e == nil {
		return ""
	}
	var raw string
	for _, a := range e.Attr {
		if a.Key != "type" {
			continue
		}
		if a.Space == "i" {
			raw = a.Value
			break
		}
		if a.Space == "" && raw == "" {
			raw = a.Value
		}
	}
	if i := strings.LastIndex(raw, ":"); i >= 0 {
		raw = raw[i+1:]
	}
	return strings.TrimSpace(raw)
}

// wrappers returns the container's child elements that look like keyed
// wrapper pairs: anything carrying a resolvable Value field. Stray children
// are reported through warnf and skipped, never fatal.
func wrappers(container *etree.Element, warnf warnFunc) []*etree.Element {
	if container == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range container.ChildElements() {
		if lookupField(c, "Value") == nil {
			warnf("skipping stray <%s> element in %s section", c.FullTag(), container.Tag)
			continue
		}
		out = append(out, c)
	}
	return out
}
