package dom

import "strings"

// Namespace URIs for the three markup vocabularies the tree builder
// recognizes.
const (
	NamespaceHTML   = "http://www.w3.org/1999/xhtml"
	NamespaceSVG    = "http://www.w3.org/2000/svg"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
)

// Element is an HTML, SVG, or MathML element node. Child bookkeeping
// (Parent/Children/AppendChild/...) comes from the embedded nodeBase;
// Element only adds what's specific to markup elements.
type Element struct {
	nodeBase

	TagName    string
	Namespace  string
	Attributes *Attributes

	// TemplateContent holds the fragment tree parsed out of a <template>
	// element's contents. nil for every other tag.
	TemplateContent *DocumentFragment
}

// NewElement builds an HTML-namespace element, lowercasing tagName the
// way the HTML parser's tree construction stage requires.
func NewElement(tagName string) *Element {
	e := &Element{
		TagName:    strings.ToLower(tagName),
		Namespace:  NamespaceHTML,
		Attributes: NewAttributes(),
	}
	e.nodeBase.init(e)
	return e
}

// NewElementNS builds an element in an arbitrary namespace. tagName is
// kept as given since foreign-content tag names are case-sensitive.
func NewElementNS(tagName, namespace string) *Element {
	e := &Element{
		TagName:    tagName,
		Namespace:  namespace,
		Attributes: NewAttributes(),
	}
	e.nodeBase.init(e)
	return e
}

func (e *Element) Type() NodeType { return ElementNodeType }

func (e *Element) Clone(deep bool) Node {
	clone := &Element{
		TagName:    e.TagName,
		Namespace:  e.Namespace,
		Attributes: e.Attributes.Clone(),
	}
	clone.nodeBase.init(clone)

	if deep {
		for _, child := range e.kids {
			clone.AppendChild(child.Clone(true))
		}
		if e.TemplateContent != nil {
			clone.TemplateContent = e.TemplateContent.Clone(true).(*DocumentFragment)
		}
	}

	return clone
}

// Query runs a CSS selector against this element and its descendants.
func (e *Element) Query(selector string) ([]*Element, error) {
	return selectorMatch(e, selector)
}

// QueryFirst is Query truncated to its first match, or nil, nil if
// nothing matched.
func (e *Element) QueryFirst(selector string) (*Element, error) {
	return selectorMatchFirst(e, selector)
}

// Text concatenates the character data of this element and all of its
// descendants, depth first, in document order.
func (e *Element) Text() string {
	var sb strings.Builder
	e.collectText(&sb)
	return sb.String()
}

func (e *Element) collectText(sb *strings.Builder) {
	for _, child := range e.kids {
		switch c := child.(type) {
		case *Text:
			sb.WriteString(c.Data)
		case *Element:
			c.collectText(sb)
		}
	}
}

func (e *Element) Attr(name string) string {
	val, _ := e.Attributes.Get(name)
	return val
}

func (e *Element) HasAttr(name string) bool {
	return e.Attributes.Has(name)
}

func (e *Element) SetAttr(name, value string) {
	e.Attributes.Set(name, value)
}

func (e *Element) RemoveAttr(name string) {
	e.Attributes.Remove(name)
}

// ID is shorthand for Attr("id").
func (e *Element) ID() string {
	return e.Attr("id")
}

// Classes splits the class attribute on whitespace, or nil if unset.
func (e *Element) Classes() []string {
	class := e.Attr("class")
	if class == "" {
		return nil
	}
	return strings.Fields(class)
}

func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes() {
		if c == class {
			return true
		}
	}
	return false
}
