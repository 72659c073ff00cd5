package dom

// QuirksMode classifies how far a document's DOCTYPE steered it from
// standards-mode rendering rules.
type QuirksMode int

const (
	NoQuirks      QuirksMode = iota // standards mode
	Quirks                          // full quirks mode
	LimitedQuirks                   // "almost standards" mode
)

// DocumentType is the parsed form of a DOCTYPE declaration.
type DocumentType struct {
	up Node

	Name     string
	PublicID string
	SystemID string

	// ForceQuirks records whether the source token set the force-quirks
	// flag, independent of whatever quirks mode the document settles on.
	ForceQuirks bool
}

// NewDocumentType builds a standalone DOCTYPE node from its parsed parts.
func NewDocumentType(name, publicID, systemID string, forceQuirks bool) *DocumentType {
	return &DocumentType{
		Name:        name,
		PublicID:    publicID,
		SystemID:    systemID,
		ForceQuirks: forceQuirks,
	}
}

func (dt *DocumentType) Type() NodeType { return DoctypeNodeType }

func (dt *DocumentType) Parent() Node { return dt.up }

func (dt *DocumentType) SetParent(parent Node) { dt.up = parent }

// A DOCTYPE node never has children.

func (dt *DocumentType) Children() []Node { return nil }

func (dt *DocumentType) AppendChild(_ Node) {}

func (dt *DocumentType) InsertBefore(_, _ Node) {}

func (dt *DocumentType) RemoveChild(_ Node) {}

func (dt *DocumentType) ReplaceChild(_, _ Node) Node { return nil }

func (dt *DocumentType) HasChildNodes() bool { return false }

func (dt *DocumentType) Clone(_ bool) Node {
	return &DocumentType{
		Name:        dt.Name,
		PublicID:    dt.PublicID,
		SystemID:    dt.SystemID,
		ForceQuirks: dt.ForceQuirks,
	}
}

// Document is the root of a parsed tree: at most one element child (the
// <html> root) plus an optional Doctype.
type Document struct {
	nodeBase

	Doctype    *DocumentType
	QuirksMode QuirksMode
}

// NewDocument allocates an empty document with no root element yet.
func NewDocument() *Document {
	d := &Document{}
	d.nodeBase.init(d)
	return d
}

func (d *Document) Type() NodeType { return DocumentNodeType }

// AppendChild always reparents child to the document itself, since a
// document's children never belong to anything else.
func (d *Document) AppendChild(child Node) {
	child.SetParent(d)
	d.kids = append(d.kids, child)
}

func (d *Document) Clone(deep bool) Node {
	clone := &Document{QuirksMode: d.QuirksMode}
	clone.nodeBase.init(clone)

	if d.Doctype != nil {
		clone.Doctype = d.Doctype.Clone(false).(*DocumentType)
	}

	if deep {
		for _, child := range d.kids {
			clone.AppendChild(child.Clone(true))
		}
	}

	return clone
}

// DocumentElement returns the document's single element child, the <html>
// root, or nil if the tree has none yet.
func (d *Document) DocumentElement() *Element {
	for _, child := range d.kids {
		if elem, ok := child.(*Element); ok {
			return elem
		}
	}
	return nil
}

// Head walks down from the document element to locate <head>.
func (d *Document) Head() *Element {
	return d.documentChildElement("head")
}

// Body walks down from the document element to locate <body>.
func (d *Document) Body() *Element {
	return d.documentChildElement("body")
}

func (d *Document) documentChildElement(tagName string) *Element {
	html := d.DocumentElement()
	if html == nil {
		return nil
	}
	for _, child := range html.Children() {
		if elem, ok := child.(*Element); ok && elem.TagName == tagName {
			return elem
		}
	}
	return nil
}

// Title returns the concatenated text content of <title>, or "" if the
// document has none.
func (d *Document) Title() string {
	head := d.Head()
	if head == nil {
		return ""
	}
	for _, child := range head.Children() {
		if elem, ok := child.(*Element); ok && elem.TagName == "title" {
			return elem.Text()
		}
	}
	return ""
}

// Query runs a CSS selector against the whole document, rooted at its
// document element.
func (d *Document) Query(selector string) ([]*Element, error) {
	root := d.DocumentElement()
	if root == nil {
		return nil, nil
	}
	return root.Query(selector)
}

// QueryFirst is Query truncated to its first match.
func (d *Document) QueryFirst(selector string) (*Element, error) {
	root := d.DocumentElement()
	if root == nil {
		return nil, nil
	}
	return root.QueryFirst(selector)
}

// DocumentFragment is an unattached subtree, used for parsed <template>
// contents and for fragment-parsing entry points.
type DocumentFragment struct {
	nodeBase
}

// NewDocumentFragment allocates an empty fragment.
func NewDocumentFragment() *DocumentFragment {
	df := &DocumentFragment{}
	df.nodeBase.init(df)
	return df
}

// Fragments report DocumentNodeType since the DOM spec has no dedicated
// constant for them in this model.
func (df *DocumentFragment) Type() NodeType { return DocumentNodeType }

func (df *DocumentFragment) AppendChild(child Node) {
	child.SetParent(df)
	df.kids = append(df.kids, child)
}

func (df *DocumentFragment) Clone(deep bool) Node {
	clone := &DocumentFragment{}
	clone.nodeBase.init(clone)

	if deep {
		for _, child := range df.kids {
			clone.AppendChild(child.Clone(true))
		}
	}

	return clone
}
