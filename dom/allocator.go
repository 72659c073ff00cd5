package dom

import "strings"

const (
	elementChunkSize   = 128
	textChunkSize      = 256
	commentChunkSize   = 64
	doctypeChunkSize   = 32
	documentChunkSize  = 8
	fragmentChunkSize  = 64
	attributeChunkSize = 128
)

// arena hands out pointers into fixed-size chunks of T, amortizing the
// allocator over many nodes instead of allocating each one individually.
// Pointers stay valid for the arena's lifetime; nothing is ever freed
// early, since parse trees are typically kept whole or discarded whole.
type arena[T any] struct {
	chunkSize int
	block     []T
	at        int
}

func (a *arena[T]) next() *T {
	if a.at >= len(a.block) {
		a.block = make([]T, a.chunkSize)
		a.at = 0
	}
	v := &a.block[a.at]
	a.at++
	return v
}

// NodeAllocator pools every concrete node and attribute-set type the
// tree builder produces, so a full parse needs only a handful of large
// allocations instead of one per node.
type NodeAllocator struct {
	elements   arena[Element]
	texts      arena[Text]
	comments   arena[Comment]
	doctypes   arena[DocumentType]
	documents  arena[Document]
	fragments  arena[DocumentFragment]
	attributes arena[Attributes]
}

// NewNodeAllocator builds an allocator with its pools empty; the first
// request for each node kind lazily allocates its first chunk.
func NewNodeAllocator() *NodeAllocator {
	return &NodeAllocator{
		elements:   arena[Element]{chunkSize: elementChunkSize},
		texts:      arena[Text]{chunkSize: textChunkSize},
		comments:   arena[Comment]{chunkSize: commentChunkSize},
		doctypes:   arena[DocumentType]{chunkSize: doctypeChunkSize},
		documents:  arena[Document]{chunkSize: documentChunkSize},
		fragments:  arena[DocumentFragment]{chunkSize: fragmentChunkSize},
		attributes: arena[Attributes]{chunkSize: attributeChunkSize},
	}
}

// NewDocument hands out a pooled, zeroed Document.
func (a *NodeAllocator) NewDocument() *Document {
	d := a.documents.next()
	d.nodeBase = nodeBase{}
	d.Doctype = nil
	d.QuirksMode = NoQuirks
	d.init(d)
	return d
}

// NewDocumentFragment hands out a pooled, zeroed DocumentFragment.
func (a *NodeAllocator) NewDocumentFragment() *DocumentFragment {
	df := a.fragments.next()
	df.nodeBase = nodeBase{}
	df.init(df)
	return df
}

// NewElement hands out a pooled HTML-namespace element, tag name
// lowercased.
func (a *NodeAllocator) NewElement(tagName string) *Element {
	e := a.elements.next()
	e.nodeBase = nodeBase{}
	e.TagName = strings.ToLower(tagName)
	e.Namespace = NamespaceHTML
	e.Attributes = a.newAttributes()
	e.TemplateContent = nil
	e.init(e)
	return e
}

// NewElementNS hands out a pooled element in an arbitrary namespace,
// tag name preserved verbatim.
func (a *NodeAllocator) NewElementNS(tagName, namespace string) *Element {
	e := a.elements.next()
	e.nodeBase = nodeBase{}
	e.TagName = tagName
	e.Namespace = namespace
	e.Attributes = a.newAttributes()
	e.TemplateContent = nil
	e.init(e)
	return e
}

// NewText hands out a pooled, zeroed text node.
func (a *NodeAllocator) NewText(data string) *Text {
	t := a.texts.next()
	t.up = nil
	t.Data = data
	return t
}

// NewComment hands out a pooled, zeroed comment node.
func (a *NodeAllocator) NewComment(data string) *Comment {
	c := a.comments.next()
	c.up = nil
	c.Data = data
	return c
}

// NewDocumentType hands out a pooled DOCTYPE node.
func (a *NodeAllocator) NewDocumentType(name, publicID, systemID string, forceQuirks bool) *DocumentType {
	dt := a.doctypes.next()
	dt.up = nil
	dt.Name = name
	dt.PublicID = publicID
	dt.SystemID = systemID
	dt.ForceQuirks = forceQuirks
	return dt
}

func (a *NodeAllocator) newAttributes() *Attributes {
	attr := a.attributes.next()
	attr.list = attr.list[:0]
	return attr
}
