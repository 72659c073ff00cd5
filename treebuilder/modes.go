package treebuilder

// InsertionMode is the tree builder's current state: it picks which
// token-handling rules apply next, and most of mode_handlers.go is
// organized as one function per mode.
type InsertionMode int

// The insertion modes defined by §13.2.4.1 of the HTML5 spec, in the
// order they're introduced there.
const (
	Initial InsertionMode = iota
	BeforeHTML
	BeforeHead
	InHead
	InHeadNoscript
	AfterHead
	InBody
	Text
	InTable
	InTableText
	InCaption
	InColumnGroup
	InTableBody
	InRow
	InCell
	InSelect
	InSelectInTable
	InTemplate
	AfterBody
	InFrameset
	AfterFrameset
	AfterAfterBody
	AfterAfterFrameset
)

// String renders the mode the way the spec names it, for diagnostics.
func (m InsertionMode) String() string {
	names := [...]string{
		"initial",
		"before html",
		"before head",
		"in head",
		"in head noscript",
		"after head",
		"in body",
		"text",
		"in table",
		"in table text",
		"in caption",
		"in column group",
		"in table body",
		"in row",
		"in cell",
		"in select",
		"in select in table",
		"in template",
		"after body",
		"in frameset",
		"after frameset",
		"after after body",
		"after after frameset",
	}
	if m >= 0 && int(m) < len(names) {
		return names[m]
	}
	return "unknown"
}
