package treebuilder

import "github.com/go-html5/html5/dom"

// populateSelectedContent implements the <selectedcontent> mirroring
// step: for every <select> under root that contains a <selectedcontent>
// element, that element's children are replaced with a clone of
// whichever <option> is currently selected (the first one with a
// "selected" attribute, or the first option if none is marked).
// Document and FragmentNodes call this once parsing is complete.
func (tb *TreeBuilder) populateSelectedContent(root dom.Node) {
	var selects []*dom.Element
	collectByTagName(root, "select", &selects)

	for _, sel := range selects {
		mirror := firstByTagName(sel, "selectedcontent")
		if mirror == nil {
			continue
		}

		var options []*dom.Element
		collectByTagName(sel, "option", &options)
		if len(options) == 0 {
			continue
		}

		chosen := options[0]
		for _, opt := range options {
			if opt.Namespace == dom.NamespaceHTML && opt.HasAttr("selected") {
				chosen = opt
				break
			}
		}

		mirrorChildren(chosen, mirror)
	}
}

// collectByTagName appends every HTML-namespace element named tagName
// reachable from node, descending into template content as well as
// ordinary children.
func collectByTagName(node dom.Node, tagName string, out *[]*dom.Element) {
	if el, ok := node.(*dom.Element); ok {
		if el.Namespace == dom.NamespaceHTML && el.TagName == tagName {
			*out = append(*out, el)
		}
		if el.TemplateContent != nil {
			for _, child := range el.TemplateContent.Children() {
				collectByTagName(child, tagName, out)
			}
		}
	}
	for _, child := range node.Children() {
		collectByTagName(child, tagName, out)
	}
}

// firstByTagName is collectByTagName's single-result counterpart, for
// callers that only care whether a match exists.
func firstByTagName(node dom.Node, tagName string) *dom.Element {
	if el, ok := node.(*dom.Element); ok {
		if el.Namespace == dom.NamespaceHTML && el.TagName == tagName {
			return el
		}
		if el.TemplateContent != nil {
			for _, child := range el.TemplateContent.Children() {
				if found := firstByTagName(child, tagName); found != nil {
					return found
				}
			}
		}
	}
	for _, child := range node.Children() {
		if found := firstByTagName(child, tagName); found != nil {
			return found
		}
	}
	return nil
}

// mirrorChildren replaces target's children with deep clones of
// source's children.
func mirrorChildren(source, target *dom.Element) {
	for _, child := range append([]dom.Node(nil), target.Children()...) {
		target.RemoveChild(child)
	}
	for _, child := range source.Children() {
		target.AppendChild(child.Clone(true))
	}
}
