// Package selector implements CSS selector parsing and DOM matching
// against the dom package's Element tree.
package selector

import (
	"github.com/go-html5/html5/dom"
)

func init() {
	dom.SetSelectorMatch(Match)
	dom.SetSelectorMatchFirst(MatchFirst)
}

// Selector is a compiled CSS selector, ready to test against elements.
type Selector interface {
	Match(element *dom.Element) bool
	String() string
}

// compiledSelector pairs a parsed AST with the source text it came
// from, so String() can echo the selector back without re-rendering it.
type compiledSelector struct {
	ast    selectorAST
	source string
}

func (s compiledSelector) Match(element *dom.Element) bool {
	return matchAST(element, s.ast)
}

func (s compiledSelector) String() string {
	return s.source
}

// Parse compiles a CSS selector string into a Selector.
func Parse(selector string) (Selector, error) {
	toks, err := newTokenizer(selector).tokenize()
	if err != nil {
		return nil, err
	}
	ast, err := newParser(toks, selector).parse()
	if err != nil {
		return nil, err
	}
	return compiledSelector{ast: ast, source: selector}, nil
}

// Match returns every element in root's subtree (root included) that
// the selector matches, in document order.
func Match(root *dom.Element, selector string) ([]*dom.Element, error) {
	sel, err := Parse(selector)
	if err != nil {
		return nil, err
	}

	var matches []*dom.Element
	walkMatching(root, sel, &matches)
	return matches, nil
}

// MatchFirst returns the first element in document order that the
// selector matches, or nil if none do.
func MatchFirst(root *dom.Element, selector string) (*dom.Element, error) {
	sel, err := Parse(selector)
	if err != nil {
		return nil, err
	}

	return firstMatch(root, sel), nil
}

func walkMatching(elem *dom.Element, sel Selector, matches *[]*dom.Element) {
	if sel.Match(elem) {
		*matches = append(*matches, elem)
	}
	for _, child := range elem.Children() {
		if childElem, ok := child.(*dom.Element); ok {
			walkMatching(childElem, sel, matches)
		}
	}
}

func firstMatch(elem *dom.Element, sel Selector) *dom.Element {
	if sel.Match(elem) {
		return elem
	}
	for _, child := range elem.Children() {
		if childElem, ok := child.(*dom.Element); ok {
			if found := firstMatch(childElem, sel); found != nil {
				return found
			}
		}
	}
	return nil
}
