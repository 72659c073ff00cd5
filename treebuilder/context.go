// Package treebuilder implements the WHATWG HTML5 tree construction
// stage: it consumes tokens from the tokenizer and builds a dom.Node
// tree, applying the insertion-mode state machine, the adoption
// agency algorithm, and foreign-content handling along the way.
package treebuilder

// FragmentContext names the element an innerHTML-style fragment parse
// is running "inside of" — it affects which insertion mode parsing
// starts in and which elements are treated as special.
type FragmentContext struct {
	TagName   string
	Namespace string
}
