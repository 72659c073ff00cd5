package tokenizer

// Options controls tokenizer behavior that sits outside the spec's
// state machine proper: BOM handling and the html5lib-style XML
// coercions some conformance fixtures expect.
type Options struct {
	// DiscardBOM strips a leading U+FEFF from the input before
	// tokenization begins.
	DiscardBOM bool

	// XMLCoercion applies a handful of output adjustments XML-derived
	// test suites rely on: U+000C FORM FEED is rendered as a space in
	// character tokens, disallowed characters become U+FFFD, and "--"
	// inside comment text is split to "- -".
	XMLCoercion bool
}

// tokenizerDefaults is what New (as opposed to NewWithOptions) builds
// a Tokenizer with.
func tokenizerDefaults() Options {
	return Options{DiscardBOM: true}
}
