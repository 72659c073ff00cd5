package constants

// Per-byte classification flags, packed into one table so a single
// array lookup answers any of the IsXxx queries below instead of
// probing several parallel bool arrays.
type charFlag uint8

const (
	flagWhitespace charFlag = 1 << iota
	flagUpper
	flagLower
)

// charFlags classifies the first 256 code points; anything at or above
// 256 falls outside HTML5's ASCII-only classification rules and is
// treated as none of the above by every query function here.
var charFlags [256]charFlag

func init() {
	// HTML5 whitespace: TAB, LF, FF, SPACE. https://html.spec.whatwg.org/multipage/parsing.html#parsing-html-documents
	for _, c := range []byte{'\t', '\n', '\f', ' '} {
		charFlags[c] |= flagWhitespace
	}
	for c := byte('A'); c <= 'Z'; c++ {
		charFlags[c] |= flagUpper
	}
	for c := byte('a'); c <= 'z'; c++ {
		charFlags[c] |= flagLower
	}
}

func flagsOf(c rune) charFlag {
	if c < 0 || c >= 256 {
		return 0
	}
	return charFlags[c]
}

// IsWhitespace reports whether c is HTML5 whitespace (tab, line feed,
// form feed, or space). Note U+000D CR is not included: the input
// stream normalizes CR and CRLF to LF before tokenization sees them.
func IsWhitespace(c rune) bool {
	return flagsOf(c)&flagWhitespace != 0
}

// IsASCIIUpper reports whether c is in the range A-Z.
func IsASCIIUpper(c rune) bool {
	return flagsOf(c)&flagUpper != 0
}

// IsASCIILower reports whether c is in the range a-z.
func IsASCIILower(c rune) bool {
	return flagsOf(c)&flagLower != 0
}

// IsASCIIAlpha reports whether c is an ASCII letter, upper or lower.
func IsASCIIAlpha(c rune) bool {
	return flagsOf(c)&(flagUpper|flagLower) != 0
}

// IsASCIIAlphaNum reports whether c is an ASCII letter or digit.
func IsASCIIAlphaNum(c rune) bool {
	return IsASCIIAlpha(c) || (c >= '0' && c <= '9')
}

// ToLower lowercases an ASCII uppercase letter; any other rune,
// including non-ASCII letters, passes through unchanged. This is the
// HTML5 "ASCII lowercase" operation, not Unicode case folding.
func ToLower(c rune) rune {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
