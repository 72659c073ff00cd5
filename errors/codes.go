package errors

// Parse error codes, verbatim from the WHATWG HTML5 tokenization and
// tree construction algorithms.
// https://html.spec.whatwg.org/multipage/parsing.html#parse-errors
const (
	AbruptClosingOfEmptyComment                               = "abrupt-closing-of-empty-comment"
	AbruptDoctypePublicIdentifier                             = "abrupt-doctype-public-identifier"
	AbruptDoctypeSystemIdentifier                             = "abrupt-doctype-system-identifier"
	AbsenceOfDigitsInNumericCharReference                     = "absence-of-digits-in-numeric-character-reference"
	CDATAInHTMLContent                                        = "cdata-in-html-content"
	CharacterReferenceOutsideUnicodeRange                     = "character-reference-outside-unicode-range"
	ControlCharacterInInputStream                             = "control-character-in-input-stream"
	ControlCharacterReference                                 = "control-character-reference"
	DuplicateAttribute                                        = "duplicate-attribute"
	EndTagWithAttributes                                      = "end-tag-with-attributes"
	EndTagWithTrailingSolidus                                 = "end-tag-with-trailing-solidus"
	EOFBeforeTagName                                          = "eof-before-tag-name"
	EOFInCDATA                                                = "eof-in-cdata"
	EOFInComment                                              = "eof-in-comment"
	EOFInDoctype                                              = "eof-in-doctype"
	EOFInScriptHTMLCommentLikeText                            = "eof-in-script-html-comment-like-text"
	EOFInTag                                                  = "eof-in-tag"
	IncorrectlyClosedComment                                  = "incorrectly-closed-comment"
	IncorrectlyOpenedComment                                  = "incorrectly-opened-comment"
	InvalidCharacterSequenceAfterDoctypeName                  = "invalid-character-sequence-after-doctype-name"
	InvalidFirstCharacterOfTagName                            = "invalid-first-character-of-tag-name"
	MissingAttributeValue                                     = "missing-attribute-value"
	MissingDoctypeName                                        = "missing-doctype-name"
	MissingDoctypePublicIdentifier                            = "missing-doctype-public-identifier"
	MissingDoctypeSystemIdentifier                            = "missing-doctype-system-identifier"
	MissingEndTagName                                         = "missing-end-tag-name"
	MissingQuoteBeforeDoctypePublicIdentifier                 = "missing-quote-before-doctype-public-identifier"
	MissingQuoteBeforeDoctypeSystemIdentifier                 = "missing-quote-before-doctype-system-identifier"
	MissingSemicolonAfterCharacterReference                   = "missing-semicolon-after-character-reference"
	MissingWhitespaceAfterDoctypePublicKeyword                = "missing-whitespace-after-doctype-public-keyword"
	MissingWhitespaceAfterDoctypeSystemKeyword                = "missing-whitespace-after-doctype-system-keyword"
	MissingWhitespaceBeforeDoctypeName                        = "missing-whitespace-before-doctype-name"
	MissingWhitespaceBetweenAttributes                        = "missing-whitespace-between-attributes"
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers = "missing-whitespace-between-doctype-public-and-system-identifiers"
	NestedComment                                             = "nested-comment"
	NoncharacterCharacterReference                            = "noncharacter-character-reference"
	NoncharacterInInputStream                                 = "noncharacter-in-input-stream"
	NonVoidHTMLElementStartTagWithTrailingSolidus             = "non-void-html-element-start-tag-with-trailing-solidus"
	NullCharacterReference                                    = "null-character-reference"
	SurrogateCharacterReference                               = "surrogate-character-reference"
	SurrogateInInputStream                                    = "surrogate-in-input-stream"
	UnexpectedCharacterAfterDoctypeSystemIdentifier           = "unexpected-character-after-doctype-system-identifier"
	UnexpectedCharacterInAttributeName                        = "unexpected-character-in-attribute-name"
	UnexpectedCharacterInUnquotedAttributeValue               = "unexpected-character-in-unquoted-attribute-value"
	UnexpectedEqualsSignBeforeAttributeName                   = "unexpected-equals-sign-before-attribute-name"
	UnexpectedNullCharacter                                   = "unexpected-null-character"
	UnexpectedQuestionMarkInsteadOfTagName                    = "unexpected-question-mark-instead-of-tag-name"
	UnexpectedSolidusInTag                                    = "unexpected-solidus-in-tag"
	UnknownNamedCharacterReference                            = "unknown-named-character-reference"

	// Tree construction stage.
	NonSpaceCharacterInTableText = "non-space-character-in-table-text"
	FosterParentedCharacter      = "foster-parented-character"
)

// errorMessages gives each code above a short, human-facing explanation.
// Wording is this parser's own; only the codes themselves are fixed by
// the spec.
var errorMessages = map[string]string{
	AbruptClosingOfEmptyComment:                               "a comment was closed immediately after opening, with no content",
	AbruptDoctypePublicIdentifier:                              "DOCTYPE's public identifier was cut short by a '>'",
	AbruptDoctypeSystemIdentifier:                              "DOCTYPE's system identifier was cut short by a '>'",
	AbsenceOfDigitsInNumericCharReference:                      "a numeric character reference had no digits after '&#'",
	CDATAInHTMLContent:                                         "a CDATA section appeared outside SVG or MathML content",
	CharacterReferenceOutsideUnicodeRange:                      "a numeric character reference pointed past U+10FFFF",
	ControlCharacterInInputStream:                              "a C0 control character appeared in the input outside of whitespace",
	ControlCharacterReference:                                  "a character reference resolved to a control character",
	DuplicateAttribute:                                         "a tag repeated an attribute name already seen on it",
	EndTagWithAttributes:                                       "an end tag carried attributes, which are only meaningful on start tags",
	EndTagWithTrailingSolidus:                                  "an end tag had a stray trailing '/'",
	EOFBeforeTagName:                                           "input ended before a tag name could be read",
	EOFInCDATA:                                                 "input ended inside a CDATA section",
	EOFInComment:                                                "input ended inside a comment",
	EOFInDoctype:                                                "input ended inside a DOCTYPE",
	EOFInScriptHTMLCommentLikeText:                              "input ended inside a script element's comment-like text",
	EOFInTag:                                                    "input ended in the middle of a tag",
	IncorrectlyClosedComment:                                    "a comment's closing sequence was malformed",
	IncorrectlyOpenedComment:                                    "a construct that looked like a comment wasn't opened correctly",
	InvalidCharacterSequenceAfterDoctypeName:                    "unexpected characters followed a DOCTYPE's name",
	InvalidFirstCharacterOfTagName:                              "a tag name started with a character that can't begin one",
	MissingAttributeValue:                                       "an attribute name was followed by '=' but no value",
	MissingDoctypeName:                                          "a DOCTYPE had no name",
	MissingDoctypePublicIdentifier:                              "PUBLIC was given with no identifier string",
	MissingDoctypeSystemIdentifier:                              "SYSTEM was given with no identifier string",
	MissingEndTagName:                                           "'</>' appeared with no tag name",
	MissingQuoteBeforeDoctypePublicIdentifier:                   "a DOCTYPE public identifier wasn't opened with a quote",
	MissingQuoteBeforeDoctypeSystemIdentifier:                   "a DOCTYPE system identifier wasn't opened with a quote",
	MissingSemicolonAfterCharacterReference:                     "a character reference wasn't terminated with ';'",
	MissingWhitespaceAfterDoctypePublicKeyword:                  "no whitespace separated PUBLIC from what follows",
	MissingWhitespaceAfterDoctypeSystemKeyword:                  "no whitespace separated SYSTEM from what follows",
	MissingWhitespaceBeforeDoctypeName:                          "no whitespace separated DOCTYPE from its name",
	MissingWhitespaceBetweenAttributes:                          "two attributes ran together with no whitespace between them",
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers:   "no whitespace separated a DOCTYPE's public and system identifiers",
	NestedComment:                                               "a '<!--' appeared inside an already-open comment",
	NoncharacterCharacterReference:                               "a character reference resolved to a Unicode noncharacter",
	NoncharacterInInputStream:                                    "a Unicode noncharacter appeared directly in the input",
	NonVoidHTMLElementStartTagWithTrailingSolidus:                "a non-void element's start tag had an unnecessary trailing '/'",
	NullCharacterReference:                                       "a character reference resolved to U+0000",
	SurrogateCharacterReference:                                  "a character reference resolved to a UTF-16 surrogate code point",
	SurrogateInInputStream:                                       "a surrogate code point appeared directly in the input",
	UnexpectedCharacterAfterDoctypeSystemIdentifier:              "extra characters followed a DOCTYPE's system identifier",
	UnexpectedCharacterInAttributeName:                           "an attribute name contained a character that isn't allowed there",
	UnexpectedCharacterInUnquotedAttributeValue:                  "an unquoted attribute value contained a character that must be quoted",
	UnexpectedEqualsSignBeforeAttributeName:                      "a stray '=' appeared before an attribute name began",
	UnexpectedNullCharacter:                                      "a U+0000 NULL byte appeared in the input",
	UnexpectedQuestionMarkInsteadOfTagName:                       "'<?' was used where a tag name was expected",
	UnexpectedSolidusInTag:                                       "a '/' appeared somewhere other than a void/self-closing position",
	UnknownNamedCharacterReference:                               "a named character reference didn't match any known entity name",

	NonSpaceCharacterInTableText: "non-whitespace text appeared directly inside a table, outside any cell",
	FosterParentedCharacter:      "text was relocated out of a table via foster parenting",
}

// Message looks up the human-readable explanation for a parse-error
// code, or "Unknown error" if code isn't one this package defines.
func Message(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "Unknown error"
}
