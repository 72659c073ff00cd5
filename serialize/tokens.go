package serialize

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors returned by SerializeTokens/SerializeTokensWithOptions
// when a token array doesn't match the html5lib tree-construction test
// format ["TokenType", ...fields].
var (
	ErrUnknownTokenType      = errors.New("unknown token type")
	ErrInvalidTokenFormat    = errors.New("invalid token format")
	ErrStartTagMissingFields = errors.New("startTag needs at least 3 elements")
	ErrEndTagMissingFields   = errors.New("endTag needs at least 3 elements")
	ErrEmptyTagMissingFields = errors.New("emptyTag needs at least 2 elements")
	ErrCharactersMissing     = errors.New("characters token needs at least 2 elements")
	ErrCommentMissing        = errors.New("comment token needs at least 2 elements")
	ErrDoctypeMissing        = errors.New("doctype token needs at least 2 elements")
)

// SerializeTokenOptions mirrors the knobs html5lib's own serializer
// exposes, so conformance-test fixtures that set them can be replayed
// directly.
type SerializeTokenOptions struct {
	// QuoteChar picks the attribute quote character; 0 means double quote.
	QuoteChar rune
	// UseTrailingSolidus writes void elements as e.g. "<img />".
	UseTrailingSolidus bool
	// MinimizeBooleanAttributes omits "=value" when value is empty or
	// equals the attribute name (e.g. disabled="disabled" -> disabled).
	MinimizeBooleanAttributes bool
	// EscapeLtInAttrs escapes '<' inside double-quoted attribute values.
	EscapeLtInAttrs bool
	// EscapeRcdata escapes '&'/'<'/'>' inside raw-text elements
	// (script/style/...) instead of writing their content verbatim.
	EscapeRcdata bool
	// StripWhitespace collapses whitespace runs in Characters tokens
	// outside raw-text and preformatted (pre/textarea) content.
	StripWhitespace bool
	// OmitOptionalTags drops start/end tags the HTML5 spec allows
	// omitting (e.g. </p> before a following block element).
	OmitOptionalTags bool
	// InjectMetaCharset adds a <meta charset> (or updates an existing
	// Content-Type meta) inside <head> using Encoding.
	InjectMetaCharset bool
	// Encoding is the charset name used by InjectMetaCharset.
	Encoding string
}

func DefaultSerializeTokenOptions() SerializeTokenOptions {
	return SerializeTokenOptions{
		QuoteChar:                 '"',
		MinimizeBooleanAttributes: true,
		OmitOptionalTags:          true,
	}
}

// SerializeTokens renders an html5lib-format token stream (one JSON array
// per token, e.g. ["StartTag", ns, name, attrs]) back to HTML text, using
// DefaultSerializeTokenOptions.
func SerializeTokens(tokens []json.RawMessage) (string, error) {
	opts := DefaultSerializeTokenOptions()
	return SerializeTokensWithOptions(tokens, opts)
}

// SerializeTokensWithOptions is SerializeTokens with explicit options. It
// tracks three pieces of running state across the stream: whether it's
// currently inside <head> (for charset injection), a depth counter for
// raw-text elements (script/style/...), and one for preformatted elements
// (pre/textarea), since both change how Characters tokens get escaped.
func SerializeTokensWithOptions(tokens []json.RawMessage, opts SerializeTokenOptions) (string, error) {
	var sb strings.Builder
	var rawTextDepth int
	var preformattedDepth int
	var inHead bool
	var headHasCharsetMeta bool
	var injectedMeta bool

	for i, raw := range tokens {
		if inHead && opts.InjectMetaCharset && opts.Encoding != "" && !headHasCharsetMeta && !injectedMeta {
			typ, tag := getTokenInfo(raw)
			if typ == "EndTag" && tag == "head" {
				serializeInjectedMeta(&sb, opts)
				injectedMeta = true
			}
		}

		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidTokenFormat, err)
		}
		if len(arr) == 0 {
			continue
		}

		var tokenType string
		if err := json.Unmarshal(arr[0], &tokenType); err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidTokenFormat, err)
		}

		var err error
		switch tokenType {
		case "StartTag":
			err = serializeStartTagToken(&sb, arr, opts, tokens, i)
			if err == nil {
				tagName := tokenTagName(tokenType, arr)
				if tagName == "head" {
					inHead = true
					injectedMeta = false
					if opts.InjectMetaCharset && opts.Encoding != "" {
						headHasCharsetMeta = hasCharsetMetaAhead(tokens, i)
						if !headHasCharsetMeta {
							serializeInjectedMeta(&sb, opts)
							injectedMeta = true
						}
					}
				}
				if tagName == "pre" || tagName == "textarea" {
					preformattedDepth++
				}
				if isRawTextElement(tagName) {
					rawTextDepth++
				}
			}
		case "EndTag":
			if inHead && opts.InjectMetaCharset && opts.Encoding != "" && !headHasCharsetMeta && !injectedMeta {
				tagName := tokenTagName(tokenType, arr)
				if tagName == "head" {
					serializeInjectedMeta(&sb, opts)
					injectedMeta = true
				}
			}
			err = serializeEndTagToken(&sb, arr, opts, tokens, i)
			if err == nil {
				tagName := tokenTagName(tokenType, arr)
				if tagName == "head" {
					inHead = false
					headHasCharsetMeta = false
					injectedMeta = false
				}
				if tagName == "pre" || tagName == "textarea" {
					if preformattedDepth > 0 {
						preformattedDepth--
					}
				}
				if isRawTextElement(tagName) && rawTextDepth > 0 {
					rawTextDepth--
				}
			}
		case "EmptyTag":
			err = serializeEmptyTagToken(&sb, arr, opts)
		case "Characters":
			inRawText := rawTextDepth > 0
			inPreformatted := preformattedDepth > 0
			err = serializeCharactersToken(&sb, arr, inRawText, inPreformatted, opts)
		case "Comment":
			err = serializeCommentToken(&sb, arr)
		case "Doctype":
			err = serializeDoctypeToken(&sb, arr)
		default:
			return "", fmt.Errorf("%w: %s", ErrUnknownTokenType, tokenType)
		}
		if err != nil {
			return "", err
		}
	}

	return sb.String(), nil
}

// serializeStartTagToken handles ["StartTag", namespace, tagName, attrs]
func serializeStartTagToken(sb *strings.Builder, arr []json.RawMessage, opts SerializeTokenOptions, tokens []json.RawMessage, idx int) error {
	if len(arr) < 3 {
		return ErrStartTagMissingFields
	}

	var tagName string
	if err := json.Unmarshal(arr[2], &tagName); err != nil {
		return fmt.Errorf("invalid tag name: %w", err)
	}

	if opts.OmitOptionalTags && shouldOmitStartTag(tagName, arr, tokens, idx) {
		return nil
	}

	sb.WriteByte('<')
	sb.WriteString(tagName)

	if len(arr) > 3 {
		if err := serializeTokenAttrs(sb, arr[3], opts, tagName); err != nil {
			return err
		}
	}

	if opts.UseTrailingSolidus && isVoidElement(tagName) {
		sb.WriteString(" /")
	}

	sb.WriteByte('>')

	return nil
}

// serializeEndTagToken handles ["EndTag", namespace, tagName]
func serializeEndTagToken(sb *strings.Builder, arr []json.RawMessage, opts SerializeTokenOptions, tokens []json.RawMessage, idx int) error {
	if len(arr) < 3 {
		return ErrEndTagMissingFields
	}

	var tagName string
	if err := json.Unmarshal(arr[2], &tagName); err != nil {
		return fmt.Errorf("invalid tag name: %w", err)
	}

	if opts.OmitOptionalTags && shouldOmitEndTag(tagName, tokens, idx) {
		return nil
	}

	sb.WriteString("</")
	sb.WriteString(tagName)
	sb.WriteByte('>')

	return nil
}

// serializeEmptyTagToken handles ["EmptyTag", tagName, attrs]
func serializeEmptyTagToken(sb *strings.Builder, arr []json.RawMessage, opts SerializeTokenOptions) error {
	if len(arr) < 2 {
		return ErrEmptyTagMissingFields
	}

	var tagName string
	if err := json.Unmarshal(arr[1], &tagName); err != nil {
		return fmt.Errorf("invalid tag name: %w", err)
	}

	sb.WriteByte('<')
	sb.WriteString(tagName)

	if len(arr) > 2 {
		if err := serializeTokenAttrs(sb, arr[2], opts, tagName); err != nil {
			return err
		}
	}

	if opts.UseTrailingSolidus {
		sb.WriteString(" /")
	}

	sb.WriteByte('>')
	return nil
}

// serializeTokenAttrs writes a tag's attribute list; html5lib fixtures
// encode attrs as either an array of {namespace,name,value} objects or a
// flat name->value object, so parseTokenAttrs accepts both.
func serializeTokenAttrs(sb *strings.Builder, raw json.RawMessage, opts SerializeTokenOptions, tagName string) error {
	attrs, err := parseTokenAttrs(raw)
	if err != nil {
		return err
	}

	if opts.InjectMetaCharset && opts.Encoding != "" && tagName == "meta" {
		attrs = normalizeMetaCharsetAttrs(attrs, opts.Encoding)
	}

	if len(attrs) == 0 {
		return nil
	}

	sortTokenAttrs(attrs)
	for _, attr := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(attr.Name)
		serializeTokenAttrValue(sb, attr.Name, attr.Value, opts)
	}

	return nil
}

// serializeTokenAttrValue picks a quoting strategy the way html5lib's own
// serializer does: unquoted when the value has no character requiring
// quotes, single-quoted when the value contains a " but no ', and
// double-quoted (escaping ") otherwise — unless QuoteChar pins single
// quotes regardless.
func serializeTokenAttrValue(sb *strings.Builder, name, value string, opts SerializeTokenOptions) {
	if opts.MinimizeBooleanAttributes && (value == "" || value == name) {
		return
	}

	if value == "" {
		sb.WriteString("=\"\"")
		return
	}

	hasDoubleQuote := strings.ContainsRune(value, '"')
	hasSingleQuote := strings.ContainsRune(value, '\'')
	needsQuoting := needsTokenAttrQuoting(value)

	useQuoteChar := opts.QuoteChar
	if useQuoteChar == 0 {
		useQuoteChar = '"'
	}

	if useQuoteChar == '\'' {
		sb.WriteString("='")
		for _, r := range value {
			switch r {
			case '\'':
				sb.WriteString("&#39;")
			case '&':
				sb.WriteString("&amp;")
			default:
				sb.WriteRune(r)
			}
		}
		sb.WriteByte('\'')
		return
	}

	switch {
	case !needsQuoting:
		sb.WriteByte('=')
		sb.WriteString(value)
	case hasDoubleQuote && !hasSingleQuote:
		sb.WriteString("='")
		for _, r := range value {
			if r == '&' {
				sb.WriteString("&amp;")
			} else {
				sb.WriteRune(r)
			}
		}
		sb.WriteByte('\'')
	default:
		sb.WriteString("=\"")
		for _, r := range value {
			switch r {
			case '"':
				sb.WriteString("&quot;")
			case '&':
				sb.WriteString("&amp;")
			case '<':
				if opts.EscapeLtInAttrs {
					sb.WriteString("&lt;")
				} else {
					sb.WriteRune(r)
				}
			default:
				sb.WriteRune(r)
			}
		}
		sb.WriteByte('"')
	}
}

// needsTokenAttrQuoting returns true if the attribute value needs quoting.
func needsTokenAttrQuoting(value string) bool {
	for _, r := range value {
		switch r {
		case ' ', '\t', '\n', '\f', '\r', '"', '\'', '=', '>', '`':
			return true
		}
	}
	return false
}

// serializeCharactersToken handles ["Characters", data]
func serializeCharactersToken(sb *strings.Builder, arr []json.RawMessage, inRawText bool, inPreformatted bool, opts SerializeTokenOptions) error {
	if len(arr) < 2 {
		return ErrCharactersMissing
	}

	var data string
	if err := json.Unmarshal(arr[1], &data); err != nil {
		return fmt.Errorf("invalid character data: %w", err)
	}

	if opts.StripWhitespace && !inRawText && !inPreformatted {
		data = collapseTokenWhitespace(data)
	}

	if inRawText && !opts.EscapeRcdata {
		sb.WriteString(data)
	} else {
		for _, r := range data {
			switch r {
			case '&':
				sb.WriteString("&amp;")
			case '<':
				sb.WriteString("&lt;")
			case '>':
				sb.WriteString("&gt;")
			default:
				sb.WriteRune(r)
			}
		}
	}
	return nil
}

// serializeCommentToken handles ["Comment", data]
func serializeCommentToken(sb *strings.Builder, arr []json.RawMessage) error {
	if len(arr) < 2 {
		return ErrCommentMissing
	}

	var data string
	if err := json.Unmarshal(arr[1], &data); err != nil {
		return fmt.Errorf("invalid comment data: %w", err)
	}

	sb.WriteString("<!--")
	sb.WriteString(data)
	sb.WriteString("-->")
	return nil
}

// serializeDoctypeToken handles ["Doctype", name, publicId?, systemId?]
func serializeDoctypeToken(sb *strings.Builder, arr []json.RawMessage) error {
	if len(arr) < 2 {
		return ErrDoctypeMissing
	}

	var name string
	if err := json.Unmarshal(arr[1], &name); err != nil {
		return fmt.Errorf("invalid doctype name: %w", err)
	}

	sb.WriteString("<!DOCTYPE ")
	sb.WriteString(name)

	// publicID/systemID are optional and may be JSON null rather than
	// absent; a failed unmarshal just means null, not a malformed token.
	var publicID string
	if len(arr) > 2 {
		if err := json.Unmarshal(arr[2], &publicID); err != nil {
			publicID = ""
		}
	}

	var systemID string
	if len(arr) > 3 {
		if err := json.Unmarshal(arr[3], &systemID); err != nil {
			systemID = ""
		}
	}

	if publicID != "" {
		sb.WriteString(" PUBLIC \"")
		sb.WriteString(publicID)
		sb.WriteByte('"')
		if systemID != "" {
			sb.WriteString(" \"")
			sb.WriteString(systemID)
			sb.WriteByte('"')
		}
	} else if systemID != "" {
		sb.WriteString(" SYSTEM \"")
		sb.WriteString(systemID)
		sb.WriteByte('"')
	}

	sb.WriteByte('>')
	return nil
}

// isRawTextElement covers script/style plus the legacy elements HTML5
// still treats as raw text for serialization purposes.
func isRawTextElement(tag string) bool {
	switch tag {
	case "script", "style", "xmp", "iframe", "noembed", "noframes", "plaintext":
		return true
	}
	return false
}

// shouldOmitStartTag implements the subset of the HTML5 "optional tags"
// table (https://html.spec.whatwg.org/multipage/syntax.html#optional-tags)
// that applies to start tags. A tag carrying any attributes is never
// omittable regardless of context.
func shouldOmitStartTag(tagName string, arr []json.RawMessage, tokens []json.RawMessage, idx int) bool {
	nextType, nextTag := getNextTokenInfo(tokens, idx)

	if hasAttributes(arr) {
		return false
	}

	switch tagName {
	case "html":
		// An html element's start tag can be omitted if the first thing inside
		// the html element is not a comment.
		// Also keep if followed by space character (first char is space)
		if nextType == "Comment" {
			return false
		}
		if nextType == "Characters" && startsWithSpace(tokens, idx) {
			return false
		}
		return true
	case "head":
		// A head element's start tag can be omitted if the element is empty,
		// or if the first thing inside the head element is an element.
		return nextType == "StartTag" || nextType == "EmptyTag" || nextType == "EndTag"
	case "body":
		// A body element's start tag can be omitted if the element is empty,
		// or if the first thing inside the body element is not space character
		// or a comment.
		if nextType == "Comment" {
			return false
		}
		if nextType == "Characters" && startsWithSpace(tokens, idx) {
			return false // Don't omit if followed by space character
		}
		return true
	case "colgroup":
		// A colgroup element's start tag can be omitted if the first thing inside
		// the colgroup element is a col element.
		if nextType == "StartTag" || nextType == "EmptyTag" {
			return nextTag == "col"
		}
		return false
	case "tbody":
		// A tbody element's start tag can be omitted if the first thing inside
		// the tbody element is a tr element and the tbody is the first in a table.
		if nextType == "StartTag" && nextTag == "tr" {
			prevType, prevTag := getPrevTokenInfo(tokens, idx)
			return prevType == "StartTag" && prevTag == "table"
		}
		return false
	}
	return false
}

// startsWithSpace reports whether the token right after idx is a Characters
// token whose text begins with HTML whitespace.
func startsWithSpace(tokens []json.RawMessage, idx int) bool {
	if idx+1 >= len(tokens) {
		return false
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(tokens[idx+1], &arr); err != nil || len(arr) < 2 {
		return false
	}

	var data string
	if err := json.Unmarshal(arr[1], &data); err != nil || len(data) == 0 {
		return false
	}

	switch data[0] {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// hasAttributes reports whether a ["StartTag", namespace, tagName, attrs]
// token carries a non-empty attrs field, in either the array or object
// encoding parseTokenAttrs accepts.
func hasAttributes(arr []json.RawMessage) bool {
	if len(arr) <= 3 {
		return false
	}

	var attrArray []interface{}
	if err := json.Unmarshal(arr[3], &attrArray); err == nil && len(attrArray) > 0 {
		return true
	}

	var attrObj map[string]interface{}
	if err := json.Unmarshal(arr[3], &attrObj); err == nil && len(attrObj) > 0 {
		return true
	}

	return false
}

// shouldOmitEndTag is shouldOmitStartTag's counterpart for the end-tag half
// of the optional-tags table.
func shouldOmitEndTag(tagName string, tokens []json.RawMessage, idx int) bool {
	nextType, nextTag := getNextTokenInfo(tokens, idx)

	switch tagName {
	case "html":
		// An html element's end tag can be omitted if the html element is not
		// immediately followed by a comment.
		if nextType == "Comment" {
			return false
		}
		// Also don't omit if followed by space character
		if nextType == "Characters" && startsWithSpace(tokens, idx) {
			return false
		}
		return true
	case "head":
		// A head element's end tag can be omitted if the head element is not
		// immediately followed by space character or a comment.
		if nextType == "Comment" || (nextType == "Characters" && startsWithSpace(tokens, idx)) {
			return false
		}
		return true
	case "body":
		// A body element's end tag can be omitted if the body element is not
		// immediately followed by a comment.
		if nextType == "Comment" || (nextType == "Characters" && startsWithSpace(tokens, idx)) {
			return false
		}
		return true
	case "li":
		// An li element's end tag can be omitted if the li element is
		// immediately followed by another li element or if there is no more
		// content in the parent element.
		return nextType == "" || (nextType == "StartTag" && nextTag == "li") || nextType == "EndTag"
	case "dt":
		// A dt element's end tag can be omitted if the dt element is
		// immediately followed by another dt element or a dd element.
		return nextType == "StartTag" && (nextTag == "dt" || nextTag == "dd")
	case "dd":
		// A dd element's end tag can be omitted if the dd element is
		// immediately followed by another dd element or a dt element, or
		// if there is no more content in the parent element.
		return nextType == "" || (nextType == "StartTag" && (nextTag == "dd" || nextTag == "dt")) || nextType == "EndTag"
	case "p":
		// A p element's end tag can be omitted if the p element is immediately
		// followed by certain elements, or if there is no more content.
		if nextType == "" || nextType == "EndTag" {
			return true
		}
		if nextType == "StartTag" || nextType == "EmptyTag" {
			switch nextTag {
			case "address", "article", "aside", "blockquote", "details", "dialog",
				"dir", "div", "dl", "fieldset", "figcaption", "figure", "footer",
				"form", "h1", "h2", "h3", "h4", "h5", "h6", "header", "hgroup",
				"hr", "main", "menu", "nav", "ol", "p", "pre", "search", "section",
				"table", "ul", "datagrid":
				return true
			}
		}
		return false
	case "optgroup":
		// An optgroup element's end tag can be omitted if the optgroup element
		// is immediately followed by another optgroup element, or if there is
		// no more content in the parent element.
		return nextType == "" || nextType == "EndTag" ||
			(nextType == "StartTag" && nextTag == "optgroup")
	case "option":
		// An option element's end tag can be omitted if the option element is
		// immediately followed by another option element, or an optgroup element,
		// or if there is no more content in the parent element.
		return nextType == "" || nextType == "EndTag" ||
			(nextType == "StartTag" && (nextTag == "option" || nextTag == "optgroup"))
	case "colgroup":
		// A colgroup element's end tag can be omitted if it is not immediately
		// followed by a comment or a space character.
		if nextType == "Comment" || (nextType == "Characters" && startsWithSpace(tokens, idx)) {
			return false
		}
		if nextType == "StartTag" && nextTag == "colgroup" {
			return false
		}
		return true
	case "thead":
		// End tag can be omitted if immediately followed by tbody or tfoot.
		return nextType == "StartTag" && (nextTag == "tbody" || nextTag == "tfoot")
	case "tbody":
		// End tag can be omitted if immediately followed by tbody or tfoot,
		// or if there is no more content.
		return nextType == "" || nextType == "EndTag" ||
			(nextType == "StartTag" && (nextTag == "tbody" || nextTag == "tfoot"))
	case "tfoot":
		// End tag can be omitted if immediately followed by tbody,
		// or if there is no more content.
		return nextType == "" || nextType == "EndTag" ||
			(nextType == "StartTag" && nextTag == "tbody")
	case "tr":
		// End tag can be omitted if immediately followed by another tr,
		// or if there is no more content.
		return nextType == "" || nextType == "EndTag" ||
			(nextType == "StartTag" && nextTag == "tr")
	case "td", "th":
		// End tag can be omitted if immediately followed by td/th,
		// or if there is no more content.
		return nextType == "" || nextType == "EndTag" ||
			(nextType == "StartTag" && (nextTag == "td" || nextTag == "th"))
	}
	return false
}

type tokenAttr struct {
	Name  string
	Value string
}

// parseTokenAttrs decodes a token's attrs field, accepting either the
// array-of-{namespace,name,value} encoding or the flat name->value object
// encoding; an unrecognized shape yields a nil slice rather than an error.
func parseTokenAttrs(raw json.RawMessage) ([]tokenAttr, error) {
	var attrArray []struct {
		Namespace *string `json:"namespace"`
		Name      string  `json:"name"`
		Value     string  `json:"value"`
	}
	if err := json.Unmarshal(raw, &attrArray); err == nil {
		if len(attrArray) == 0 {
			return nil, nil
		}
		attrs := make([]tokenAttr, 0, len(attrArray))
		for _, attr := range attrArray {
			attrs = append(attrs, tokenAttr{Name: attr.Name, Value: attr.Value})
		}
		return attrs, nil
	}

	var attrObj map[string]string
	if err := json.Unmarshal(raw, &attrObj); err == nil {
		if len(attrObj) == 0 {
			return nil, nil
		}
		attrs := make([]tokenAttr, 0, len(attrObj))
		for name, value := range attrObj {
			attrs = append(attrs, tokenAttr{Name: name, Value: value})
		}
		return attrs, nil
	}

	return nil, nil
}

// sortTokenAttrs orders attrs by name so serialized output is deterministic
// regardless of the source encoding's attribute order.
func sortTokenAttrs(attrs []tokenAttr) {
	if len(attrs) < 2 {
		return
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].Name < attrs[j].Name
	})
}

// normalizeMetaCharsetAttrs rewrites a meta element's attrs in place so the
// declared charset matches encoding: a charset="..." attribute gets its
// value replaced directly, while an http-equiv="content-type" meta gets its
// content attribute's charset parameter rewritten (or added).
func normalizeMetaCharsetAttrs(attrs []tokenAttr, encoding string) []tokenAttr {
	if len(attrs) == 0 {
		return attrs
	}
	var hasHTTP bool
	var httpIdx int
	var hasContent bool
	var contentIdx int
	for i, attr := range attrs {
		if strings.EqualFold(attr.Name, "charset") {
			attrs[i].Value = encoding
			return attrs
		}
		if strings.EqualFold(attr.Name, "http-equiv") {
			hasHTTP = true
			httpIdx = i
		}
		if strings.EqualFold(attr.Name, "content") {
			hasContent = true
			contentIdx = i
		}
	}
	if hasHTTP && strings.EqualFold(attrs[httpIdx].Value, "content-type") {
		content := "text/html; charset=" + encoding
		if hasContent {
			attrs[contentIdx].Value = content
		} else {
			attrs = append(attrs, tokenAttr{Name: "content", Value: content})
		}
	}
	return attrs
}

// hasCharsetMetaAhead scans the remaining head contents after idx for a meta
// tag that already declares a charset, so SerializeTokensWithOptions knows
// whether it still needs to inject one of its own.
func hasCharsetMetaAhead(tokens []json.RawMessage, idx int) bool {
	for i := idx + 1; i < len(tokens); i++ {
		typ, tag := getTokenInfo(tokens[i])
		if typ == "" {
			return false
		}
		if typ == "EndTag" && tag == "head" {
			return false
		}
		if typ == "StartTag" || typ == "EmptyTag" {
			if tag != "meta" {
				continue
			}
			var arr []json.RawMessage
			if err := json.Unmarshal(tokens[i], &arr); err != nil {
				continue
			}
			var rawAttrs json.RawMessage
			if typ == "StartTag" {
				if len(arr) > 3 {
					rawAttrs = arr[3]
				}
			} else {
				if len(arr) > 2 {
					rawAttrs = arr[2]
				}
			}
			if len(rawAttrs) == 0 {
				continue
			}
			attrs, _ := parseTokenAttrs(rawAttrs)
			for _, attr := range attrs {
				if strings.EqualFold(attr.Name, "charset") {
					return true
				}
			}
			var httpEquiv bool
			for _, attr := range attrs {
				if strings.EqualFold(attr.Name, "http-equiv") && strings.EqualFold(attr.Value, "content-type") {
					httpEquiv = true
					break
				}
			}
			if httpEquiv {
				return true
			}
		}
	}
	return false
}

// getTokenInfo decodes a single raw token's type and, where applicable, tag
// name; an unrecognized or malformed token yields ("", "").
func getTokenInfo(raw json.RawMessage) (string, string) {
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil || len(arr) == 0 {
		return "", ""
	}
	var tokenType string
	if err := json.Unmarshal(arr[0], &tokenType); err != nil {
		return "", ""
	}
	return tokenType, tokenTagName(tokenType, arr)
}

// tokenTagName extracts the tag name field from an already-decoded token
// array, at the index where each token type encodes it.
func tokenTagName(tokenType string, arr []json.RawMessage) string {
	var tagName string
	switch tokenType {
	case "StartTag", "EndTag":
		if len(arr) >= 3 {
			_ = json.Unmarshal(arr[2], &tagName)
		}
	case "EmptyTag":
		if len(arr) >= 2 {
			_ = json.Unmarshal(arr[1], &tagName)
		}
	}
	return tagName
}

// serializeInjectedMeta writes a synthetic <meta charset=...> tag for
// streams that declare an encoding but never include one of their own.
func serializeInjectedMeta(sb *strings.Builder, opts SerializeTokenOptions) {
	if opts.Encoding == "" {
		return
	}
	sb.WriteString("<meta charset")
	serializeTokenAttrValue(sb, "charset", opts.Encoding, opts)
	sb.WriteByte('>')
}

// collapseTokenWhitespace runs each maximal whitespace run in s down to a
// single space, mirroring serialize.collapseWhitespace for the token-stream
// serializer's pretty-printing path.
func collapseTokenWhitespace(s string) string {
	var sb strings.Builder
	inWhitespace := false
	for _, r := range s {
		if isWhitespaceChar(r) {
			if !inWhitespace {
				sb.WriteByte(' ')
				inWhitespace = true
			}
			continue
		}
		sb.WriteRune(r)
		inWhitespace = false
	}
	return sb.String()
}

// tokenInfoAt is the shared body behind getNextTokenInfo/getPrevTokenInfo:
// given a valid index into tokens, decode its type and tag name the same
// way getTokenInfo does for the current token.
func tokenInfoAt(tokens []json.RawMessage, idx int) (string, string) {
	if idx < 0 || idx >= len(tokens) {
		return "", ""
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(tokens[idx], &arr); err != nil || len(arr) == 0 {
		return "", ""
	}
	var tokenType string
	if err := json.Unmarshal(arr[0], &tokenType); err != nil {
		return "", ""
	}
	return tokenType, tokenTagName(tokenType, arr)
}

// getNextTokenInfo returns the type and tag name of the token right after
// idx, or ("", "") past the end of the stream.
func getNextTokenInfo(tokens []json.RawMessage, idx int) (string, string) {
	return tokenInfoAt(tokens, idx+1)
}

// getPrevTokenInfo returns the type and tag name of the token right before
// idx, or ("", "") if idx is the first token.
func getPrevTokenInfo(tokens []json.RawMessage, idx int) (string, string) {
	return tokenInfoAt(tokens, idx-1)
}
