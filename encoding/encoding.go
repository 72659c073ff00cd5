// Package encoding implements HTML5 character encoding sniffing and
// decoding: BOM detection, the meta-charset prescan, and a handful of
// legacy byte encodings a browser has to keep supporting.
package encoding

import (
	"bytes"
	"errors"
	"strings"
)

// ErrUnsupportedEncoding is returned by decodeBytes when asked to decode
// with an Encoding this package has no table or algorithm for.
var ErrUnsupportedEncoding = errors.New("unsupported or invalid encoding")

// Encoding names one character encoding and the label strings a
// transport or document can use to request it.
type Encoding struct {
	Name   string
	Labels []string
}

// The encodings this package can actually decode. Labels come from the
// WHATWG encoding standard's label tables, trimmed to what the sniffing
// and meta-prescan algorithms below need to resolve.
var (
	UTF8 = &Encoding{
		Name: "UTF-8",
		Labels: []string{
			"utf-8", "utf8", "unicode-1-1-utf-8",
			"unicode11utf8", "unicode20utf8", "x-unicode20utf8",
		},
	}
	Windows1252 = &Encoding{
		Name: "windows-1252",
		Labels: []string{
			"windows-1252", "windows1252", "cp1252", "x-cp1252",
			"ansi_x3.4-1968", "ascii", "us-ascii",
			"iso-ir-100", "csisolatin1",
		},
	}
	ISO88591 = &Encoding{
		Name: "ISO-8859-1",
		Labels: []string{
			"iso-8859-1", "iso8859-1", "iso88591",
			"iso_8859-1", "iso_8859-1:1987",
			"latin1", "latin-1", "l1",
			"cp819", "ibm819",
		},
	}
	ISO88592 = &Encoding{
		Name: "iso-8859-2",
		Labels: []string{
			"iso-8859-2", "iso8859-2", "iso88592",
			"iso_8859-2", "iso_8859-2:1987",
			"iso-ir-101", "csisolatin2",
			"latin2", "latin-2", "l2",
		},
	}
	EUCJP = &Encoding{
		Name:   "euc-jp",
		Labels: []string{"euc-jp", "eucjp", "cseucpkdfmtjapanese", "x-euc-jp"},
	}
	UTF16   = &Encoding{Name: "utf-16", Labels: []string{"utf-16", "utf16"}}
	UTF16LE = &Encoding{Name: "utf-16le", Labels: []string{"utf-16le", "utf16le"}}
	UTF16BE = &Encoding{Name: "utf-16be", Labels: []string{"utf-16be", "utf16be"}}

	knownEncodings = []*Encoding{UTF8, Windows1252, ISO88591, ISO88592, EUCJP, UTF16, UTF16LE, UTF16BE}
)

const (
	nameUTF16LE = "utf-16le"
	nameUTF16BE = "utf-16be"
)

var htmlSpaceSet = map[byte]bool{
	0x09: true, // TAB
	0x0A: true, // LF
	0x0C: true, // FF
	0x0D: true, // CR
	0x20: true, // SPACE
}

// Decode turns raw document bytes into a string, picking an encoding in
// this order: a recognized caller-supplied transport hint beats a BOM,
// which beats the in-document <meta charset>, which beats the
// windows-1252 fallback every browser ships.
func Decode(data []byte, transportHint string) (string, *Encoding, error) {
	// A resolvable transport hint wins outright. Any BOM present still
	// gets stripped from the input, but the hint's encoding is what
	// decodes the rest, matching how real servers pair a Content-Type
	// charset with a document that also happens to carry a BOM.
	if transportHint != "" {
		if enc := resolveLabel(transportHint); enc != nil {
			skip := 0
			if bom := sniffBOM(data); bom != nil {
				skip = bomPrefixLen(bom)
			}
			text, err := decodeBytes(data[skip:], enc)
			return text, enc, err
		}
	}

	if bom := sniffBOM(data); bom != nil {
		text, err := decodeBytes(data[bomPrefixLen(bom):], bom)
		return text, bom, err
	}

	if enc := scanMetaCharset(data); enc != nil {
		text, err := decodeBytes(data, enc)
		return text, enc, err
	}

	text, err := decodeBytes(data, Windows1252)
	return text, Windows1252, err
}

// sniffBOM reports the encoding implied by a leading byte-order mark, or
// nil if data doesn't start with one of the three BOMs this package
// recognizes.
func sniffBOM(data []byte) *Encoding {
	switch {
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return UTF8
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return UTF16LE
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return UTF16BE
	default:
		return nil
	}
}

// bomPrefixLen is how many leading bytes belong to enc's byte-order mark.
func bomPrefixLen(enc *Encoding) int {
	switch enc.Name {
	case "UTF-8":
		return 3
	case nameUTF16LE, nameUTF16BE:
		return 2
	default:
		return 0
	}
}

// resolveLabel maps a raw label string (a transport charset, a meta
// charset attribute, ...) to the Encoding it names, or nil if the label
// isn't recognized. utf-7 is intentionally mapped to windows-1252 rather
// than honored, matching every shipping browser's refusal to sniff it.
func resolveLabel(label string) *Encoding {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return nil
	}

	if label == "utf-7" || label == "utf7" || label == "x-utf-7" {
		return Windows1252
	}

	for _, enc := range knownEncodings {
		for _, candidate := range enc.Labels {
			if candidate != label {
				continue
			}
			if enc == ISO88591 {
				// HTML defines ISO-8859-1 labels as aliases of windows-1252.
				return Windows1252
			}
			return enc
		}
	}

	return nil
}

// resolveMetaDeclaredLabel is resolveLabel plus the HTML-specific rule
// that a meta-declared UTF-16 encoding is reinterpreted as UTF-8, since
// a meta tag claiming it would be unreadable in the encoding it's
// declared in. UTF-32 labels are not recognized by resolveLabel, so a
// meta-declared UTF-32 yields nil.
func resolveMetaDeclaredLabel(label []byte) *Encoding {
	enc := resolveLabel(string(label))
	if enc == nil {
		return nil
	}

	switch enc.Name {
	case "utf-16", nameUTF16LE, nameUTF16BE, "utf-32", "utf-32le", "utf-32be":
		return UTF8
	default:
		return enc
	}
}

func isHTMLSpace(b byte) bool {
	return htmlSpaceSet[b]
}

func isASCIIAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func toASCIILower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b | 0x20
	}
	return b
}

func skipHTMLSpace(data []byte, i int) int {
	for i < len(data) && isHTMLSpace(data[i]) {
		i++
	}
	return i
}

func trimHTMLSpace(value []byte) []byte {
	start, end := 0, len(value)
	for start < end && isHTMLSpace(value[start]) {
		start++
	}
	for end > start && isHTMLSpace(value[end-1]) {
		end--
	}
	return value[start:end]
}

// extractContentCharset pulls a charset value out of a Content-Type
// meta tag's content attribute, e.g. "text/html; charset=shift_jis".
func extractContentCharset(contentBytes []byte) []byte {
	if len(contentBytes) == 0 {
		return nil
	}

	normalized := make([]byte, len(contentBytes))
	for i, ch := range contentBytes {
		if isHTMLSpace(ch) {
			normalized[i] = ' '
		} else {
			normalized[i] = toASCIILower(ch)
		}
	}

	idx := bytes.Index(normalized, []byte("charset"))
	if idx == -1 {
		return nil
	}

	i := skipHTMLSpace(normalized, idx+len("charset"))
	n := len(normalized)
	if i >= n || normalized[i] != '=' {
		return nil
	}
	i = skipHTMLSpace(normalized, i+1)
	if i >= n {
		return nil
	}

	var quote byte
	if normalized[i] == '"' || normalized[i] == '\'' {
		quote = normalized[i]
		i++
	}

	start := i
	for i < n {
		ch := normalized[i]
		if quote != 0 {
			if ch == quote {
				break
			}
		} else if ch == ' ' || ch == ';' {
			break
		}
		i++
	}

	if quote != 0 && (i >= n || normalized[i] != quote) {
		return nil
	}

	return normalized[start:i]
}

// scanMetaCharset implements the HTML5 "prescan a byte stream to
// determine its encoding" algorithm: walk raw bytes looking for a meta
// tag with a charset or http-equiv=Content-Type declaration, skipping
// comments and unrelated tags, without ever treating the input as
// already-decoded text.
//
//nolint:gocognit,gocyclo,nestif,cyclop,funlen,maintidx // mirrors the spec's own branching, not simplifiable without changing behavior
func scanMetaCharset(data []byte) *Encoding {
	const maxNonComment = 1024
	const maxTotalScan = 65536

	n := len(data)
	i := 0
	nonComment := 0

	for i < n && i < maxTotalScan && nonComment < maxNonComment {
		if data[i] != '<' {
			i++
			nonComment++
			continue
		}

		if i+3 < n && data[i+1] == '!' && data[i+2] == '-' && data[i+3] == '-' {
			end := bytes.Index(data[i+4:], []byte("-->"))
			if end == -1 {
				return nil
			}
			i = i + 4 + end + 3
			continue
		}

		j := i + 1
		if j < n && data[j] == '/' {
			consumed, newPos := skipPastTagEnd(data, i, maxTotalScan, maxNonComment-nonComment)
			nonComment += consumed
			i = newPos
			continue
		}

		if j >= n || !isASCIIAlpha(data[j]) {
			i++
			nonComment++
			continue
		}

		nameStart := j
		for j < n && isASCIIAlpha(data[j]) {
			j++
		}

		if !bytes.EqualFold(data[nameStart:j], []byte("meta")) {
			consumed, newPos := skipPastTagEnd(data, i, maxTotalScan, maxNonComment-nonComment)
			nonComment += consumed
			i = newPos
			continue
		}

		charset, httpEquiv, content, sawGT, k, unclosedQuote := scanMetaAttributes(data, j, maxTotalScan)
		if unclosedQuote {
			// An attribute value's quote never closed: give up on this
			// meta tag entirely and resume scanning just past it.
			i += 2
			nonComment += 2
			continue
		}

		if sawGT {
			if enc := resolvedFromMeta(charset, httpEquiv, content); enc != nil {
				return enc
			}
			consumed := k - i
			i = k
			nonComment += consumed
		} else {
			i++
			nonComment++
		}
	}

	return nil
}

func resolvedFromMeta(charset, httpEquiv, content []byte) *Encoding {
	if charset != nil {
		if enc := resolveMetaDeclaredLabel(charset); enc != nil {
			return enc
		}
	}
	if httpEquiv != nil && bytes.EqualFold(httpEquiv, []byte("content-type")) && content != nil {
		if extracted := extractContentCharset(content); extracted != nil {
			if enc := resolveMetaDeclaredLabel(extracted); enc != nil {
				return enc
			}
		}
	}
	return nil
}

// skipPastTagEnd advances past a tag the prescan doesn't care about
// (an end tag, or a start tag whose name isn't "meta"), respecting
// quoted attribute values so a ">" inside one doesn't end the tag early.
// It returns how many non-comment bytes were consumed and the new scan
// position.
func skipPastTagEnd(data []byte, from, maxTotalScan, budget int) (consumed, pos int) {
	k := from
	var quote byte
	for k < len(data) && k < maxTotalScan && consumed < budget {
		ch := data[k]
		if quote == 0 {
			if ch == '"' || ch == '\'' {
				quote = ch
			} else if ch == '>' {
				k++
				consumed++
				break
			}
		} else if ch == quote {
			quote = 0
		}
		k++
		consumed++
	}
	return consumed, k
}

// scanMetaAttributes parses a tag's attribute list starting at position
// i (just past "<meta"), returning any charset, http-equiv, and content
// values seen, whether a closing '>' was reached, the position right
// after it, and whether parsing gave up because a quoted value never
// closed.
func scanMetaAttributes(data []byte, i, maxTotalScan int) (charset, httpEquiv, content []byte, sawGT bool, pos int, unclosedQuote bool) {
	n := len(data)
	k := i

	for k < n && k < maxTotalScan {
		ch := data[k]

		if ch == '>' {
			return charset, httpEquiv, content, true, k + 1, false
		}
		if ch == '<' {
			break
		}
		if isHTMLSpace(ch) || ch == '/' {
			k++
			continue
		}

		attrStart := k
		for k < n {
			ch = data[k]
			if isHTMLSpace(ch) || ch == '=' || ch == '>' || ch == '/' || ch == '<' {
				break
			}
			k++
		}
		attrName := bytes.ToLower(data[attrStart:k])
		k = skipHTMLSpace(data, k)

		var value []byte
		if k < n && data[k] == '=' {
			k = skipHTMLSpace(data, k+1)
			if k >= n {
				break
			}

			if data[k] == '"' || data[k] == '\'' {
				quote := data[k]
				k++
				valStart := k
				endQuote := bytes.IndexByte(data[k:], quote)
				if endQuote == -1 {
					return nil, nil, nil, false, i, true
				}
				value = data[valStart : k+endQuote]
				k += endQuote + 1
			} else {
				valStart := k
				for k < n {
					ch = data[k]
					if isHTMLSpace(ch) || ch == '>' || ch == '<' {
						break
					}
					k++
				}
				value = data[valStart:k]
			}
		}

		switch {
		case bytes.Equal(attrName, []byte("charset")):
			charset = trimHTMLSpace(value)
		case bytes.Equal(attrName, []byte("http-equiv")):
			httpEquiv = value
		case bytes.Equal(attrName, []byte("content")):
			content = value
		}
	}

	return charset, httpEquiv, content, false, k, false
}

// decodeBytes converts data from enc into a Go string. UTF-8 passes
// through as-is (invalid sequences surface as U+FFFD the way Go's
// string/rune conversions already handle); the single-byte and UTF-16
// encodings are decoded by explicit table or bit-shift.
//
//nolint:gocognit // one switch arm per supported encoding, not usefully split further
func decodeBytes(data []byte, enc *Encoding) (string, error) {
	switch enc.Name {
	case "UTF-8":
		return string(data), nil

	case "windows-1252":
		var sb strings.Builder
		sb.Grow(len(data))
		for _, b := range data {
			if b >= 0x80 && b <= 0x9F {
				sb.WriteRune(windows1252HighRange[b-0x80])
			} else {
				sb.WriteRune(rune(b))
			}
		}
		return sb.String(), nil

	case "ISO-8859-1":
		var sb strings.Builder
		sb.Grow(len(data))
		for _, b := range data {
			sb.WriteRune(rune(b))
		}
		return sb.String(), nil

	case "iso-8859-2":
		var sb strings.Builder
		sb.Grow(len(data))
		for _, b := range data {
			if b < 0x80 {
				sb.WriteRune(rune(b))
			} else {
				sb.WriteRune(iso88592HighRange[b-0x80])
			}
		}
		return sb.String(), nil

	case "euc-jp":
		// Full EUC-JP decoding needs JIS X 0208 tables this package
		// doesn't carry; ASCII bytes decode exactly, multi-byte
		// sequences surface as U+FFFD rather than silently mojibake.
		var sb strings.Builder
		for i := 0; i < len(data); {
			if data[i] < 0x80 {
				sb.WriteByte(data[i])
				i++
				continue
			}
			sb.WriteRune('�')
			i++
			if i < len(data) && data[i] >= 0x80 {
				i++
			}
		}
		return sb.String(), nil

	case nameUTF16LE:
		return decodeUTF16(data, false), nil

	case nameUTF16BE:
		return decodeUTF16(data, true), nil

	case "utf-16":
		if len(data) >= 2 {
			if data[0] == 0xFF && data[1] == 0xFE {
				return decodeBytes(data[2:], UTF16LE)
			}
			if data[0] == 0xFE && data[1] == 0xFF {
				return decodeBytes(data[2:], UTF16BE)
			}
		}
		return decodeBytes(data, UTF16LE)

	default:
		return "", ErrUnsupportedEncoding
	}
}

func decodeUTF16(data []byte, bigEndian bool) string {
	if len(data)%2 != 0 {
		data = append(data, 0)
	}
	runes := make([]rune, 0, len(data)/2)
	for i := 0; i < len(data); i += 2 {
		var r rune
		if bigEndian {
			r = rune(data[i])<<8 | rune(data[i+1])
		} else {
			r = rune(data[i]) | rune(data[i+1])<<8
		}
		runes = append(runes, r)
	}
	return string(runes)
}

// windows1252HighRange maps bytes 0x80-0x9F to the code points where
// windows-1252 diverges from ISO-8859-1.
var windows1252HighRange = [32]rune{
	0x20AC, 0x0081, 0x201A, 0x0192, 0x201E, 0x2026, 0x2020, 0x2021,
	0x02C6, 0x2030, 0x0160, 0x2039, 0x0152, 0x008D, 0x017D, 0x008F,
	0x0090, 0x2018, 0x2019, 0x201C, 0x201D, 0x2022, 0x2013, 0x2014,
	0x02DC, 0x2122, 0x0161, 0x203A, 0x0153, 0x009D, 0x017E, 0x0178,
}

// iso88592HighRange maps bytes 0x80-0xFF to their ISO-8859-2 code points.
var iso88592HighRange = [128]rune{
	0x0080, 0x0081, 0x0082, 0x0083, 0x0084, 0x0085, 0x0086, 0x0087,
	0x0088, 0x0089, 0x008A, 0x008B, 0x008C, 0x008D, 0x008E, 0x008F,
	0x0090, 0x0091, 0x0092, 0x0093, 0x0094, 0x0095, 0x0096, 0x0097,
	0x0098, 0x0099, 0x009A, 0x009B, 0x009C, 0x009D, 0x009E, 0x009F,
	0x00A0, 0x0104, 0x02D8, 0x0141, 0x00A4, 0x013D, 0x015A, 0x00A7,
	0x00A8, 0x0160, 0x015E, 0x0164, 0x0179, 0x00AD, 0x017D, 0x017B,
	0x00B0, 0x0105, 0x02DB, 0x0142, 0x00B4, 0x013E, 0x015B, 0x02C7,
	0x00B8, 0x0161, 0x015F, 0x0165, 0x017A, 0x02DD, 0x017E, 0x017C,
	0x0154, 0x00C1, 0x00C2, 0x0102, 0x00C4, 0x0139, 0x0106, 0x00C7,
	0x010C, 0x00C9, 0x0118, 0x00CB, 0x011A, 0x00CD, 0x00CE, 0x010E,
	0x0110, 0x0143, 0x0147, 0x00D3, 0x00D4, 0x0150, 0x00D6, 0x00D7,
	0x0158, 0x016E, 0x00DA, 0x0170, 0x00DC, 0x00DD, 0x0162, 0x00DF,
	0x0155, 0x00E1, 0x00E2, 0x0103, 0x00E4, 0x013A, 0x0107, 0x00E7,
	0x010D, 0x00E9, 0x0119, 0x00EB, 0x011B, 0x00ED, 0x00EE, 0x010F,
	0x0111, 0x0144, 0x0148, 0x00F3, 0x00F4, 0x0151, 0x00F6, 0x00F7,
	0x0159, 0x016F, 0x00FA, 0x0171, 0x00FC, 0x00FD, 0x0163, 0x02D9,
}
