// Package constants holds the static tables the WHATWG HTML5 parsing
// algorithm is built on: element classifications, tag-name/attribute
// case adjustments for foreign content, and the character-reference
// and scope tables the tokenizer and tree builder consult by name.
package constants

func set(tags ...string) map[string]bool {
	m := make(map[string]bool, len(tags))
	for _, t := range tags {
		m[t] = true
	}
	return m
}

// ForeignAttribute is the namespace/local-name split a foreign (SVG or
// MathML) attribute is adjusted to during tree construction.
type ForeignAttribute struct {
	Prefix       string
	LocalName    string
	NamespaceURL string
}

// IntegrationPoint identifies an element by namespace and local name,
// used as the key for the HTML/MathML-text integration point tables.
type IntegrationPoint struct {
	Namespace string
	LocalName string
}

// Namespace URLs the tree builder assigns to elements outside the
// default HTML namespace.
const (
	NamespaceHTML   = "http://www.w3.org/1999/xhtml"
	NamespaceSVG    = "http://www.w3.org/2000/svg"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
	NamespaceXLink  = "http://www.w3.org/1999/xlink"
	NamespaceXML    = "http://www.w3.org/XML/1998/namespace"
	NamespaceXMLNS  = "http://www.w3.org/2000/xmlns/"
)

// VoidElements never have an end tag or content.
var VoidElements = set(
	"area", "base", "br", "col", "embed", "hr", "img", "input", "keygen",
	"link", "meta", "param", "source", "track", "wbr",
)

// RawTextElements treat everything up to their matching end tag as
// opaque text with no markup recognized inside.
var RawTextElements = set("script", "style")

// EscapableRawTextElements are like RawTextElements but still expand
// character references.
var EscapableRawTextElements = set("textarea", "title")

// SpecialElements change the stack-of-open-elements bookkeeping the
// tree construction stage does; membership here gates several of its
// insertion-mode branches.
var SpecialElements = set(
	"address", "applet", "area", "article", "aside", "base", "basefont",
	"bgsound", "blockquote", "body", "br", "button", "caption", "center",
	"col", "colgroup", "dd", "details", "dialog", "dir", "div", "dl", "dt",
	"embed", "fieldset", "figcaption", "figure", "footer", "form", "frame",
	"frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head", "header",
	"hgroup", "hr", "html", "iframe", "img", "input", "keygen", "li",
	"link", "listing", "main", "marquee", "menu", "menuitem", "meta",
	"nav", "noembed", "noframes", "noscript", "object", "ol", "p",
	"param", "plaintext", "pre", "script", "search", "section", "select",
	"source", "style", "summary", "table", "tbody", "td", "template",
	"textarea", "tfoot", "th", "thead", "title", "tr", "track", "ul", "wbr",
)

// FormattingElements get reconstructed onto newly inserted nodes per
// the active formatting element list algorithm.
var FormattingElements = set(
	"a", "b", "big", "code", "em", "font", "i", "nobr", "s",
	"small", "strike", "strong", "tt", "u",
)

// TableFosterTargets are elements whose presence on the stack of open
// elements triggers foster parenting of otherwise-misplaced content.
var TableFosterTargets = set("table", "tbody", "tfoot", "thead", "tr")

// TableAllowedChildren may be inserted directly into a table without
// foster parenting.
var TableAllowedChildren = set(
	"caption", "colgroup", "tbody", "tfoot", "thead", "tr", "td",
	"th", "script", "template", "style",
)

// ImpliedEndTagElements close themselves implicitly when a conflicting
// tag is encountered ("generate implied end tags").
var ImpliedEndTagElements = set(
	"dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc",
)

// ThoroughlyImpliedEndTagElements extends ImpliedEndTagElements for the
// "thoroughly" variant of the implied-end-tags step.
var ThoroughlyImpliedEndTagElements = set(
	"caption", "colgroup", "dd", "dt", "li", "optgroup", "option", "p",
	"rb", "rp", "rt", "rtc", "tbody", "td", "tfoot", "th", "thead", "tr",
)

// ForeignBreakoutElements are HTML elements that, when found as a start
// tag while parsing foreign (SVG/MathML) content, force the parser back
// into the HTML namespace before inserting them.
var ForeignBreakoutElements = set(
	"b", "big", "blockquote", "body", "br", "center", "code", "dd", "div",
	"dl", "dt", "em", "embed", "h1", "h2", "h3", "h4", "h5", "h6", "head",
	"hr", "i", "img", "li", "listing", "menu", "meta", "nobr", "ol", "p",
	"pre", "ruby", "s", "small", "span", "strong", "strike", "sub", "sup",
	"table", "tt", "u", "ul", "var",
)

// HTMLIntegrationPoints are SVG/MathML elements whose content is parsed
// as HTML rather than as foreign content.
var HTMLIntegrationPoints = map[IntegrationPoint]bool{
	{Namespace: NamespaceMathML, LocalName: "annotation-xml"}: true,
	{Namespace: NamespaceSVG, LocalName: "foreignObject"}:     true,
	{Namespace: NamespaceSVG, LocalName: "desc"}:              true,
	{Namespace: NamespaceSVG, LocalName: "title"}:             true,
}

// MathMLTextIntegrationPoints are MathML elements whose children are
// parsed as HTML text rather than further MathML markup.
var MathMLTextIntegrationPoints = map[IntegrationPoint]bool{
	{Namespace: NamespaceMathML, LocalName: "mi"}:    true,
	{Namespace: NamespaceMathML, LocalName: "mo"}:    true,
	{Namespace: NamespaceMathML, LocalName: "mn"}:    true,
	{Namespace: NamespaceMathML, LocalName: "ms"}:    true,
	{Namespace: NamespaceMathML, LocalName: "mtext"}: true,
}

// SVGTagNameAdjustments maps the lowercase tag name an HTML tokenizer
// produces to the mixed-case spelling SVG actually uses.
var SVGTagNameAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

// SVGAttributeAdjustments maps the lowercase attribute name an HTML
// tokenizer produces to the mixed-case spelling SVG actually uses.
var SVGAttributeAdjustments = map[string]string{
	"attributename":       "attributeName",
	"attributetype":       "attributeType",
	"basefrequency":       "baseFrequency",
	"baseprofile":         "baseProfile",
	"calcmode":            "calcMode",
	"clippathunits":       "clipPathUnits",
	"diffuseconstant":     "diffuseConstant",
	"edgemode":            "edgeMode",
	"filterunits":         "filterUnits",
	"glyphref":            "glyphRef",
	"gradienttransform":   "gradientTransform",
	"gradientunits":       "gradientUnits",
	"kernelmatrix":        "kernelMatrix",
	"kernelunitlength":    "kernelUnitLength",
	"keypoints":           "keyPoints",
	"keysplines":          "keySplines",
	"keytimes":            "keyTimes",
	"lengthadjust":        "lengthAdjust",
	"limitingconeangle":   "limitingConeAngle",
	"markerheight":        "markerHeight",
	"markerunits":         "markerUnits",
	"markerwidth":         "markerWidth",
	"maskcontentunits":    "maskContentUnits",
	"maskunits":           "maskUnits",
	"numoctaves":          "numOctaves",
	"pathlength":          "pathLength",
	"patterncontentunits": "patternContentUnits",
	"patterntransform":    "patternTransform",
	"patternunits":        "patternUnits",
	"pointsatx":           "pointsAtX",
	"pointsaty":           "pointsAtY",
	"pointsatz":           "pointsAtZ",
	"preservealpha":       "preserveAlpha",
	"preserveaspectratio": "preserveAspectRatio",
	"primitiveunits":      "primitiveUnits",
	"refx":                "refX",
	"refy":                "refY",
	"repeatcount":         "repeatCount",
	"repeatdur":           "repeatDur",
	"requiredextensions":  "requiredExtensions",
	"requiredfeatures":    "requiredFeatures",
	"specularconstant":    "specularConstant",
	"specularexponent":    "specularExponent",
	"spreadmethod":        "spreadMethod",
	"startoffset":         "startOffset",
	"stddeviation":        "stdDeviation",
	"stitchtiles":         "stitchTiles",
	"surfacescale":        "surfaceScale",
	"systemlanguage":      "systemLanguage",
	"tablevalues":         "tableValues",
	"targetx":             "targetX",
	"targety":             "targetY",
	"textlength":          "textLength",
	"viewbox":             "viewBox",
	"viewtarget":          "viewTarget",
	"xchannelselector":    "xChannelSelector",
	"ychannelselector":    "yChannelSelector",
	"zoomandpan":          "zoomAndPan",
}

// MathMLAttributeAdjustments maps the lowercase attribute name an HTML
// tokenizer produces to the mixed-case spelling MathML actually uses.
var MathMLAttributeAdjustments = map[string]string{
	"definitionurl": "definitionURL",
}

// ForeignAttributeAdjustments maps a colon-qualified attribute name to
// the namespace it belongs to in foreign content.
var ForeignAttributeAdjustments = map[string]ForeignAttribute{
	"xlink:actuate": {Prefix: "xlink", LocalName: "actuate", NamespaceURL: NamespaceXLink},
	"xlink:arcrole": {Prefix: "xlink", LocalName: "arcrole", NamespaceURL: NamespaceXLink},
	"xlink:href":    {Prefix: "xlink", LocalName: "href", NamespaceURL: NamespaceXLink},
	"xlink:role":    {Prefix: "xlink", LocalName: "role", NamespaceURL: NamespaceXLink},
	"xlink:show":    {Prefix: "xlink", LocalName: "show", NamespaceURL: NamespaceXLink},
	"xlink:title":   {Prefix: "xlink", LocalName: "title", NamespaceURL: NamespaceXLink},
	"xlink:type":    {Prefix: "xlink", LocalName: "type", NamespaceURL: NamespaceXLink},
	"xml:lang":      {Prefix: "xml", LocalName: "lang", NamespaceURL: NamespaceXML},
	"xml:space":     {Prefix: "xml", LocalName: "space", NamespaceURL: NamespaceXML},
	"xmlns":         {Prefix: "", LocalName: "xmlns", NamespaceURL: NamespaceXMLNS},
	"xmlns:xlink":   {Prefix: "xmlns", LocalName: "xlink", NamespaceURL: NamespaceXMLNS},
}
