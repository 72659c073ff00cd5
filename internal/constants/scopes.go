package constants

// The "specific scope" algorithm (§13.2.4.2) walks the stack of open
// elements looking for a target tag, stopping early if it hits one of
// a scope-dependent set of terminators first. baseScopeTerminators is
// the set shared by the default, list-item, and button scopes before
// each adds its own extra terminator(s); copyWith clones it per scope
// so callers can't mutate a table shared with another scope check.
var baseScopeTerminators = map[string]bool{
	"applet":   true,
	"caption":  true,
	"html":     true,
	"table":    true,
	"td":       true,
	"th":       true,
	"marquee":  true,
	"object":   true,
	"template": true,
	// MathML text-integration-point-adjacent elements.
	"mi":             true,
	"mo":             true,
	"mn":             true,
	"ms":             true,
	"mtext":          true,
	"annotation-xml": true,
	// SVG HTML-integration-point elements.
	"foreignObject": true,
	"desc":          true,
	"title":         true,
}

func copyWith(base map[string]bool, extra ...string) map[string]bool {
	m := make(map[string]bool, len(base)+len(extra))
	for k, v := range base {
		m[k] = v
	}
	for _, k := range extra {
		m[k] = true
	}
	return m
}

// DefaultScope is the terminator set used by the plain "has an element
// in scope" check.
var DefaultScope = copyWith(baseScopeTerminators)

// ListItemScope additionally stops at ol/ul, for the li end-tag checks.
var ListItemScope = copyWith(baseScopeTerminators, "ol", "ul")

// ButtonScope additionally stops at button, for the p-in-button-scope
// check used before implicitly closing an open <p>.
var ButtonScope = copyWith(baseScopeTerminators, "button")

// TableScope is the narrower terminator set used when searching for a
// table-structural element.
var TableScope = set("html", "table", "template")

// TableBodyScope additionally stops at the table section elements.
var TableBodyScope = set("html", "table", "template", "tbody", "tfoot", "thead")

// TableRowScope additionally stops at tr, for row-level checks.
var TableRowScope = set("html", "table", "template", "tbody", "tfoot", "thead", "tr")

// SelectScope is inverted from the others: it names the elements a
// <select>'s content is allowed to contain, not the terminators.
var SelectScope = set("optgroup", "option")
