package dom

import "strings"

// Attribute is a single name/value pair, with an optional namespace for
// the foreign-content attributes (xlink:href and friends).
type Attribute struct {
	Namespace string
	Name      string
	Value     string
}

// Attributes is an element's attribute set, kept in source order and
// looked up case-insensitively for unnamespaced (HTML) attributes.
type Attributes struct {
	list []Attribute
}

// NewAttributes builds an empty attribute set.
func NewAttributes() *Attributes {
	return &Attributes{}
}

func (a *Attributes) indexOf(namespace, name string) int {
	for i := range a.list {
		if a.list[i].Namespace == namespace && strings.EqualFold(a.list[i].Name, name) {
			return i
		}
	}
	return -1
}

// Get looks up an unnamespaced attribute by name, case-insensitively.
func (a *Attributes) Get(name string) (string, bool) {
	if i := a.indexOf("", name); i >= 0 {
		return a.list[i].Value, true
	}
	return "", false
}

// GetNS looks up a namespaced attribute. Unlike Get, the name match is
// exact, matching how foreign-content attribute names are cased.
func (a *Attributes) GetNS(namespace, name string) (string, bool) {
	for _, attr := range a.list {
		if attr.Namespace == namespace && attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Set adds or updates an unnamespaced attribute. name is lowercased;
// the tokenizer already does this for markup-sourced attributes, but
// callers constructing elements programmatically may not.
func (a *Attributes) Set(name, value string) {
	a.SetNS("", strings.ToLower(name), value)
}

// SetNS adds or updates a namespaced attribute.
func (a *Attributes) SetNS(namespace, name, value string) {
	if i := a.indexOf(namespace, name); i >= 0 {
		a.list[i].Value = value
		return
	}
	a.list = append(a.list, Attribute{Namespace: namespace, Name: name, Value: value})
}

func (a *Attributes) Has(name string) bool {
	_, found := a.Get(name)
	return found
}

func (a *Attributes) HasNS(namespace, name string) bool {
	_, found := a.GetNS(namespace, name)
	return found
}

func (a *Attributes) Remove(name string) {
	a.RemoveNS("", name)
}

func (a *Attributes) RemoveNS(namespace, name string) {
	if i := a.indexOf(namespace, name); i >= 0 {
		a.list = append(a.list[:i], a.list[i+1:]...)
	}
}

// All returns a defensive copy of the attribute list in source order.
func (a *Attributes) All() []Attribute {
	result := make([]Attribute, len(a.list))
	copy(result, a.list)
	return result
}

func (a *Attributes) Len() int {
	return len(a.list)
}

func (a *Attributes) Clone() *Attributes {
	clone := &Attributes{list: make([]Attribute, len(a.list))}
	copy(clone.list, a.list)
	return clone
}
