package router

import (
	"maps"
	"slices"
)

// Element is a read-only description of a UI element.
type Element struct {
	ID       string
	Classes  []string
	Data     map[string]string
	Disabled bool

	// Name and Value are used for form fields and inputs.
	Name  string
	Value string

	Parent   *Element
	Children []*Element
}

// NewElement creates an element with the given id and classes.
func NewElement(id string, classes ...string) *Element {
	return &Element{ID: id, Classes: classes, Data: make(map[string]string)}
}

// WithData sets a data attribute and returns the element for chaining.
func (e *Element) WithData(key, value string) *Element {
	if e.Data == nil {
		e.Data = make(map[string]string)
	}
	e.Data[key] = value
	return e
}

// Append attaches child under e and returns child.
func (e *Element) Append(child *Element) *Element {
	child.Parent = e
	e.Children = append(e.Children, child)
	return child
}

// HasClass reports whether the element carries class.
func (e *Element) HasClass(class string) bool {
	if e == nil {
		return false
	}
	return slices.Contains(e.Classes, class)
}

// Closest returns the nearest element, starting at e itself, carrying class.
func (e *Element) Closest(class string) *Element {
	for cur := e; cur != nil; cur = cur.Parent {
		if cur.HasClass(class) {
			return cur
		}
	}
	return nil
}

// Action returns the declarative action name, if any.
func (e *Element) Action() string {
	if e == nil {
		return ""
	}
	return e.Data["action"]
}

func (e *Element) dataCopy() map[string]string {
	if e == nil || len(e.Data) == 0 {
		return map[string]string{}
	}
	return maps.Clone(e.Data)
}

// fields collects name/value pairs of enabled named descendants, depth first.
func (e *Element) fields() map[string]string {
	out := make(map[string]string)
	var walk func(*Element)
	walk = func(el *Element) {
		for _, child := range el.Children {
			if child.Name != "" && !child.Disabled {
				out[child.Name] = child.Value
			}
			walk(child)
		}
	}
	if e != nil {
		walk(e)
	}
	return out
}
