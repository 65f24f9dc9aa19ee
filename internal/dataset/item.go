package dataset

import "strings"

// Item is a single pickable entry produced by a Parser. The payload is the
// text handed back to subscribers on selection; attributes carry whatever
// grouping metadata the dataset defines. Width and Height are intrinsic
// dimensions used only by aspect-preserving layouts.
type Item struct {
	Attrs    map[string]string
	Keywords []string
	Payload  string
	Width    float64
	Height   float64
}

// Attr returns the named attribute, or the empty string when absent.
func (it Item) Attr(name string) string {
	if it.Attrs == nil {
		return ""
	}
	return it.Attrs[name]
}

// SearchText returns the haystack a search predicate matches against.
func (it Item) SearchText() string {
	if len(it.Keywords) == 0 {
		return it.Payload
	}
	return it.Payload + " " + strings.Join(it.Keywords, " ")
}

// Key identifies an item for dedup purposes. Identity is content based; two
// items with the same payload are the same item.
func (it Item) Key() string {
	return it.Payload
}
