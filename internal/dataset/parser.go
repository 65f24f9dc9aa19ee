package dataset

import (
	"fmt"
	"sort"
)

// Parser converts a raw dataset file into an ordered item list. Item order is
// significant: category order in the UI follows first appearance.
type Parser interface {
	Parse(raw []byte) ([]Item, error)
}

// parsers maps dataset kinds to parser factories. The map is populated here,
// once, rather than resolved from strings at call sites.
var parsers = map[string]func() Parser{
	"emoji":   func() Parser { return EmojiParser{} },
	"kaomoji": func() Parser { return KaomojiParser{} },
}

// New returns the parser registered for the given dataset kind.
func New(kind string) (Parser, error) {
	factory, ok := parsers[kind]
	if !ok {
		return nil, fmt.Errorf("unknown dataset kind %q (known: %v)", kind, Kinds())
	}
	return factory(), nil
}

// Kinds lists the registered dataset kinds in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(parsers))
	for kind := range parsers {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
