package catalog

import (
	"strings"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/normalize"
)

// Matcher classifies free text as one catalog entry.
type Matcher[T comparable] interface {
	Classify(text string) (T, bool)
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc[T comparable] func(text string) (T, bool)

// Classify calls f.
func (f MatcherFunc[T]) Classify(text string) (T, bool) {
	return f(text)
}

// Exact matches text that equals a display name after trimming.
func Exact[T comparable](c *Catalog[T]) Matcher[T] {
	return MatcherFunc[T](func(text string) (T, bool) {
		text = strings.TrimSpace(text)
		if text != "" {
			for _, e := range c.entries {
				for _, n := range e.Names {
					if n == text {
						return e.ID, true
					}
				}
			}
		}
		var zero T
		return zero, false
	})
}

// Normalized matches text whose key equals a fragment.
func Normalized[T comparable](c *Catalog[T]) Matcher[T] {
	return MatcherFunc[T](func(text string) (T, bool) {
		if key := normalize.Key(text); key != "" {
			for _, e := range c.entries {
				for _, f := range e.Fragments {
					if f == key {
						return e.ID, true
					}
				}
			}
		}
		var zero T
		return zero, false
	})
}

// Substring matches text whose key contains a fragment.
func Substring[T comparable](c *Catalog[T]) Matcher[T] {
	return MatcherFunc[T](func(text string) (T, bool) {
		if key := normalize.Key(text); key != "" {
			for _, e := range c.entries {
				for _, f := range e.Fragments {
					if strings.Contains(key, f) {
						return e.ID, true
					}
				}
			}
		}
		var zero T
		return zero, false
	})
}

// Chain tries each matcher in order; the first success wins.
func Chain[T comparable](matchers ...Matcher[T]) Matcher[T] {
	return MatcherFunc[T](func(text string) (T, bool) {
		for _, m := range matchers {
			if id, ok := m.Classify(text); ok {
				return id, true
			}
		}
		var zero T
		return zero, false
	})
}

// Fuzzy is the exact → normalized → substring chain.
func Fuzzy[T comparable](c *Catalog[T]) Matcher[T] {
	return Chain(Exact(c), Normalized(c), Substring(c))
}

// Strict is the exact → normalized chain; it only accepts equal keys.
func Strict[T comparable](c *Catalog[T]) Matcher[T] {
	return Chain(Exact(c), Normalized(c))
}
