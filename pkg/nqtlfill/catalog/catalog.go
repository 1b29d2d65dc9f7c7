// Package catalog holds the metric catalog, the label set and the matcher
// strategies used to recognise them in free text.
//
// Precedence is declaration order: when several entries match a text, the
// earliest-declared entry wins. Catalogs are immutable after New and safe to
// share between concurrent runs.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/normalize"
)

// Entry is one recognisable item.
type Entry[T comparable] struct {
	// ID is the value returned when the entry matches.
	ID T
	// Group is an optional reporting section.
	Group string
	// Names are display names matched verbatim by the Exact strategy.
	Names []string
	// Fragments are normalized keys matched by the Normalized and Substring
	// strategies.
	Fragments []string
}

// Catalog is an ordered set of entries.
type Catalog[T comparable] struct {
	entries []Entry[T]
	index   map[T]int
}

// New builds a catalog. Names and fragments are normalized; the key of every
// name is added as a fragment ahead of the declared ones. Entries without any
// usable fragment are dropped.
func New[T comparable](entries ...Entry[T]) *Catalog[T] {
	c := &Catalog[T]{index: make(map[T]int)}
	for _, e := range entries {
		if _, dup := c.index[e.ID]; dup {
			continue
		}
		seen := make(map[string]struct{})
		var frags []string
		add := func(text string) {
			key := normalize.Key(text)
			if key == "" {
				return
			}
			if _, ok := seen[key]; ok {
				return
			}
			seen[key] = struct{}{}
			frags = append(frags, key)
		}
		var names []string
		for _, n := range e.Names {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			names = append(names, n)
			add(n)
		}
		for _, f := range e.Fragments {
			add(f)
		}
		if len(frags) == 0 {
			continue
		}
		c.index[e.ID] = len(c.entries)
		c.entries = append(c.entries, Entry[T]{ID: e.ID, Group: e.Group, Names: names, Fragments: frags})
	}
	return c
}

// Extend returns a new catalog with extra entries appended after c's.
func (c *Catalog[T]) Extend(extra ...Entry[T]) *Catalog[T] {
	all := make([]Entry[T], 0, len(c.entries)+len(extra))
	all = append(all, c.entries...)
	all = append(all, extra...)
	return New(all...)
}

// Entries returns a copy of the entries in declaration order.
func (c *Catalog[T]) Entries() []Entry[T] {
	out := make([]Entry[T], len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup returns the entry for id.
func (c *Catalog[T]) Lookup(id T) (Entry[T], bool) {
	i, ok := c.index[id]
	if !ok {
		return Entry[T]{}, false
	}
	return c.entries[i], true
}

// Len returns the number of entries.
func (c *Catalog[T]) Len() int {
	return len(c.entries)
}

// ShadowError reports a fragment of an earlier entry that is contained in a
// fragment of a later entry. Under substring matching the later fragment can
// never win.
type ShadowError struct {
	Earlier         string
	EarlierFragment string
	Later           string
	LaterFragment   string
}

func (e *ShadowError) Error() string {
	return fmt.Sprintf("fragment %q of %q shadows fragment %q of %q",
		e.EarlierFragment, e.Earlier, e.LaterFragment, e.Later)
}

// Validate checks the catalog for shadowed fragments.
func (c *Catalog[T]) Validate() error {
	var errs []error
	for i, earlier := range c.entries {
		for _, later := range c.entries[i+1:] {
			for _, ef := range earlier.Fragments {
				for _, lf := range later.Fragments {
					if strings.Contains(lf, ef) {
						errs = append(errs, &ShadowError{
							Earlier:         fmt.Sprint(earlier.ID),
							EarlierFragment: ef,
							Later:           fmt.Sprint(later.ID),
							LaterFragment:   lf,
						})
					}
				}
			}
		}
	}
	return errors.Join(errs...)
}
