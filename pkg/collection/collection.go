package collection

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Collection is an ordered, deduplicated set of entries found under a root.
// Iteration follows the entry order (lexicographic by name), never insertion
// or filesystem order.
type Collection struct {
	root    string
	entries *treeset.Set
}

// byName orders Entry values by name for the underlying tree
var byName utils.Comparator = func(a, b interface{}) int {
	return strings.Compare(a.(Entry).name, b.(Entry).name)
}

// New creates an empty collection without a root
func New() *Collection {
	return NewAt("")
}

// NewAt creates an empty collection bound to root
func NewAt(root string) *Collection {
	return &Collection{
		root:    root,
		entries: treeset.NewWith(byName),
	}
}

// Of creates a collection bound to root holding the given entries
func Of(root string, entries ...Entry) *Collection {
	c := NewAt(root)
	for _, e := range entries {
		c.Add(e)
	}
	return c
}

// Root returns the directory the collection was built from
func (c *Collection) Root() string {
	return c.root
}

// Len returns the number of entries
func (c *Collection) Len() int {
	return c.entries.Size()
}

// Add inserts entry and reports whether the set changed.
// An entry whose name is already present is left untouched.
func (c *Collection) Add(entry Entry) bool {
	if c.entries.Contains(entry) {
		return false
	}
	c.entries.Add(entry)
	return true
}

// Contains reports whether an entry with the same name is present
func (c *Collection) Contains(entry Entry) bool {
	return c.entries.Contains(entry)
}

// Each calls fn for every entry in order until fn returns false
func (c *Collection) Each(fn func(Entry) bool) {
	it := c.entries.Iterator()
	for it.Next() {
		if !fn(it.Value().(Entry)) {
			return
		}
	}
}

// Entries returns the entries in order
func (c *Collection) Entries() []Entry {
	out := make([]Entry, 0, c.Len())
	c.Each(func(e Entry) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Names returns the entry names in order
func (c *Collection) Names() []string {
	out := make([]string, 0, c.Len())
	c.Each(func(e Entry) bool {
		out = append(out, e.name)
		return true
	})
	return out
}

// Difference returns the entries of c whose names are absent from other.
// The result is rooted at c's root.
func (c *Collection) Difference(other *Collection) *Collection {
	result := NewAt(c.root)
	merge(c, other, func(self, theirs *Entry) {
		if self != nil && theirs == nil {
			result.entries.Add(*self)
		}
	})
	return result
}

// Intersection returns c's entries whose names are also present in other.
// The result is rooted at c's root and holds c's entries, so their paths stay
// consistent with that root.
func (c *Collection) Intersection(other *Collection) *Collection {
	result := NewAt(c.root)
	merge(c, other, func(self, theirs *Entry) {
		if self != nil && theirs != nil {
			result.entries.Add(*self)
		}
	})
	return result
}

// Equal reports whether both collections hold the same set of names.
// Roots are not compared.
func (c *Collection) Equal(other *Collection) bool {
	if c.Len() != other.Len() {
		return false
	}
	a, b := c.entries.Iterator(), other.entries.Iterator()
	for a.Next() && b.Next() {
		if !a.Value().(Entry).Equal(b.Value().(Entry)) {
			return false
		}
	}
	return true
}

func (c *Collection) String() string {
	return "{" + strings.Join(c.Names(), ", ") + "}"
}

// merge walks both collections in entry order at once, calling visit with the
// left entry, the right entry, or both when the names match.
func merge(left, right *Collection, visit func(l, r *Entry)) {
	li, ri := left.entries.Iterator(), right.entries.Iterator()
	lok, rok := li.Next(), ri.Next()
	for lok || rok {
		var l, r Entry
		if lok {
			l = li.Value().(Entry)
		}
		if rok {
			r = ri.Value().(Entry)
		}
		switch {
		case !rok || (lok && l.Compare(r) < 0):
			visit(&l, nil)
			lok = li.Next()
		case !lok || l.Compare(r) > 0:
			visit(nil, &r)
			rok = ri.Next()
		default:
			visit(&l, &r)
			lok, rok = li.Next(), ri.Next()
		}
	}
}
