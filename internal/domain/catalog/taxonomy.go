package catalog

import (
	"sort"
	"strings"
)

// node is one branch of the four-level classification tree.
type node struct {
	children map[string]*node
	order    []string // insertion order, for stable tool lists
}

func newNode() *node { return &node{children: map[string]*node{}} }

func (n *node) child(key string) *node {
	c, ok := n.children[key]
	if !ok {
		c = newNode()
		n.children[key] = c
		n.order = append(n.order, key)
	}
	return c
}

// Index is the hierarchical lookup built from the flat master list:
// Category → Sub-Category → Sub-Sub-Category → Tools for skills,
// certProvider → certName → certLevel → validYears for certificates.
// It exists to compute cascading filter option sets; rebuild it whenever
// the master list changes (expected once, at load).
type Index struct {
	kind    Kind
	columns []Column
	root    *node
}

// BuildIndex constructs the index. Missing classification fields land in
// the Other bucket. An empty master list yields an empty index.
func BuildIndex(kind Kind, items []Item) *Index {
	ix := &Index{kind: kind, columns: Columns(kind), root: newNode()}
	for _, it := range items {
		n := ix.root
		for _, col := range ix.columns {
			v := it.Field(col)
			if v == "" {
				v = OtherBucket
			}
			n = n.child(v)
		}
	}
	return ix
}

// OptionsFor returns the sorted set of valid values for column, restricted
// to branches reachable under the already-selected ancestor filters. The
// root column is never restricted. A descendant column with no selected
// ancestors unions across every branch so the default option set stays
// non-empty.
func (ix *Index) OptionsFor(column Column, filters FilterState) ([]string, error) {
	depth := -1
	for i, c := range ix.columns {
		if c == column {
			depth = i
			break
		}
	}
	if depth < 0 {
		return nil, ErrUnknownColumn
	}

	set := map[string]struct{}{}
	ix.collect(ix.root, 0, depth, filters, set)

	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out, nil
}

func (ix *Index) collect(n *node, level, target int, filters FilterState, set map[string]struct{}) {
	if level == target {
		for v := range n.children {
			set[v] = struct{}{}
		}
		return
	}
	selected := filters.Selected(ix.columns[level])
	for v, child := range n.children {
		if len(selected) > 0 && !filters.Contains(ix.columns[level], v) {
			continue
		}
		ix.collect(child, level+1, target, filters, set)
	}
}

// Empty reports whether the index holds no branches at all.
func (ix *Index) Empty() bool { return len(ix.root.children) == 0 }
