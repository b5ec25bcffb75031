package explorer

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Order selects a traversal strategy
type Order string

// Traversal orders
const (
	DepthFirst   Order = "dfs"
	BreadthFirst Order = "bfs"
)

// ParseOrder converts "dfs" or "bfs" to an Order
func ParseOrder(s string) (Order, error) {
	switch o := Order(s); o {
	case DepthFirst, BreadthFirst:
		return o, nil
	}
	return "", fmt.Errorf("unknown traversal order %q", s)
}

// Node is a visited tree position. Path is empty for the root.
type Node struct {
	Path    []string
	SongIDs []string
}

// Depth returns the number of levels below the root
func (n Node) Depth() int {
	return len(n.Path)
}

type frame struct {
	path []string
	node *node
}

// Walk visits every node, children in key order, until fn returns false
func (e *Explorer) Walk(order Order, fn func(Node) bool) {
	pending := []frame{{node: e.root}}
	for len(pending) > 0 {
		var f frame
		if order == BreadthFirst {
			f, pending = pending[0], pending[1:]
		} else {
			f, pending = pending[len(pending)-1], pending[:len(pending)-1]
		}

		ids := lo.Keys(f.node.songs)
		slices.Sort(ids)
		if !fn(Node{Path: f.path, SongIDs: ids}) {
			return
		}

		keys := f.node.childKeys()
		if order != BreadthFirst {
			slices.Reverse(keys)
		}
		for _, k := range keys {
			pending = append(pending, frame{
				path: append(slices.Clone(f.path), k),
				node: f.node.children[k],
			})
		}
	}
}
