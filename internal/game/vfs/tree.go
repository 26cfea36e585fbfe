package vfs

import "strings"

// Tree is one host's filesystem.
type Tree struct {
	root *Node
}

// NewTree wraps a root directory node.
func NewTree(root *Node) *Tree {
	return &Tree{root: root}
}

// Root returns the root directory.
func (t *Tree) Root() *Node {
	return t.root
}

// Lookup walks an absolute path and returns the node it names. Empty
// segments (leading slash, doubled slashes, trailing slash) are skipped,
// so "/" resolves to the root.
func (t *Tree) Lookup(path string) (*Node, bool) {
	current := t.root
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		child, ok := current.Child(segment)
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, true
}
