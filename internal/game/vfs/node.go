// Package vfs implements the fixed in-memory filesystems the terminal
// exposes: node trees with POSIX-style permission strings, path
// resolution, and access checks.
//
// The trees are story data. They are built once at startup and never
// mutated afterwards.
package vfs

// Kind discriminates the two node shapes.
type Kind int

const (
	// KindDirectory is a node with children.
	KindDirectory Kind = iota
	// KindFile is a leaf node with content.
	KindFile
)

// Node is a single filesystem entry.
//
// Permissions is a 9-character string (e.g. "rwxr-xr-x"). An empty string
// is treated as DefaultPermissions. Hidden entries are omitted from
// listings for non-root users but remain addressable by path; only the
// permission bits block direct access.
type Node struct {
	Kind        Kind
	Permissions string
	Hidden      bool
	Executable  bool
	Encrypted   bool
	Content     string

	names    []string
	children map[string]*Node
}

// NewDir returns an empty directory node.
func NewDir(permissions string) *Node {
	return &Node{
		Kind:        KindDirectory,
		Permissions: permissions,
		children:    make(map[string]*Node),
	}
}

// NewFile returns a file node with fixed content.
func NewFile(permissions, content string) *Node {
	return &Node{
		Kind:        KindFile,
		Permissions: permissions,
		Content:     content,
	}
}

// Add attaches a child under name, preserving insertion order for
// listings. It returns the receiver so tree literals can chain. Adding to
// a file or reusing a name panics: trees are compiled-in data and a bad
// shape is a programming error.
func (n *Node) Add(name string, child *Node) *Node {
	if n.Kind != KindDirectory {
		panic("vfs: add child to non-directory")
	}
	if _, dup := n.children[name]; dup {
		panic("vfs: duplicate child " + name)
	}
	n.names = append(n.names, name)
	n.children[name] = child
	return n
}

// Child returns the named child, if present.
func (n *Node) Child(name string) (*Node, bool) {
	if n.Kind != KindDirectory {
		return nil, false
	}
	child, ok := n.children[name]
	return child, ok
}

// ChildNames returns the child names in insertion order.
func (n *Node) ChildNames() []string {
	out := make([]string, len(n.names))
	copy(out, n.names)
	return out
}
