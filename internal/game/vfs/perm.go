package vfs

// Mode is one of the three access checks.
type Mode byte

const (
	// ModeRead asks for read access.
	ModeRead Mode = 'r'
	// ModeWrite asks for write access.
	ModeWrite Mode = 'w'
	// ModeExec asks for execute/traverse access.
	ModeExec Mode = 'x'
)

// DefaultPermissions applies when a node carries no permission string.
const DefaultPermissions = "rwxr-xr-x"

// RootUser bypasses all permission checks.
const RootUser = "root"

// OwnerUser is the sentinel name that selects the owner permission
// triple. Every other non-root user is evaluated against the "other"
// bits; the group bits (indexes 3-5) exist in the data but are never
// consulted.
const OwnerUser = ""

// CanAccess reports whether user may access node with the given mode.
func CanAccess(node *Node, mode Mode, user string) bool {
	if user == RootUser {
		return true
	}

	permissions := node.Permissions
	if permissions == "" {
		permissions = DefaultPermissions
	}
	if len(permissions) != 9 {
		return false
	}

	var offset int
	switch mode {
	case ModeRead:
		offset = 0
	case ModeWrite:
		offset = 1
	case ModeExec:
		offset = 2
	default:
		return false
	}

	if user == OwnerUser && permissions[offset] == byte(mode) {
		return true
	}
	return permissions[6+offset] == byte(mode)
}
