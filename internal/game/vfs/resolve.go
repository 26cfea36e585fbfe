package vfs

import "strings"

// Resolve turns user input into an absolute path against cwd.
//
// The rules are deliberately simple: absolute input is returned verbatim
// (".." and "." inside it are not normalized, doubled slashes are not
// collapsed), ".." pops one segment off cwd with "/" as the floor, "."
// and empty input return cwd, and anything else is joined onto cwd. The
// result may name a node that does not exist; callers validate via
// Tree.Lookup.
func Resolve(input, cwd string) string {
	if input == "" {
		return cwd
	}
	if strings.HasPrefix(input, "/") {
		return input
	}
	if input == ".." {
		parts := strings.Split(cwd, "/")
		parts = parts[:len(parts)-1]
		parent := strings.Join(parts, "/")
		if parent == "" {
			return "/"
		}
		return parent
	}
	if input == "." {
		return cwd
	}
	if cwd == "/" {
		return "/" + input
	}
	return cwd + "/" + input
}
