package service

// ResolvePath derives a folder's display path from its name and its
// parent's path. A root folder's path is its own name; a child's path is
// the parent path joined with "/". Pure and total: an absent or empty
// parent path degrades to just the name rather than failing.
func ResolvePath(name string, parentPath *string) string {
	if parentPath == nil || *parentPath == "" {
		return name
	}
	return *parentPath + "/" + name
}
