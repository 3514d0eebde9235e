package utils

import (
	stdpath "path"
	"strings"
)

// FixAndCleanPath
// The upper layer of the root directory is still the root directory.
// So ".." And "." will be cleared
// for example
// 1. ".." or "." => "/"
// 2. "../..." or "./..." => "/..."
// 3. "../.x." or "./.x." => "/.x."
// 4. "x//\\y" = > "/z/x"
func FixAndCleanPath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return stdpath.Clean(path)
}

// PathAddSeparatorSuffix Add path '/' suffix
// for example /root => /root/
func PathAddSeparatorSuffix(path string) string {
	if !strings.HasSuffix(path, "/") {
		path = path + "/"
	}
	return path
}

// PathEqual judge path is equal
func PathEqual(path1, path2 string) bool {
	return FixAndCleanPath(path1) == FixAndCleanPath(path2)
}

// SplitPath splits a drive path into its non-empty segments.
// "a//b/" => ["a", "b"], "/" => [].
func SplitPath(path string) []string {
	segs := make([]string, 0, 4)
	for _, seg := range strings.Split(FixAndCleanPath(path), "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}
