package agg

import "strings"

// renameArrow separates the old and new halves of a rename in numstat output.
const renameArrow = " => "

// pathMapping tracks historical paths to the file's present identity. The
// log is walked newest-first, so a rename's target may itself have been
// renamed by a commit already seen; record therefore stores the resolved
// terminal path, keeping resolve a single lookup per file-line.
type pathMapping struct {
	oldToNew map[string]string
}

func newPathMapping() *pathMapping {
	return &pathMapping{oldToNew: make(map[string]string)}
}

// record notes that oldPath became newPath in a later commit.
func (m *pathMapping) record(oldPath, newPath string) {
	if oldPath == "" || newPath == "" || oldPath == newPath {
		return
	}
	m.oldToNew[oldPath] = m.resolve(newPath)
}

// resolve maps a historical path to its canonical (current) path, or
// returns the path unchanged if no rename was recorded for it.
func (m *pathMapping) resolve(path string) string {
	if canonical, ok := m.oldToNew[path]; ok {
		return canonical
	}
	return path
}

// parseRenamePath detects and splits git's three rename notations:
//
//	src/{old => new}/file.go   partial-directory rename
//	{old.go => new.go}         whole-path rename, fully brace-wrapped
//	old.go => new.go           plain rename, no braces
//
// It returns the full old and new paths and whether the input was a rename.
// Malformed notation yields empty paths with isRename true, which the
// caller then discards.
func parseRenamePath(path string) (oldPath, newPath string, isRename bool) {
	braceStart := strings.Index(path, "{")
	if braceStart == -1 {
		if !strings.Contains(path, renameArrow) {
			return "", "", false
		}
		// Plain format: "old => new"
		parts := strings.SplitN(path, renameArrow, 2)
		return parts[0], parts[1], true
	}

	braceEnd := strings.Index(path, "}")
	if braceEnd == -1 || braceStart >= braceEnd {
		// Has '{' but no matching '}': unparseable rename
		return "", "", true
	}

	prefix := path[:braceStart]
	renamePart := path[braceStart+1 : braceEnd]
	suffix := path[braceEnd+1:]

	if !strings.Contains(renamePart, renameArrow) {
		return "", "", true
	}

	renameParts := strings.SplitN(renamePart, renameArrow, 2)
	oldPath = collapsePath(prefix + renameParts[0] + suffix)
	newPath = collapsePath(prefix + renameParts[1] + suffix)
	return oldPath, newPath, true
}

// collapsePath cleans up the double slashes left behind when a brace half
// is empty, e.g. "src/{ => lib}/util.go" producing "src//util.go".
func collapsePath(path string) string {
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	return path
}

// containsRenameNotation reports whether a path still carries rename
// syntax after normalization; such paths are discarded rather than
// aggregated under a malformed key.
func containsRenameNotation(path string) bool {
	return strings.Contains(path, "=>") || strings.ContainsAny(path, "{}")
}
