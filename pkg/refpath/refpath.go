// Package refpath resolves relative references found in document markup
// (include targets, image sources) to repository-relative paths.
//
// Resolution is a pure function of its inputs plus the symlink state of the
// filesystem; a reference that escapes the repository root is rejected.
package refpath

import (
	"path/filepath"
	"regexp"
	"strings"
)

// schemeRE matches absolute external references (http://, mailto://, ...).
var schemeRE = regexp.MustCompile(`^[a-zA-Z]+://`)

// Clean strips markup leftovers from a raw reference: surrounding angle
// brackets, anything after the first whitespace (link titles), and stray
// quote/bracket/parenthesis characters.
func Clean(ref string) string {
	ref = strings.TrimSpace(ref)
	if len(ref) >= 2 && strings.HasPrefix(ref, "<") && strings.HasSuffix(ref, ">") {
		ref = strings.TrimSpace(ref[1 : len(ref)-1])
	}
	if fields := strings.Fields(ref); len(fields) > 0 {
		ref = fields[0]
	} else {
		ref = ""
	}
	ref = strings.Trim(ref, `"`)
	ref = strings.Trim(ref, `'`)
	ref = strings.TrimSpace(ref)
	return strings.Trim(ref, `()<>[]`)
}

// StripQueryFragment removes a fragment and query string from a reference.
func StripQueryFragment(s string) string {
	s, _, _ = strings.Cut(s, "#")
	s, _, _ = strings.Cut(s, "?")
	return s
}

// Resolve converts a raw reference found in a file under baseDir into a
// slash-separated path relative to repoRoot. The second return value is
// false when the reference is empty, external, or resolves outside repoRoot.
func Resolve(baseDir, rawRef, repoRoot string) (string, bool) {
	ref := Clean(rawRef)
	if ref == "" || schemeRE.MatchString(ref) {
		return "", false
	}
	ref = StripQueryFragment(ref)
	for strings.HasPrefix(ref, "./") {
		ref = ref[2:]
	}
	ref = strings.TrimLeft(ref, "/")
	if ref == "" {
		return "", false
	}

	abs, err := filepath.Abs(filepath.Join(baseDir, filepath.FromSlash(ref)))
	if err != nil {
		return "", false
	}
	root, err := filepath.Abs(repoRoot)
	if err != nil {
		return "", false
	}
	abs = resolveSymlinks(abs)
	root = resolveSymlinks(root)

	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		// Escapes the repository tree.
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// resolveSymlinks resolves the longest existing prefix of p through symlinks
// and reattaches the not-yet-existing tail unchanged, so references to files
// that do not exist still resolve deterministically.
func resolveSymlinks(p string) string {
	if r, err := filepath.EvalSymlinks(p); err == nil {
		return r
	}
	p = filepath.Clean(p)
	dir := filepath.Dir(p)
	if dir == p {
		return p
	}
	return filepath.Join(resolveSymlinks(dir), filepath.Base(p))
}
