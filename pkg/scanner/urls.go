package scanner

import "strings"

const learnBase = "https://learn.microsoft.com/en-us/azure/architecture/"

// GitHubBlobURL builds the browsable GitHub URL for a repository file.
func GitHubBlobURL(slug, branch, repoRel string) string {
	return "https://github.com/" + slug + "/blob/" + branch + "/" + strings.TrimLeft(repoRel, "/")
}

// RawDownloadURL builds the raw.githubusercontent.com URL for a repository file.
func RawDownloadURL(slug, branch, repoRel string) string {
	return "https://raw.githubusercontent.com/" + slug + "/" + branch + "/" + strings.TrimLeft(repoRel, "/")
}

// LearnURL derives a document's canonical public URL from its repo-relative
// metadata path. This is the identity URL used as the reconciliation key.
func LearnURL(repoRelYML string) string {
	p := strings.ReplaceAll(repoRelYML, `\`, "/")
	p = strings.TrimPrefix(p, "docs/")
	for _, ext := range []string{".yml", ".yaml"} {
		if strings.HasSuffix(strings.ToLower(p), ext) {
			p = p[:len(p)-len(ext)]
			break
		}
	}
	return learnBase + p
}
