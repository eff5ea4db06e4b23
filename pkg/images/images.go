// Package images extracts image references from article text.
//
// Five markup conventions contribute candidates, concatenated in a fixed
// precedence: markdown inline images, :::image block directives, raw HTML
// <img> tags, <source srcset> variants, and reference-style images resolved
// against the document's label definitions. The combined list is
// deduplicated preserving first-seen order.
package images

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/pkg/refpath"
)

var (
	inlineRE = regexp.MustCompile(`!\[[^\]]*\]\(([^)]+)\)`)
	refUseRE = regexp.MustCompile(`!\[[^\]]*\]\[([^\]]+)\]`)
	refDefRE = regexp.MustCompile(`(?im)^\[([^\]]+)\]:\s*(\S+)`)

	blockRE    = regexp.MustCompile(`(?im)^\s*:::image\b[^\n]*`)
	blockSrcRE = regexp.MustCompile(`(?i)\bsource\s*=\s*(?:"([^"]+)"|'([^']+)'|([^\s>]+))`)

	// Known non-content images: browse thumbnails, icons, social cards.
	excludeRE = regexp.MustCompile(`(?i)(/browse/thumbs/|\bthumbs/|thumbnail|social_image|/icons/)`)
)

// Extract returns every image reference in text, cleaned, filtered against
// the non-content exclusion pattern, and deduplicated in first-seen order.
func Extract(text string) []string {
	var refs []string
	add := func(raw string) {
		raw = refpath.Clean(raw)
		if raw == "" || excludeRE.MatchString(raw) {
			return
		}
		refs = append(refs, raw)
	}

	for _, m := range inlineRE.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}

	for _, line := range blockRE.FindAllString(text, -1) {
		if m := blockSrcRE.FindStringSubmatch(line); m != nil {
			add(firstGroup(m))
		}
	}

	// Raw HTML embedded in the article. The markdown around the tags parses
	// as text nodes, so only real <img>/<source> elements contribute.
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
		doc.Find("img").Each(func(_ int, s *goquery.Selection) {
			if src, ok := s.Attr("src"); ok {
				add(src)
			}
		})
		doc.Find("source").Each(func(_ int, s *goquery.Selection) {
			srcset, ok := s.Attr("srcset")
			if !ok {
				return
			}
			// First candidate only; descriptors after whitespace are dropped.
			first, _, _ := strings.Cut(srcset, ",")
			if fields := strings.Fields(first); len(fields) > 0 {
				add(fields[0])
			}
		})
	}

	defs := referenceDefinitions(text)
	for _, m := range refUseRE.FindAllStringSubmatch(text, -1) {
		if target := defs[strings.ToLower(strings.TrimSpace(m[1]))]; target != "" {
			add(target)
		}
	}

	return dedupe(refs)
}

// referenceDefinitions collects "[label]: target" definitions from anywhere
// in the document, keyed by lowercased label.
func referenceDefinitions(text string) map[string]string {
	defs := make(map[string]string)
	for _, m := range refDefRE.FindAllStringSubmatch(text, -1) {
		defs[strings.ToLower(strings.TrimSpace(m[1]))] = refpath.Clean(m[2])
	}
	return defs
}

func firstGroup(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
