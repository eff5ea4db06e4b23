// Package links extracts pricing and estimate URLs from article text and
// partitions them into a fixed taxonomy of overlapping classes.
//
// Classification is pure and order-independent: every set is deduplicated
// and lexicographically sorted, so two runs over unchanged content produce
// byte-identical output regardless of discovery order.
package links

import (
	"regexp"
	"sort"
	"strings"
)

// Optional locale prefix on calculator URLs, e.g. "en-us/".
const localeSeg = `(?:[a-z]{2}-[a-z]{2}/)?`

// URL terminators: whitespace or markup-closing punctuation.
const urlTail = `[^\s)\]\\"']`

var (
	experienceRE = regexp.MustCompile(`(?i)https?://azure\.com/e/` + urlTail + `+`)
	calculatorRE = regexp.MustCompile(`(?i)https?://azure\.microsoft\.com/` + localeSeg + `pricing/calculator` + urlTail + `*`)

	// Applied to already-extracted calculator URLs.
	calculatorRootRE = regexp.MustCompile(`(?i)^https?://azure\.microsoft\.com/` + localeSeg + `pricing/calculator/?$`)
	sharedEstimateRE = regexp.MustCompile(`(?i)https?://azure\.microsoft\.com/` + localeSeg + `pricing/calculator/?\?` + urlTail + `*shared-estimate=` + urlTail + `+`)
	serviceRE        = regexp.MustCompile(`(?i)https?://azure\.microsoft\.com/` + localeSeg + `pricing/calculator/?\?` + urlTail + `*service=` + urlTail + `+`)
)

// Taxonomy holds every recognized pricing URL partitioned into overlapping
// classes. Usable is the derived set accepted as evidence of a shareable
// estimate: Experience ∪ CalculatorSharedEstimate ∪ CalculatorService.
// Calculator-root links (bare tool links) are never usable.
type Taxonomy struct {
	Experience               []string // direct azure.com/e/ cost-experience URLs
	CalculatorRoot           []string // bare calculator links, no query or fragment
	CalculatorSharedEstimate []string // calculator links carrying shared-estimate=
	CalculatorService        []string // calculator links carrying service=
	CalculatorOther          []string // calculator links other than bare root links
	Calculator               []string // every recognized calculator link
	SharedEstimate           []string // Experience ∪ CalculatorSharedEstimate
	AllMatching              []string // Experience ∪ Calculator
	Usable                   []string
}

// Classify extracts and categorizes every pricing URL in text.
func Classify(text string) Taxonomy {
	experience := sortedUnique(experienceRE.FindAllString(text, -1))
	calcAny := sortedUnique(calculatorRE.FindAllString(text, -1))

	var shared, service, root, other []string
	for _, u := range calcAny {
		if sharedEstimateRE.MatchString(u) {
			shared = append(shared, u)
		}
		if serviceRE.MatchString(u) {
			service = append(service, u)
		}
	}
	for _, u := range calcAny {
		trimmed := strings.TrimRight(u, ").,;")
		if calculatorRootRE.MatchString(trimmed) && !strings.ContainsAny(trimmed, "?#") {
			root = append(root, trimmed)
		} else {
			other = append(other, u)
		}
	}

	shared = sortedUnique(shared)
	service = sortedUnique(service)

	return Taxonomy{
		Experience:               experience,
		CalculatorRoot:           sortedUnique(root),
		CalculatorSharedEstimate: shared,
		CalculatorService:        service,
		CalculatorOther:          sortedUnique(other),
		Calculator:               calcAny,
		SharedEstimate:           union(experience, shared),
		AllMatching:              union(experience, calcAny),
		Usable:                   union(experience, shared, service),
	}
}

// sortedUnique deduplicates and sorts, always returning a non-nil slice so
// empty sets serialize as [] rather than null.
func sortedUnique(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func union(sets ...[]string) []string {
	var all []string
	for _, s := range sets {
		all = append(all, s...)
	}
	return sortedUnique(all)
}
