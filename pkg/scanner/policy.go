package scanner

import "github.com/vaheminasyan2/MS-Architecture-Center-Scanner/pkg/links"

// Failure reason codes. At most one is recorded per document.
const (
	ReasonParseFailed         = "parse_failed"
	ReasonMissingContent      = "missing_content"
	ReasonNoIncludeDirective  = "no_include_directive"
	ReasonIncludeUnresolvable = "include_unresolvable"
	ReasonIncludeMissing      = "include_missing"
	ReasonCalculatorOnly      = "no_estimate_link_calculator_tool_link_only"
	ReasonNoEstimateLink      = "no_estimate_link"
)

// evalState is everything the decision policy can observe about a document.
// Fields are filled progressively; once a gate fails the rest stay zero.
type evalState struct {
	parsed          bool
	hasContent      bool
	hasInclude      bool
	includeResolved bool
	includeExists   bool
	taxonomy        links.Taxonomy
	imageCount      int
}

// decisionPolicy is the single source of the pass/fail rule: an ordered list
// of predicate→reason pairs where the first firing predicate is terminal.
// Rule revisions are edits to this table; an earlier revision gated on
// imageCount here, the current rule does not.
var decisionPolicy = []struct {
	failed func(evalState) bool
	reason string
}{
	{func(s evalState) bool { return !s.parsed }, ReasonParseFailed},
	{func(s evalState) bool { return !s.hasContent }, ReasonMissingContent},
	{func(s evalState) bool { return !s.hasInclude }, ReasonNoIncludeDirective},
	{func(s evalState) bool { return !s.includeResolved }, ReasonIncludeUnresolvable},
	{func(s evalState) bool { return !s.includeExists }, ReasonIncludeMissing},
	{func(s evalState) bool {
		return len(s.taxonomy.Usable) == 0 && len(s.taxonomy.Calculator) > 0
	}, ReasonCalculatorOnly},
	{func(s evalState) bool { return len(s.taxonomy.Usable) == 0 }, ReasonNoEstimateLink},
}

// decide applies the policy. Returns (true, "") when every predicate holds.
func decide(s evalState) (passed bool, reason string) {
	for _, rule := range decisionPolicy {
		if rule.failed(s) {
			return false, rule.reason
		}
	}
	return true, ""
}
