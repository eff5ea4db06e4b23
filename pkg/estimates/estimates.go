// Package estimates normalizes scenario and estimate URLs and reconciles
// scan results against a previously recorded inventory of accepted
// estimate links.
package estimates

import (
	"net/url"
	"sort"
	"strings"
)

// Reconciliation status codes.
const (
	StatusNotApplicable = "not_applicable"
	StatusSameEstimate  = "matched_existing_scenario_same_estimate"
	StatusNewEstimate   = "matched_existing_scenario_new_estimate"
	StatusNewCandidate  = "new_estimate_candidate"
)

// Query parameters that define an estimate's identity; everything else is
// dropped before comparison.
var keepParams = map[string]bool{
	"shared-estimate": true,
	"service":         true,
}

// NormalizeScenarioURL canonicalizes an identity URL for inventory matching:
// scheme and host lowercased, trailing slash stripped, query and fragment
// dropped.
func NormalizeScenarioURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return (&url.URL{
		Scheme: strings.ToLower(u.Scheme),
		Host:   strings.ToLower(u.Host),
		Path:   strings.TrimRight(u.Path, "/"),
	}).String()
}

// NormalizeEstimateURL canonicalizes an estimate link so formatting
// differences do not create false mismatches: scheme and host lowercased,
// trailing slash stripped, fragment dropped, and the query reduced to the
// identity-defining parameters, sorted for deterministic comparison.
func NormalizeEstimateURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	type pair struct{ k, v string }
	var kept []pair
	for k, vs := range u.Query() {
		lk := strings.ToLower(k)
		if !keepParams[lk] {
			continue
		}
		for _, v := range vs {
			if v = strings.TrimSpace(v); v != "" {
				kept = append(kept, pair{lk, v})
			}
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].k != kept[j].k {
			return kept[i].k < kept[j].k
		}
		return kept[i].v < kept[j].v
	})
	q := url.Values{}
	for _, p := range kept {
		q.Add(p.k, p.v)
	}

	return (&url.URL{
		Scheme:   strings.ToLower(u.Scheme),
		Host:     strings.ToLower(u.Host),
		Path:     strings.TrimRight(u.Path, "/"),
		RawQuery: q.Encode(),
	}).String()
}

// SplitLinks splits a multi-link cell (newline- or semicolon-delimited) into
// ordered unique normalized links.
func SplitLinks(cell string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, chunk := range strings.Split(strings.ReplaceAll(cell, ";", "\n"), "\n") {
		n := NormalizeEstimateURL(chunk)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// PassedValue reports whether a criteria_passed cell is truthy.
func PassedValue(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// Row is one scan-result row under reconciliation.
type Row struct {
	ScenarioURL  string // raw identity URL
	EstimateCell string // raw estimate_link cell, possibly multi-link
	Passed       bool
	Status       string // filled by Classify
}

// Summary counts rows by reconciliation outcome.
type Summary struct {
	Total            int
	Passed           int
	MatchedInventory int
	SameEstimate     int
	NewEstimate      int
	NewCandidate     int
}

// BuildInventory normalizes (scenario URL, estimate link) pairs into the
// inventory map. Duplicate scenario keys are last-write-wins; pairs with an
// empty normalized key or link are skipped.
func BuildInventory(pairs [][2]string) map[string]string {
	inv := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key := NormalizeScenarioURL(p[0])
		link := NormalizeEstimateURL(p[1])
		if key == "" || link == "" {
			continue
		}
		inv[key] = link
	}
	return inv
}

// Classify labels every row in place against the inventory and returns the
// run summary. Rows failing the pass verdict are not_applicable.
func Classify(rows []Row, inventory map[string]string) Summary {
	sum := Summary{Total: len(rows)}
	for i := range rows {
		row := &rows[i]
		if !row.Passed {
			row.Status = StatusNotApplicable
			continue
		}
		sum.Passed++

		invLink, ok := inventory[NormalizeScenarioURL(row.ScenarioURL)]
		if !ok {
			row.Status = StatusNewCandidate
			sum.NewCandidate++
			continue
		}
		sum.MatchedInventory++

		status := StatusNewEstimate
		for _, link := range SplitLinks(row.EstimateCell) {
			if link == invLink {
				status = StatusSameEstimate
				break
			}
		}
		row.Status = status
		if status == StatusSameEstimate {
			sum.SameEstimate++
		} else {
			sum.NewEstimate++
		}
	}
	return sum
}

// NeedsReview returns the passed rows whose estimate is not a confirmed
// match against the inventory, in input order.
func NeedsReview(rows []Row) []Row {
	var out []Row
	for _, row := range rows {
		if row.Passed && row.Status != StatusSameEstimate {
			out = append(out, row)
		}
	}
	return out
}
