// Package models defines data structures shared across the scanner:
// per-document records, run counters, and runtime configuration.
package models

// Record is the scan outcome for one metadata document. It is constructed
// once per scan run and never mutated after evaluation finishes.
//
// FailureReason is non-empty exactly when CriteriaPassed is false; at most
// one reason is recorded per document, selected by rule priority.
type Record struct {
	CriteriaPassed bool     `json:"criteria_passed"`
	FailureReason  string   `json:"failure_reason"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Categories     []string `json:"azureCategories"`
	MSDate         string   `json:"ms_date"`

	YMLURL             string `json:"yml_url"`
	YMLGitHubURL       string `json:"yml_github_url"`
	YMLPath            string `json:"yml_path"`
	IncludeMDPath      string `json:"include_md_path"`
	IncludeMDGitHubURL string `json:"include_md_github_url"`
	MDAuthorGitHub     string `json:"md_author_github"`
	MDMSAuthor         string `json:"md_ms_author"`

	// Parallel lists, one entry per image reference in first-seen order.
	ImagePaths        []string `json:"image_paths"`
	ImageDownloadURLs []string `json:"image_download_urls"`
	ImageExistsInRepo []bool   `json:"image_exists_in_repo"`
	ImageFormats      []string `json:"image_formats"`

	// Link taxonomy, every list deduplicated and lexicographically sorted.
	AzureExperienceLinks          []string `json:"azure_experience_links"`
	CalculatorRootLinks           []string `json:"calculator_root_links"`
	CalculatorSharedEstimateLinks []string `json:"calculator_shared_estimate_links"`
	CalculatorServiceLinks        []string `json:"calculator_service_links"`
	CalculatorOtherLinks          []string `json:"calculator_other_links"`
	PricingCalculatorLinks        []string `json:"pricing_calculator_links"`
	SharedEstimateLinks           []string `json:"shared_estimate_links"`
	AllMatchingLinks              []string `json:"all_matching_links"`
	UsableEstimateLinks           []string `json:"usable_estimate_links"`
}

// Counters aggregates how far each document made it through the decision
// pipeline during a single scan run.
type Counters struct {
	YMLTotal          int `json:"yml_total"`
	YMLParsed         int `json:"yml_parsed"`
	HasContent        int `json:"has_content"`
	HasInclude        int `json:"has_include"`
	IncludeResolved   int `json:"include_resolved"`
	IncludeMDExists   int `json:"include_md_exists"`
	HasCalculatorLink int `json:"has_calculator_link"`
	HasUsableLink     int `json:"has_usable_link"`
	Passed            int `json:"passed"`
	Failed            int `json:"failed"`
}

// Failure is one entry in the bounded diagnostics sample.
type Failure struct {
	YMLPath       string `json:"yml_path"`
	Reason        string `json:"reason"`
	IncludeMDPath string `json:"include_md_path,omitempty"`
}

// ResultsDoc is the top-level scan-results.json document.
type ResultsDoc struct {
	Repo     string   `json:"repo"`
	Branch   string   `json:"branch"`
	DocsRoot string   `json:"docs_root"`
	Count    int      `json:"count"`
	Items    []Record `json:"items"`
}

// DebugDoc is the optional scan-debug.json document.
type DebugDoc struct {
	Counters       Counters  `json:"counts"`
	FailuresTotal  int       `json:"failures_total"`
	FailuresSample []Failure `json:"failures_sample"`
}
