// Package report reads and writes the tabular workbooks consumed by
// reviewers: the scan-results export and the reconciliation update.
package report

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/models"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/pkg/estimates"
)

const (
	ScanSheet    = "scan-results"
	SummarySheet = "summary"
)

// Required columns; their absence is fatal because silently proceeding
// would produce a misleading comparison.
var (
	requiredScanColumns      = []string{"yml_url", "estimate_link", "criteria_passed"}
	requiredInventoryColumns = []string{"yml_url", "estimate_link"}
)

// Compliant estimate-link shapes, anchored: the export only ever emits
// experience links (A), shared-estimate links (B), and service links (C).
var (
	experienceLinkRE     = regexp.MustCompile(`(?i)^https?://azure\.com/e/\S+$`)
	sharedEstimateLinkRE = regexp.MustCompile(`(?i)^https?://azure\.microsoft\.com/(?:[a-z]{2}-[a-z]{2}/)?pricing/calculator/?\?\S*shared-estimate=\S+$`)
	serviceLinkRE        = regexp.MustCompile(`(?i)^https?://azure\.microsoft\.com/(?:[a-z]{2}-[a-z]{2}/)?pricing/calculator/?\?\S*service=\S+$`)
)

var scanHeader = []string{
	"title",
	"description",
	"azureCategories",
	"ms.date",
	"yml_url",
	"image_download_urls",
	"estimate_link",
	"criteria_passed",
	"failure_reason",
	"yml_path",
	"include_md_path",
	"md_author_name",
	"md_ms_author_name",
}

// CollectEstimateLinks returns every compliant estimate link carried by a
// record, unique, ordered experience → shared-estimate → service. Multiple
// compliant links are all kept so tiered estimates are not lost.
func CollectEstimateLinks(rec models.Record) []string {
	var candidates []string
	for _, list := range [][]string{
		rec.UsableEstimateLinks,
		rec.AzureExperienceLinks,
		rec.SharedEstimateLinks,
		rec.PricingCalculatorLinks,
		rec.AllMatchingLinks,
		rec.CalculatorOtherLinks,
		rec.CalculatorSharedEstimateLinks,
		rec.CalculatorRootLinks,
	} {
		for _, u := range list {
			if u = strings.TrimSpace(u); u != "" {
				candidates = append(candidates, u)
			}
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	ordered := make([]string, 0, len(candidates))
	for _, u := range candidates {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		ordered = append(ordered, u)
	}

	var out []string
	taken := make(map[string]struct{})
	for _, re := range []*regexp.Regexp{experienceLinkRE, sharedEstimateLinkRE, serviceLinkRE} {
		for _, u := range ordered {
			if _, ok := taken[u]; ok {
				continue
			}
			if re.MatchString(u) {
				taken[u] = struct{}{}
				out = append(out, u)
			}
		}
	}
	return out
}

// BuildScanWorkbook writes the scan-results worksheet for the given records.
func BuildScanWorkbook(items []models.Record, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ScanSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	header := toAnySlice(scanHeader)
	if err := f.SetSheetRow(ScanSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, it := range items {
		row := []any{
			it.Title,
			it.Description,
			strings.Join(it.Categories, "; "),
			it.MSDate,
			it.YMLURL,
			strings.Join(it.ImageDownloadURLs, "\n"),
			strings.Join(CollectEstimateLinks(it), "\n"),
			it.CriteriaPassed,
			it.FailureReason,
			it.YMLPath,
			it.IncludeMDPath,
			it.MDAuthorGitHub,
			it.MDMSAuthor,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ScanSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// ScanTable is a loaded scan-results worksheet, kept as raw cells so a
// rewrite preserves every column the scanner's export produced.
type ScanTable struct {
	Header []string
	Rows   [][]string

	urlCol, linkCol, passedCol, statusCol int
}

// LoadScanTable reads the scan-results worksheet from path. Missing
// required columns are a fatal error naming the missing fields. A
// comparison_status column is appended (defaulted to not_applicable) when
// the workbook does not carry one yet.
func LoadScanTable(path string) (*ScanTable, error) {
	header, rows, err := readSheet(path)
	if err != nil {
		return nil, err
	}
	cols, err := requireColumns("scan workbook", header, requiredScanColumns)
	if err != nil {
		return nil, err
	}

	t := &ScanTable{
		Header:    header,
		Rows:      rows,
		urlCol:    cols["yml_url"],
		linkCol:   cols["estimate_link"],
		passedCol: cols["criteria_passed"],
		statusCol: indexOf(header, "comparison_status"),
	}
	if t.statusCol == -1 {
		t.Header = append(t.Header, "comparison_status")
		t.statusCol = len(t.Header) - 1
	}
	for i := range t.Rows {
		for len(t.Rows[i]) < len(t.Header) {
			t.Rows[i] = append(t.Rows[i], "")
		}
		if t.Rows[i][t.statusCol] == "" {
			t.Rows[i][t.statusCol] = estimates.StatusNotApplicable
		}
	}
	return t, nil
}

// EstimateRows projects the table into reconciliation rows, parallel to
// Rows by index.
func (t *ScanTable) EstimateRows() []estimates.Row {
	rows := make([]estimates.Row, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = estimates.Row{
			ScenarioURL:  r[t.urlCol],
			EstimateCell: r[t.linkCol],
			Passed:       estimates.PassedValue(r[t.passedCol]),
		}
	}
	return rows
}

// ApplyStatuses writes classified statuses back into the table.
func (t *ScanTable) ApplyStatuses(rows []estimates.Row) {
	for i := range rows {
		if i < len(t.Rows) && rows[i].Status != "" {
			t.Rows[i][t.statusCol] = rows[i].Status
		}
	}
}

// LoadInventory reads the estimate-scenarios workbook into a normalized
// (scenario key → estimate link) map, last row winning on duplicate keys.
func LoadInventory(path string) (map[string]string, error) {
	header, rows, err := readSheet(path)
	if err != nil {
		return nil, err
	}
	cols, err := requireColumns("inventory workbook", header, requiredInventoryColumns)
	if err != nil {
		return nil, err
	}

	pairs := make([][2]string, 0, len(rows))
	for _, r := range rows {
		pairs = append(pairs, [2]string{cellAt(r, cols["yml_url"]), cellAt(r, cols["estimate_link"])})
	}
	return estimates.BuildInventory(pairs), nil
}

// WriteComparison rewrites the workbook at path with the updated scan table
// and a summary sheet.
func WriteComparison(path string, t *ScanTable, sum estimates.Summary, scanDate time.Time, commit string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ScanSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	header := toAnySlice(t.Header)
	if err := f.SetSheetRow(ScanSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, r := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := toAnySlice(r)
		if err := f.SetSheetRow(ScanSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	summaryRows := [][2]any{
		{"Metric", "Value"},
		{"Total scanned scenarios", sum.Total},
		{"Scenarios criteria_passed = TRUE", sum.Passed},
		{"Matched inventory scenarios (criteria_passed = TRUE)", sum.MatchedInventory},
		{estimates.StatusSameEstimate, sum.SameEstimate},
		{estimates.StatusNewEstimate, sum.NewEstimate},
		{estimates.StatusNewCandidate, sum.NewCandidate},
		{"Scan date (UTC)", scanDate.UTC().Format(time.RFC3339)},
		{"Repo commit", commit},
	}
	for i, r := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := []any{r[0], r[1]}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// readSheet loads the first sheet of a workbook as header + data rows.
func readSheet(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("workbook %s has no header row", path)
	}
	return rows[0], rows[1:], nil
}

// requireColumns maps required column names to indexes, failing with a
// descriptive error listing every missing field.
func requireColumns(what string, header, required []string) (map[string]int, error) {
	cols := make(map[string]int, len(required))
	var missing []string
	for _, name := range required {
		idx := indexOf(header, name)
		if idx == -1 {
			missing = append(missing, name)
			continue
		}
		cols[name] = idx
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%s missing required columns: %v (found: %v)", what, missing, header)
	}
	return cols, nil
}

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
