package scanner

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeTree creates files (relative path → contents) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func testConfig(root string) models.ScanConfig {
	return models.ScanConfig{
		RepoRoot: root,
		RepoSlug: "MicrosoftDocs/architecture-center",
		Branch:   "main",
		DocsRoot: "docs",
	}
}

const passingYML = `### YamlMime:Architecture
metadata:
  title: Scalable web app
  description: A reference architecture.
  author: ghuser
  ms.author: msuser
  ms.date: 03/15/2026
azureCategories:
  - web
  - compute
content: |
  [!INCLUDE[](scalable-web-app-content.md)]
`

const passingMD = `---
author: fm-ghuser
---
# Scalable web app

![Architecture diagram](./media/web-app.png)

Open the prebuilt estimate: https://azure.com/e/abc123
Or start from the [calculator](https://azure.microsoft.com/pricing/calculator).
`

func TestScanPassingDocument(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"docs/web/scalable-web-app.yml":        passingYML,
		"docs/web/scalable-web-app-content.md": passingMD,
		"docs/web/media/web-app.png":           "png-bytes",
	})

	res, err := Scan(testConfig(root), testLogger())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(res.Records))
	}
	rec := res.Records[0]

	if !rec.CriteriaPassed {
		t.Fatalf("CriteriaPassed = false, reason %q", rec.FailureReason)
	}
	if rec.FailureReason != "" {
		t.Errorf("FailureReason = %q, want empty", rec.FailureReason)
	}
	if want := "https://learn.microsoft.com/en-us/azure/architecture/web/scalable-web-app"; rec.YMLURL != want {
		t.Errorf("YMLURL = %q, want %q", rec.YMLURL, want)
	}
	if want := "docs/web/scalable-web-app-content.md"; rec.IncludeMDPath != want {
		t.Errorf("IncludeMDPath = %q, want %q", rec.IncludeMDPath, want)
	}
	if rec.Title != "Scalable web app" {
		t.Errorf("Title = %q", rec.Title)
	}
	if !reflect.DeepEqual(rec.Categories, []string{"web", "compute"}) {
		t.Errorf("Categories = %v", rec.Categories)
	}
	if rec.MSDate != "03/15/2026" {
		t.Errorf("MSDate = %q", rec.MSDate)
	}
	// Front matter author wins over the metadata file; ms.author falls back.
	if rec.MDAuthorGitHub != "fm-ghuser" {
		t.Errorf("MDAuthorGitHub = %q, want fm-ghuser", rec.MDAuthorGitHub)
	}
	if rec.MDMSAuthor != "msuser" {
		t.Errorf("MDMSAuthor = %q, want msuser", rec.MDMSAuthor)
	}

	if !reflect.DeepEqual(rec.ImagePaths, []string{"docs/web/media/web-app.png"}) {
		t.Errorf("ImagePaths = %v", rec.ImagePaths)
	}
	if !reflect.DeepEqual(rec.ImageExistsInRepo, []bool{true}) {
		t.Errorf("ImageExistsInRepo = %v", rec.ImageExistsInRepo)
	}
	if !reflect.DeepEqual(rec.ImageFormats, []string{"png"}) {
		t.Errorf("ImageFormats = %v", rec.ImageFormats)
	}
	want := "https://raw.githubusercontent.com/MicrosoftDocs/architecture-center/main/docs/web/media/web-app.png"
	if !reflect.DeepEqual(rec.ImageDownloadURLs, []string{want}) {
		t.Errorf("ImageDownloadURLs = %v", rec.ImageDownloadURLs)
	}

	if !reflect.DeepEqual(rec.UsableEstimateLinks, []string{"https://azure.com/e/abc123"}) {
		t.Errorf("UsableEstimateLinks = %v", rec.UsableEstimateLinks)
	}
	if len(rec.CalculatorRootLinks) != 1 {
		t.Errorf("CalculatorRootLinks = %v", rec.CalculatorRootLinks)
	}

	if res.Counters.Passed != 1 || res.Counters.Failed != 0 {
		t.Errorf("Counters = %+v", res.Counters)
	}
	if len(res.Failures) != 0 {
		t.Errorf("Failures = %v, want empty", res.Failures)
	}
}

func TestScanFailureReasons(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		reason string
	}{
		{
			"parse failed",
			map[string]string{"docs/a.yml": "content: [unterminated"},
			ReasonParseFailed,
		},
		{
			"missing content",
			map[string]string{"docs/a.yml": "title: No content here\n"},
			ReasonMissingContent,
		},
		{
			"no include directive",
			map[string]string{"docs/a.yml": "content: |\n  Just prose, no directive.\n"},
			ReasonNoIncludeDirective,
		},
		{
			"include unresolvable",
			map[string]string{"docs/a.yml": "content: |\n  [!INCLUDE[](../../../../outside-content.md)]\n"},
			ReasonIncludeUnresolvable,
		},
		{
			"include missing",
			map[string]string{"docs/a.yml": "content: |\n  [!INCLUDE[](a-content.md)]\n"},
			ReasonIncludeMissing,
		},
		{
			"calculator link only",
			map[string]string{
				"docs/a.yml":        "content: |\n  [!INCLUDE[](a-content.md)]\n",
				"docs/a-content.md": "![d](media/d.png)\n\nhttps://azure.microsoft.com/pricing/calculator\n",
			},
			ReasonCalculatorOnly,
		},
		{
			"no estimate link at all",
			map[string]string{
				"docs/a.yml":        "content: |\n  [!INCLUDE[](a-content.md)]\n",
				"docs/a-content.md": "![d](media/d.png)\n\nNo pricing links.\n",
			},
			ReasonNoEstimateLink,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tt.files)

			res, err := Scan(testConfig(root), testLogger())
			if err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			rec := res.Records[0]
			if rec.CriteriaPassed {
				t.Fatal("CriteriaPassed = true, want false")
			}
			if rec.FailureReason != tt.reason {
				t.Errorf("FailureReason = %q, want %q", rec.FailureReason, tt.reason)
			}
			if len(res.Failures) != 1 || res.Failures[0].Reason != tt.reason {
				t.Errorf("Failures = %v", res.Failures)
			}
		})
	}
}

func TestScanNoIncludeHasEmptyLinkAndImageFields(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"docs/a.yml": "content: |\n  ![image](media/x.png) https://azure.com/e/abc\n",
	})

	res, err := Scan(testConfig(root), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	rec := res.Records[0]
	if rec.FailureReason != ReasonNoIncludeDirective {
		t.Fatalf("FailureReason = %q", rec.FailureReason)
	}
	// Links and images live in the included article, not the metadata file;
	// nothing may be extracted from the content string itself.
	if len(rec.UsableEstimateLinks) != 0 || len(rec.ImagePaths) != 0 {
		t.Errorf("links/images extracted without an include: %v %v",
			rec.UsableEstimateLinks, rec.ImagePaths)
	}
}

func TestScanImageFieldsPopulatedOnFailure(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"docs/a.yml":        "content: |\n  [!INCLUDE[](a-content.md)]\n",
		"docs/a-content.md": "![d](media/d.png)\n",
	})

	res, err := Scan(testConfig(root), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	rec := res.Records[0]
	if rec.FailureReason != ReasonNoEstimateLink {
		t.Fatalf("FailureReason = %q", rec.FailureReason)
	}
	// Images never gate the verdict but are still reported.
	if !reflect.DeepEqual(rec.ImagePaths, []string{"docs/media/d.png"}) {
		t.Errorf("ImagePaths = %v", rec.ImagePaths)
	}
	if !reflect.DeepEqual(rec.ImageExistsInRepo, []bool{false}) {
		t.Errorf("ImageExistsInRepo = %v", rec.ImageExistsInRepo)
	}
}

func TestScanCounters(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"docs/pass.yml":        "content: |\n  [!INCLUDE[](pass-content.md)]\n",
		"docs/pass-content.md": "https://azure.com/e/ok\n",
		"docs/calc.yml":        "content: |\n  [!INCLUDE[](calc-content.md)]\n",
		"docs/calc-content.md": "https://azure.microsoft.com/pricing/calculator\n",
		"docs/broken.yml":      "content: [nope",
	})

	res, err := Scan(testConfig(root), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	want := models.Counters{
		YMLTotal:          3,
		YMLParsed:         2,
		HasContent:        2,
		HasInclude:        2,
		IncludeResolved:   2,
		IncludeMDExists:   2,
		HasCalculatorLink: 1,
		HasUsableLink:     1,
		Passed:            1,
		Failed:            2,
	}
	if res.Counters != want {
		t.Errorf("Counters = %+v, want %+v", res.Counters, want)
	}
}

func TestScanDeterministicOutput(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"docs/b/second.yml":        "content: |\n  [!INCLUDE[](second-content.md)]\n",
		"docs/b/second-content.md": "https://azure.com/e/two\n",
		"docs/a/first.yml":         "content: |\n  [!INCLUDE[](first-content.md)]\n",
		"docs/a/first-content.md":  "https://azure.com/e/one\n",
	})

	run := func() []byte {
		res, err := Scan(testConfig(root), testLogger())
		if err != nil {
			t.Fatal(err)
		}
		b, err := json.Marshal(res.Records)
		if err != nil {
			t.Fatal(err)
		}
		return b
	}

	first, second := run(), run()
	if string(first) != string(second) {
		t.Error("two scans over an unchanged tree differ")
	}

	var recs []models.Record
	if err := json.Unmarshal(first, &recs); err != nil {
		t.Fatal(err)
	}
	if recs[0].YMLPath != "docs/a/first.yml" || recs[1].YMLPath != "docs/b/second.yml" {
		t.Errorf("records not sorted by path: %s, %s", recs[0].YMLPath, recs[1].YMLPath)
	}
}

func TestLearnURL(t *testing.T) {
	tests := []struct{ in, want string }{
		{"docs/web/app.yml", "https://learn.microsoft.com/en-us/azure/architecture/web/app"},
		{"docs/web/app.YAML", "https://learn.microsoft.com/en-us/azure/architecture/web/app"},
		{"other/app.yml", "https://learn.microsoft.com/en-us/azure/architecture/other/app"},
	}
	for _, tt := range tests {
		if got := LearnURL(tt.in); got != tt.want {
			t.Errorf("LearnURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
