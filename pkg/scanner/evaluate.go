package scanner

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/models"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/pkg/images"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/pkg/links"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/pkg/refpath"
)

// includeRE matches the [!INCLUDE[](path.md)] directive inside a metadata
// document's content string.
var includeRE = regexp.MustCompile(`(?i)\[!INCLUDE\s*\[\s*\]\s*\(\s*([^)\s]+\.md)\s*\)\s*\]`)

// Evaluator turns one metadata document into a Record. It only reads files;
// given an unchanged tree the result is deterministic.
type Evaluator struct {
	RepoRoot string
	RepoSlug string
	Branch   string
}

// Evaluate scans a single metadata file. ymlPath must be absolute. The
// returned state drives the run counters; the record is final.
func (e *Evaluator) Evaluate(ymlPath string) (models.Record, evalState) {
	repoRel := ymlPath
	if rel, err := filepath.Rel(e.RepoRoot, ymlPath); err == nil {
		repoRel = filepath.ToSlash(rel)
	}

	rec := newRecord(repoRel, e.RepoSlug, e.Branch)
	var state evalState

	data := loadYAML(ymlPath)
	if data == nil {
		return finish(rec, state)
	}
	state.parsed = true

	meta := extractMeta(data)
	rec.Title = meta.Title
	rec.Description = meta.Description
	rec.Categories = meta.Categories
	rec.MSDate = meta.MSDate

	content, ok := data["content"].(string)
	if !ok {
		return finish(rec, state)
	}
	state.hasContent = true

	inc := includeRE.FindStringSubmatch(content)
	if inc == nil {
		return finish(rec, state)
	}
	state.hasInclude = true

	includeRef := inc[1]
	includeRel, ok := refpath.Resolve(filepath.Dir(ymlPath), includeRef, e.RepoRoot)
	if !ok {
		rec.IncludeMDPath = includeRef
		return finish(rec, state)
	}
	state.includeResolved = true

	rec.IncludeMDPath = includeRel
	rec.IncludeMDGitHubURL = GitHubBlobURL(e.RepoSlug, e.Branch, includeRel)

	mdFile := filepath.Join(e.RepoRoot, filepath.FromSlash(includeRel))
	mdText, ok := readTolerant(mdFile)
	if !ok {
		return finish(rec, state)
	}
	state.includeExists = true

	fm := frontMatter(mdText)
	rec.MDAuthorGitHub = firstNonEmpty(asString(fm["author"]), meta.Author)
	rec.MDMSAuthor = firstNonEmpty(asString(fm["ms.author"]), meta.MSAuthor)

	state.taxonomy = links.Classify(mdText)
	applyTaxonomy(&rec, state.taxonomy)

	imgRefs := images.Extract(mdText)
	state.imageCount = len(imgRefs)
	e.applyImages(&rec, imgRefs, filepath.Dir(mdFile))

	return finish(rec, state)
}

// applyImages fills the four parallel image lists. A reference that cannot
// be resolved into the repository keeps its cleaned relative form.
func (e *Evaluator) applyImages(rec *models.Record, refs []string, mdDir string) {
	for _, raw := range refs {
		cleaned := refpath.Clean(raw)
		rel, ok := refpath.Resolve(mdDir, cleaned, e.RepoRoot)
		if !ok {
			rel = strings.TrimLeft(refpath.StripQueryFragment(cleaned), "/")
		}
		_, statErr := os.Stat(filepath.Join(e.RepoRoot, filepath.FromSlash(rel)))
		rec.ImagePaths = append(rec.ImagePaths, rel)
		rec.ImageDownloadURLs = append(rec.ImageDownloadURLs, RawDownloadURL(e.RepoSlug, e.Branch, rel))
		rec.ImageExistsInRepo = append(rec.ImageExistsInRepo, statErr == nil)
		rec.ImageFormats = append(rec.ImageFormats, strings.TrimPrefix(strings.ToLower(path.Ext(rel)), "."))
	}
}

func applyTaxonomy(rec *models.Record, tax links.Taxonomy) {
	rec.AzureExperienceLinks = tax.Experience
	rec.CalculatorRootLinks = tax.CalculatorRoot
	rec.CalculatorSharedEstimateLinks = tax.CalculatorSharedEstimate
	rec.CalculatorServiceLinks = tax.CalculatorService
	rec.CalculatorOtherLinks = tax.CalculatorOther
	rec.PricingCalculatorLinks = tax.Calculator
	rec.SharedEstimateLinks = tax.SharedEstimate
	rec.AllMatchingLinks = tax.AllMatching
	rec.UsableEstimateLinks = tax.Usable
}

func finish(rec models.Record, state evalState) (models.Record, evalState) {
	rec.CriteriaPassed, rec.FailureReason = decide(state)
	return rec, state
}

// newRecord builds a record with every list non-nil so empty fields
// serialize as [] and output stays diffable across runs.
func newRecord(repoRelYML, slug, branch string) models.Record {
	empty := []string{}
	return models.Record{
		YMLURL:       LearnURL(repoRelYML),
		YMLGitHubURL: GitHubBlobURL(slug, branch, repoRelYML),
		YMLPath:      repoRelYML,

		Categories:        empty,
		ImagePaths:        empty,
		ImageDownloadURLs: empty,
		ImageExistsInRepo: []bool{},
		ImageFormats:      empty,

		AzureExperienceLinks:          empty,
		CalculatorRootLinks:           empty,
		CalculatorSharedEstimateLinks: empty,
		CalculatorServiceLinks:        empty,
		CalculatorOtherLinks:          empty,
		PricingCalculatorLinks:        empty,
		SharedEstimateLinks:           empty,
		AllMatchingLinks:              empty,
		UsableEstimateLinks:           empty,
	}
}

// loadYAML parses a metadata file into a generic map. Any parse problem
// yields nil; the caller records it as a failure reason, never an error.
func loadYAML(path string) map[string]any {
	text, ok := readTolerant(path)
	if !ok {
		return nil
	}
	var data map[string]any
	if err := yaml.Unmarshal([]byte(text), &data); err != nil {
		return nil
	}
	return data
}

// readTolerant reads a file, replacing invalid UTF-8 bytes instead of
// failing the document.
func readTolerant(path string) (string, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return strings.ToValidUTF8(string(b), "�"), true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
