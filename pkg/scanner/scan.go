package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/models"
)

// FailureSampleCap bounds the diagnostics sample kept per run.
const FailureSampleCap = 1000

// Result is the aggregate outcome of one corpus scan.
type Result struct {
	Records  []models.Record
	Counters models.Counters
	Failures []models.Failure // bounded sample, one entry per failed document
}

// Scan enumerates every metadata document under cfg.DocsRoot, evaluates each
// and aggregates counters. Per-document problems become failure reasons; the
// only errors returned are ones that prevent enumeration entirely.
func Scan(cfg models.ScanConfig, logger *slog.Logger) (*Result, error) {
	root, err := filepath.Abs(cfg.RepoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve repo root: %w", err)
	}
	files, err := listDocuments(filepath.Join(root, filepath.FromSlash(cfg.DocsRoot)))
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate documents: %w", err)
	}

	ev := &Evaluator{RepoRoot: root, RepoSlug: cfg.RepoSlug, Branch: cfg.Branch}
	res := &Result{
		Records:  make([]models.Record, 0, len(files)),
		Failures: []models.Failure{},
	}
	res.Counters.YMLTotal = len(files)

	for _, f := range files {
		rec, state := ev.Evaluate(f)
		res.Records = append(res.Records, rec)
		tally(&res.Counters, state, rec)
		if rec.CriteriaPassed {
			continue
		}
		logger.Debug("document failed criteria", "yml_path", rec.YMLPath, "reason", rec.FailureReason)
		if len(res.Failures) < FailureSampleCap {
			res.Failures = append(res.Failures, models.Failure{
				YMLPath:       rec.YMLPath,
				Reason:        rec.FailureReason,
				IncludeMDPath: rec.IncludeMDPath,
			})
		}
	}
	return res, nil
}

func tally(c *models.Counters, state evalState, rec models.Record) {
	if state.parsed {
		c.YMLParsed++
	}
	if state.hasContent {
		c.HasContent++
	}
	if state.hasInclude {
		c.HasInclude++
	}
	if state.includeResolved {
		c.IncludeResolved++
	}
	if state.includeExists {
		c.IncludeMDExists++
	}
	if len(state.taxonomy.Calculator) > 0 {
		c.HasCalculatorLink++
	}
	if len(state.taxonomy.Usable) > 0 {
		c.HasUsableLink++
	}
	if rec.CriteriaPassed {
		c.Passed++
	} else {
		c.Failed++
	}
}

// listDocuments finds every .yml/.yaml file under docsPath, deduplicated by
// resolved absolute path and sorted for deterministic iteration order.
func listDocuments(docsPath string) ([]string, error) {
	byResolved := make(map[string]string)
	err := filepath.WalkDir(docsPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".yml", ".yaml":
		default:
			return nil
		}
		key := p
		if resolved, err := filepath.EvalSymlinks(p); err == nil {
			key = resolved
		}
		if _, seen := byResolved[key]; !seen {
			byResolved[key] = p
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(byResolved))
	for _, p := range byResolved {
		files = append(files, p)
	}
	sort.Strings(files)
	return files, nil
}
