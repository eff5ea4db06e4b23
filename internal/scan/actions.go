// Package scan implements the scan CLI command.
package scan

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/internal/common"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/models"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/pkg/db"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/pkg/scanner"
)

const debugOutputPath = "scan-debug.json"

func Action(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg := models.ScanConfig{
		RepoRoot: c.String("root"),
		RepoSlug: c.String("repo"),
		Branch:   c.String("branch"),
		DocsRoot: c.String("docs-root"),
	}
	logger.Info("starting scan", "repo", cfg.RepoSlug, "branch", cfg.Branch, "docs_root", cfg.DocsRoot)

	started := time.Now()
	result, err := scanner.Scan(cfg, logger)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	doc := models.ResultsDoc{
		Repo:     cfg.RepoSlug,
		Branch:   cfg.Branch,
		DocsRoot: cfg.DocsRoot,
		Count:    len(result.Records),
		Items:    result.Records,
	}
	if err := writeJSON(c.String("output"), doc); err != nil {
		return err
	}

	if dbPath := c.String("db"); dbPath != "" {
		if err := recordRun(dbPath, cfg, result.Counters); err != nil {
			// Run history is best effort; the scan output already exists.
			logger.Error("failed to record run", "error", err)
		}
	}

	fmt.Printf("Scanning docs_root=%s: found %d YAML files; wrote %d items; "+
		"criteria_passed=%d; failed=%d; md_has_usable_estimate_link=%d\n",
		cfg.DocsRoot, result.Counters.YMLTotal, len(result.Records),
		result.Counters.Passed, result.Counters.Failed, result.Counters.HasUsableLink)

	if c.Bool("debug") {
		dbg := models.DebugDoc{
			Counters:       result.Counters,
			FailuresTotal:  result.Counters.Failed,
			FailuresSample: result.Failures,
		}
		if err := writeJSON(debugOutputPath, dbg); err != nil {
			return err
		}
		fmt.Printf("Wrote debug to %s (failures_total=%d)\n", debugOutputPath, dbg.FailuresTotal)
	}

	logger.Info("scan finished", "duration", time.Since(started).String(), "passed", result.Counters.Passed)
	return nil
}

func recordRun(dbPath string, cfg models.ScanConfig, counters models.Counters) error {
	database, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	return database.RecordRun(db.Run{
		RunID:     uuid.NewString(),
		ScannedAt: time.Now().UTC(),
		Repo:      cfg.RepoSlug,
		Branch:    cfg.Branch,
		DocsRoot:  cfg.DocsRoot,
		Counters:  counters,
	})
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
