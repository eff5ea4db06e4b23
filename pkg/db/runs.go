package db

import (
	"fmt"
	"time"

	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/models"
)

// Run is one recorded scan run.
type Run struct {
	RunID     string
	ScannedAt time.Time
	Repo      string
	Branch    string
	DocsRoot  string
	Counters  models.Counters
}

// RecordRun inserts a completed scan run.
func (db *DB) RecordRun(run Run) error {
	_, err := db.Exec(`
		INSERT INTO runs (
			run_id, scanned_at, repo, branch, docs_root,
			yml_total, yml_parsed, has_content, has_include,
			include_resolved, include_md_exists,
			has_calculator_link, has_usable_link, passed, failed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.RunID, run.ScannedAt.UTC().Format(time.RFC3339), run.Repo, run.Branch, run.DocsRoot,
		run.Counters.YMLTotal, run.Counters.YMLParsed, run.Counters.HasContent,
		run.Counters.HasInclude, run.Counters.IncludeResolved, run.Counters.IncludeMDExists,
		run.Counters.HasCalculatorLink, run.Counters.HasUsableLink,
		run.Counters.Passed, run.Counters.Failed)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, scanned_at, repo, branch, docs_root,
			yml_total, yml_parsed, has_content, has_include,
			include_resolved, include_md_exists,
			has_calculator_link, has_usable_link, passed, failed
		FROM runs
		ORDER BY scanned_at DESC, run_id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var scannedAt string
		err := rows.Scan(&r.RunID, &scannedAt, &r.Repo, &r.Branch, &r.DocsRoot,
			&r.Counters.YMLTotal, &r.Counters.YMLParsed, &r.Counters.HasContent,
			&r.Counters.HasInclude, &r.Counters.IncludeResolved, &r.Counters.IncludeMDExists,
			&r.Counters.HasCalculatorLink, &r.Counters.HasUsableLink,
			&r.Counters.Passed, &r.Counters.Failed)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, scannedAt); err == nil {
			r.ScannedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
