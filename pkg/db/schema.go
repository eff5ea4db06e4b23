package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Scan runs: one row per completed corpus scan, counters denormalized
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    scanned_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    repo TEXT NOT NULL,
    branch TEXT NOT NULL,
    docs_root TEXT NOT NULL,

    yml_total INTEGER NOT NULL DEFAULT 0,
    yml_parsed INTEGER NOT NULL DEFAULT 0,
    has_content INTEGER NOT NULL DEFAULT 0,
    has_include INTEGER NOT NULL DEFAULT 0,
    include_resolved INTEGER NOT NULL DEFAULT 0,
    include_md_exists INTEGER NOT NULL DEFAULT 0,
    has_calculator_link INTEGER NOT NULL DEFAULT 0,
    has_usable_link INTEGER NOT NULL DEFAULT 0,
    passed INTEGER NOT NULL DEFAULT 0,
    failed INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_scanned_at ON runs(scanned_at);

-- Estimate inventory: the accepted estimate link per scenario.
-- scenario_key is the normalized identity URL; upserts are last-write-wins.
CREATE TABLE IF NOT EXISTS inventory (
    scenario_key TEXT PRIMARY KEY,
    estimate_link TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`
