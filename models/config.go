package models

// ScanConfig holds runtime configuration for a scan run.
// All values come from CLI flags and the environment, not config files.
type ScanConfig struct {
	RepoRoot string // filesystem root of the documentation repository
	RepoSlug string // owner/name, used to build GitHub URLs
	Branch   string
	DocsRoot string // subdirectory under RepoRoot to enumerate
}
