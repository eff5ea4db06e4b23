package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/internal/compare"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/internal/export"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/internal/inventory"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/internal/runs"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/internal/scan"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/pkg/db"
)

const defaultRepoSlug = "MicrosoftDocs/architecture-center"

func main() {
	// A local .env may carry GITHUB_REPOSITORY / GITHUB_SHA; absence is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "arch-center-scanner",
		Usage: "audit Architecture Center documents for usable cost-estimate links",
		Commands: []*cli.Command{
			{
				Name:  "scan",
				Usage: "Scan the documentation tree and write scan-results.json",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "repo", Value: repoSlugDefault(), Usage: "Repo slug (default: GITHUB_REPOSITORY)"},
					&cli.StringFlag{Name: "branch", Value: "main"},
					&cli.StringFlag{Name: "docs-root", Value: "docs"},
					&cli.StringFlag{Name: "root", Value: ".", Usage: "Repository root on disk"},
					&cli.StringFlag{Name: "output", Value: "scan-results.json"},
					&cli.StringFlag{Name: "db", Value: db.DefaultDBName, Usage: "Run-history database (empty to disable)"},
					&cli.BoolFlag{Name: "debug", Usage: "Also write scan-debug.json with counts + sample failures"},
					&cli.BoolFlag{Name: "quiet", Usage: "Only log errors"},
				},
				Action: scan.Action,
			},
			{
				Name:  "export",
				Usage: "Build scan-results.xlsx from scan-results.json",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Value: "scan-results.json"},
					&cli.StringFlag{Name: "output", Value: "scan-results.xlsx"},
					&cli.BoolFlag{Name: "quiet"},
				},
				Action: export.Action,
			},
			{
				Name:  "compare",
				Usage: "Reconcile a scan workbook against the estimate inventory",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "scan", Value: "scan-results.xlsx"},
					&cli.StringFlag{Name: "inventory", Usage: "estimate_scenarios.xlsx"},
					&cli.StringFlag{Name: "db", Usage: "Read the inventory from this database instead"},
					&cli.StringFlag{Name: "commit", Value: commitDefault(), Usage: "Repo commit recorded in the summary"},
					&cli.BoolFlag{Name: "quiet"},
				},
				Action: compare.Action,
			},
			{
				Name:  "inventory",
				Usage: "Manage the estimate inventory",
				Subcommands: []*cli.Command{
					{
						Name:  "import",
						Usage: "Load an estimate-scenarios workbook into the database",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "input", Value: "estimate_scenarios.xlsx"},
							&cli.StringFlag{Name: "db", Value: db.DefaultDBName},
							&cli.BoolFlag{Name: "quiet"},
						},
						Action: inventory.ImportAction,
					},
				},
			},
			{
				Name:  "runs",
				Usage: "List recorded scan runs",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Value: db.DefaultDBName},
					&cli.IntFlag{Name: "limit", Value: 20},
				},
				Action: runs.ListAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func repoSlugDefault() string {
	if slug := os.Getenv("GITHUB_REPOSITORY"); slug != "" {
		return slug
	}
	return defaultRepoSlug
}

func commitDefault() string {
	if sha := os.Getenv("GITHUB_SHA"); sha != "" {
		return sha
	}
	return "local"
}
