// Package compare implements the compare CLI command: reconciling a scan
// workbook against the estimate inventory.
package compare

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/internal/common"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/pkg/db"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/pkg/estimates"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/pkg/report"
)

func Action(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))
	scanPath := c.String("scan")

	inventory, err := loadInventory(c)
	if err != nil {
		return err
	}

	table, err := report.LoadScanTable(scanPath)
	if err != nil {
		return err
	}

	rows := table.EstimateRows()
	sum := estimates.Classify(rows, inventory)
	table.ApplyStatuses(rows)

	if err := report.WriteComparison(scanPath, table, sum, time.Now().UTC(), c.String("commit")); err != nil {
		return err
	}

	logger.Info("comparison written", "path", scanPath,
		"total", sum.Total, "passed", sum.Passed,
		"same_estimate", sum.SameEstimate, "new_estimate", sum.NewEstimate,
		"new_candidates", sum.NewCandidate)
	fmt.Printf("Compared %d scenarios: %d passed, %d matched inventory "+
		"(%d same estimate, %d new estimate), %d new candidates; %d need review\n",
		sum.Total, sum.Passed, sum.MatchedInventory,
		sum.SameEstimate, sum.NewEstimate, sum.NewCandidate,
		len(estimates.NeedsReview(rows)))
	return nil
}

// loadInventory reads the inventory from the given workbook, or from the
// sqlite store when only --db is set. Exactly one source must be provided.
func loadInventory(c *cli.Context) (map[string]string, error) {
	invPath := c.String("inventory")
	dbPath := c.String("db")

	switch {
	case invPath != "" && dbPath != "":
		return nil, fmt.Errorf("use either --inventory or --db, not both")
	case invPath != "":
		return report.LoadInventory(invPath)
	case dbPath != "":
		database, err := db.Open(dbPath)
		if err != nil {
			return nil, err
		}
		defer database.Close()
		return database.LoadInventory()
	default:
		return nil, fmt.Errorf("an inventory source is required: --inventory <xlsx> or --db <sqlite>")
	}
}
