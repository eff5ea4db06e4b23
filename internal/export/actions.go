// Package export implements the export CLI command: scan-results.json to a
// reviewer-facing workbook.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/internal/common"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/models"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/pkg/report"
)

func Action(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))
	input := c.String("input")
	output := c.String("output")

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}
	var doc models.ResultsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", input, err)
	}

	if err := report.BuildScanWorkbook(doc.Items, output); err != nil {
		return err
	}

	logger.Info("workbook written", "path", output, "rows", len(doc.Items))
	fmt.Printf("Wrote %d rows to %s (sheet: %s)\n", len(doc.Items), output, report.ScanSheet)
	return nil
}
