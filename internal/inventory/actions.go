// Package inventory implements the inventory CLI commands.
package inventory

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/internal/common"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/pkg/db"
	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/pkg/report"
)

// ImportAction loads an estimate-scenarios workbook into the sqlite
// inventory, replacing whatever was stored before.
func ImportAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	entries, err := report.LoadInventory(c.String("input"))
	if err != nil {
		return err
	}

	database, err := db.Open(c.String("db"))
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.ReplaceInventory(entries); err != nil {
		return err
	}

	logger.Info("inventory imported", "entries", len(entries), "db", database.Path())
	fmt.Printf("Imported %d inventory entries into %s\n", len(entries), database.Path())
	return nil
}
