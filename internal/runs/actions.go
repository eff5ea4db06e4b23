// Package runs implements the runs CLI command listing scan history.
package runs

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/vaheminasyan2/MS-Architecture-Center-Scanner/pkg/db"
)

func ListAction(c *cli.Context) error {
	database, err := db.Open(c.String("db"))
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No scan runs recorded yet")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %s  %s@%s docs_root=%s total=%d passed=%d failed=%d usable=%d\n",
			r.ScannedAt.UTC().Format(time.RFC3339), r.RunID,
			r.Repo, r.Branch, r.DocsRoot,
			r.Counters.YMLTotal, r.Counters.Passed, r.Counters.Failed,
			r.Counters.HasUsableLink)
	}
	return nil
}
