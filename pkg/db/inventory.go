package db

import "fmt"

// UpsertInventory records the accepted estimate link for a scenario.
// An existing scenario key is overwritten (last write wins).
func (db *DB) UpsertInventory(scenarioKey, estimateLink string) error {
	_, err := db.Exec(`
		INSERT INTO inventory (scenario_key, estimate_link, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(scenario_key) DO UPDATE SET
			estimate_link = excluded.estimate_link,
			updated_at = CURRENT_TIMESTAMP
	`, scenarioKey, estimateLink)
	if err != nil {
		return fmt.Errorf("failed to upsert inventory entry: %w", err)
	}
	return nil
}

// ReplaceInventory atomically replaces the whole inventory with the given
// normalized (scenario key → estimate link) map.
func (db *DB) ReplaceInventory(entries map[string]string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM inventory"); err != nil {
		return fmt.Errorf("failed to clear inventory: %w", err)
	}
	for key, link := range entries {
		if _, err := tx.Exec(`
			INSERT INTO inventory (scenario_key, estimate_link) VALUES (?, ?)
		`, key, link); err != nil {
			return fmt.Errorf("failed to insert inventory entry: %w", err)
		}
	}
	return tx.Commit()
}

// LoadInventory returns the full inventory as a scenario key → estimate
// link map.
func (db *DB) LoadInventory() (map[string]string, error) {
	rows, err := db.Query("SELECT scenario_key, estimate_link FROM inventory")
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	inv := make(map[string]string)
	for rows.Next() {
		var key, link string
		if err := rows.Scan(&key, &link); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		inv[key] = link
	}
	return inv, rows.Err()
}

// InventoryCount returns the number of inventory entries.
func (db *DB) InventoryCount() (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM inventory").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count inventory: %w", err)
	}
	return n, nil
}
