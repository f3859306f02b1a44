package runstore

import (
	"fmt"

	"github.com/techdebtgpt/maintsight/schema"
)

// Clear removes all recorded runs and predictions from the store.
func Clear(backend schema.StoreBackend, connStr string) error {
	if backend == schema.NoneBackend {
		return nil
	}

	store, err := New(backend, connStr)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	// Predictions reference runs, so they go first
	tables := []string{predictionsTable, runsTable}
	for _, table := range tables {
		query := fmt.Sprintf("DELETE FROM %s", quoteTableName(table, backend))
		if _, err := store.db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	return nil
}
