// checkpoint.go flushes the write-ahead log. Service.Close checkpoints with
// TRUNCATE so a finished command leaves only docver.db behind, without
// -wal and -shm files next to it.

package store

import (
	"context"
	"fmt"
)

// Checkpoint copies the WAL into the database file and truncates it.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	return s.Conn(ctx, func(q Querier) error {
		if _, err := q.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
			return fmt.Errorf("checkpoint wal: %w", err)
		}
		return nil
	})
}
