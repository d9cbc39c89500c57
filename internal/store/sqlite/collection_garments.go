package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ReplaceCollectionGarments overwrites a collection's membership rows in a
// single transaction: delete-all then bulk insert with the given timestamp.
// The transaction keeps concurrent readers from observing the empty
// intermediate state.
func (s *Store) ReplaceCollectionGarments(ctx context.Context, collectionID string, garmentIDs []string, addedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM collection_garments WHERE collection_id = ?`, collectionID); err != nil {
		return err
	}

	ts := formatTime(addedAt)
	for _, garmentID := range garmentIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO collection_garments (collection_id, garment_id, added_at)
			VALUES (?, ?, ?)`,
			collectionID, garmentID, ts,
		)
		if err != nil {
			return fmt.Errorf("insert membership %s: %w", garmentID, err)
		}
	}

	return tx.Commit()
}

// AddCollectionGarments adds garments to a collection. Existing memberships
// are skipped, not errored.
func (s *Store) AddCollectionGarments(ctx context.Context, collectionID string, garmentIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := formatTime(time.Now())
	for _, garmentID := range garmentIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO collection_garments (collection_id, garment_id, added_at)
			VALUES (?, ?, ?)`,
			collectionID, garmentID, now,
		)
		if err != nil {
			return fmt.Errorf("insert membership %s: %w", garmentID, err)
		}
	}

	return tx.Commit()
}

// RemoveCollectionGarments removes matching membership rows. Garments not
// in the collection are ignored.
func (s *Store) RemoveCollectionGarments(ctx context.Context, collectionID string, garmentIDs []string) error {
	if len(garmentIDs) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(garmentIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(garmentIDs)+1)
	args = append(args, collectionID)
	for _, id := range garmentIDs {
		args = append(args, id)
	}

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM collection_garments WHERE collection_id = ? AND garment_id IN (`+placeholders+`)`,
		args...)
	return err
}

// ListCollectionGarmentIDs returns the garment IDs in a collection,
// most recently added first.
func (s *Store) ListCollectionGarmentIDs(ctx context.Context, collectionID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT garment_id FROM collection_garments WHERE collection_id = ? ORDER BY added_at DESC, garment_id`,
		collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var garmentIDs []string
	for rows.Next() {
		var garmentID string
		if err := rows.Scan(&garmentID); err != nil {
			return nil, err
		}
		garmentIDs = append(garmentIDs, garmentID)
	}
	return garmentIDs, rows.Err()
}
