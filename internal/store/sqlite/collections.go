package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
)

// collectionColumns is the ordered list of columns selected in collection queries.
// Must match the scan order in scanCollection.
const collectionColumns = `id, user_id, name, description, color, image_path, is_smart_collection, created_at, updated_at`

// scanCollection scans a sql.Row (or sql.Rows via its Scan method) into a domain.Collection.
func scanCollection(scanner interface{ Scan(dest ...any) error }) (*domain.Collection, error) {
	var c domain.Collection

	var (
		isSmart   int
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Description,
		&c.Color,
		&c.ImagePath,
		&isSmart,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.IsSmartCollection = isSmart != 0

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateCollection inserts a collection and its initial rules in a transaction.
// Returns store.ErrAlreadyExists on duplicate ID.
func (s *Store) CreateCollection(ctx context.Context, c *domain.Collection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO collections (
			id, user_id, name, description, color, image_path, is_smart_collection, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.UserID,
		c.Name,
		c.Description,
		c.Color,
		c.ImagePath,
		boolToInt(c.IsSmartCollection),
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	if err := insertRules(ctx, tx, c.ID, c.Rules); err != nil {
		return err
	}

	return tx.Commit()
}

// GetCollection retrieves a collection by ID, scoped to the owning user,
// loading its rules and membership garment IDs.
// Returns store.ErrNotFound if the collection does not exist for this user.
func (s *Store) GetCollection(ctx context.Context, collectionID, userID string) (*domain.Collection, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE id = ? AND user_id = ?`,
		collectionID, userID)

	c, err := scanCollection(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	c.Rules, err = s.ListCollectionRules(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	c.GarmentIDs, err = s.ListCollectionGarmentIDs(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("load garment IDs: %w", err)
	}

	return c, nil
}

// ListCollections returns all collections for a user ordered by creation time.
// Rules and garment IDs are loaded for each collection.
func (s *Store) ListCollections(ctx context.Context, userID string) ([]*domain.Collection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE user_id = ? ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []*domain.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range collections {
		c.Rules, err = s.ListCollectionRules(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("load rules for %s: %w", c.ID, err)
		}
		c.GarmentIDs, err = s.ListCollectionGarmentIDs(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("load garment IDs for %s: %w", c.ID, err)
		}
	}

	return collections, nil
}

// UpdateCollection updates collection metadata, scoped to the owning user.
// Rules and membership are managed through their own operations.
// Returns store.ErrNotFound if the collection does not exist for this user.
func (s *Store) UpdateCollection(ctx context.Context, c *domain.Collection) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE collections SET
			name = ?,
			description = ?,
			color = ?,
			image_path = ?,
			updated_at = ?
		WHERE id = ? AND user_id = ?`,
		c.Name,
		c.Description,
		c.Color,
		c.ImagePath,
		formatTime(c.UpdatedAt),
		c.ID,
		c.UserID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteCollection hard-deletes a collection, scoped to the owning user.
// Rules and membership rows are removed via ON DELETE CASCADE.
func (s *Store) DeleteCollection(ctx context.Context, collectionID, userID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM collections WHERE id = ? AND user_id = ?`, collectionID, userID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
