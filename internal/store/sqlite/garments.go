package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
)

// garmentColumns is the ordered list of columns selected in garment queries.
// Must match the scan order in scanGarment.
const garmentColumns = `id, user_id, name, category, color, brand, material, status, image_path, created_at, updated_at`

// scanGarment scans a sql.Row (or sql.Rows via its Scan method) into a domain.Garment.
// TagIDs are left nil; the caller loads them when needed.
func scanGarment(scanner interface{ Scan(dest ...any) error }) (*domain.Garment, error) {
	var g domain.Garment

	var (
		status    string
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&g.ID,
		&g.UserID,
		&g.Name,
		&g.Category,
		&g.Color,
		&g.Brand,
		&g.Material,
		&status,
		&g.ImagePath,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// An unknown status in storage is kept verbatim rather than rejected;
	// the write path guards the enum.
	g.Status = domain.GarmentStatus(status)

	g.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	g.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

// loadGarmentTagIDs loads all tag IDs linked to a garment.
func (s *Store) loadGarmentTagIDs(ctx context.Context, garmentID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tag_id FROM garment_tags WHERE garment_id = ?`, garmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tagIDs []string
	for rows.Next() {
		var tagID string
		if err := rows.Scan(&tagID); err != nil {
			return nil, err
		}
		tagIDs = append(tagIDs, tagID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tagIDs, nil
}

// CreateGarment inserts a garment and its tag links in a transaction.
// Returns store.ErrAlreadyExists on duplicate ID.
func (s *Store) CreateGarment(ctx context.Context, g *domain.Garment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO garments (
			id, user_id, name, category, color, brand, material, status, image_path, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID,
		g.UserID,
		g.Name,
		g.Category,
		g.Color,
		g.Brand,
		g.Material,
		g.Status.String(),
		g.ImagePath,
		formatTime(g.CreatedAt),
		formatTime(g.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	for _, tagID := range g.TagIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO garment_tags (garment_id, tag_id, created_at)
			VALUES (?, ?, ?)`,
			g.ID, tagID, formatTime(time.Now()),
		)
		if err != nil {
			return fmt.Errorf("insert garment_tag %s: %w", tagID, err)
		}
	}

	return tx.Commit()
}

// GetGarment retrieves a garment by ID, scoped to the owning user.
// Returns store.ErrNotFound if the garment does not exist for this user.
func (s *Store) GetGarment(ctx context.Context, garmentID, userID string) (*domain.Garment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+garmentColumns+` FROM garments WHERE id = ? AND user_id = ?`,
		garmentID, userID)

	g, err := scanGarment(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	g.TagIDs, err = s.loadGarmentTagIDs(ctx, garmentID)
	if err != nil {
		return nil, fmt.Errorf("load tag IDs: %w", err)
	}

	return g, nil
}

// GetGarmentsByIDs retrieves the subset of the given garments that exist
// and belong to the user. IDs that match nothing are simply absent from
// the result; detecting them is the caller's job.
func (s *Store) GetGarmentsByIDs(ctx context.Context, garmentIDs []string, userID string) ([]*domain.Garment, error) {
	if len(garmentIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(garmentIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(garmentIDs)+1)
	for _, id := range garmentIDs {
		args = append(args, id)
	}
	args = append(args, userID)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+garmentColumns+` FROM garments WHERE id IN (`+placeholders+`) AND user_id = ?`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var garments []*domain.Garment
	for rows.Next() {
		g, err := scanGarment(rows)
		if err != nil {
			return nil, err
		}
		garments = append(garments, g)
	}
	return garments, rows.Err()
}

// ListGarments returns all garments for a user, newest first.
func (s *Store) ListGarments(ctx context.Context, userID string) ([]*domain.Garment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+garmentColumns+` FROM garments WHERE user_id = ? ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var garments []*domain.Garment
	for rows.Next() {
		g, err := scanGarment(rows)
		if err != nil {
			return nil, err
		}
		garments = append(garments, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, g := range garments {
		g.TagIDs, err = s.loadGarmentTagIDs(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("load tag IDs for %s: %w", g.ID, err)
		}
	}

	return garments, nil
}

// UpdateGarment updates a garment row, scoped to the owning user.
// Tag links are not touched; use SetGarmentTags for those.
// Returns store.ErrNotFound if the garment does not exist for this user.
func (s *Store) UpdateGarment(ctx context.Context, g *domain.Garment) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE garments SET
			name = ?,
			category = ?,
			color = ?,
			brand = ?,
			material = ?,
			status = ?,
			image_path = ?,
			updated_at = ?
		WHERE id = ? AND user_id = ?`,
		g.Name,
		g.Category,
		g.Color,
		g.Brand,
		g.Material,
		g.Status.String(),
		g.ImagePath,
		formatTime(g.UpdatedAt),
		g.ID,
		g.UserID,
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

// DeleteGarment hard-deletes a garment, scoped to the owning user.
// Tag links and collection membership rows are removed via ON DELETE CASCADE.
func (s *Store) DeleteGarment(ctx context.Context, garmentID, userID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM garments WHERE id = ? AND user_id = ?`, garmentID, userID)
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

// SetGarmentTags replaces a garment's tag links in a transaction.
// Returns store.ErrNotFound if the garment does not exist for this user.
func (s *Store) SetGarmentTags(ctx context.Context, garmentID, userID string, tagIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM garments WHERE id = ? AND user_id = ?`,
		garmentID, userID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return store.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM garment_tags WHERE garment_id = ?`, garmentID); err != nil {
		return err
	}

	now := formatTime(time.Now())
	for _, tagID := range tagIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO garment_tags (garment_id, tag_id, created_at)
			VALUES (?, ?, ?)`,
			garmentID, tagID, now,
		)
		if err != nil {
			return fmt.Errorf("insert garment_tag %s: %w", tagID, err)
		}
	}

	return tx.Commit()
}

// FindGarments returns the user's garments matching the given predicate
// tree, newest first. The predicate references columns on the garments
// table (qualified as garments.*) and may contain correlated sub-queries
// against garment_tags and tags.
func (s *Store) FindGarments(ctx context.Context, userID string, pred squirrel.Sqlizer) ([]*domain.Garment, error) {
	predSQL, predArgs, err := pred.ToSql()
	if err != nil {
		return nil, fmt.Errorf("render predicate: %w", err)
	}

	query := `SELECT ` + garmentColumns + ` FROM garments
		WHERE user_id = ? AND (` + predSQL + `)
		ORDER BY created_at DESC`

	args := make([]any, 0, len(predArgs)+1)
	args = append(args, userID)
	args = append(args, predArgs...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var garments []*domain.Garment
	for rows.Next() {
		g, err := scanGarment(rows)
		if err != nil {
			return nil, err
		}
		garments = append(garments, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, g := range garments {
		g.TagIDs, err = s.loadGarmentTagIDs(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("load tag IDs for %s: %w", g.ID, err)
		}
	}

	return garments, nil
}
