package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
)

// insertRules inserts a rule set for a collection inside an open transaction.
// Position records the submitted order.
func insertRules(ctx context.Context, tx *sql.Tx, collectionID string, rules []domain.CollectionRule) error {
	for i, r := range rules {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO collection_rules (collection_id, field, operator, value, position)
			VALUES (?, ?, ?, ?, ?)`,
			collectionID,
			r.Field.String(),
			r.Operator.String(),
			r.Value,
			i,
		)
		if err != nil {
			return fmt.Errorf("insert rule %d: %w", i, err)
		}
	}
	return nil
}

// ReplaceCollectionRules swaps a collection's entire rule set in a
// transaction: delete-all then insert-all. Rules have no stable identity
// across updates.
func (s *Store) ReplaceCollectionRules(ctx context.Context, collectionID string, rules []domain.CollectionRule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM collection_rules WHERE collection_id = ?`, collectionID); err != nil {
		return err
	}

	if err := insertRules(ctx, tx, collectionID, rules); err != nil {
		return err
	}

	return tx.Commit()
}

// ListCollectionRules returns a collection's rules in submitted order.
func (s *Store) ListCollectionRules(ctx context.Context, collectionID string) ([]domain.CollectionRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT collection_id, field, operator, value, position
		FROM collection_rules WHERE collection_id = ? ORDER BY position`,
		collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ruleSet []domain.CollectionRule
	for rows.Next() {
		var (
			r        domain.CollectionRule
			field    string
			operator string
		)
		if err := rows.Scan(&r.CollectionID, &field, &operator, &r.Value, &r.Position); err != nil {
			return nil, err
		}
		// Stored values pass through unparsed; the compiler treats
		// unrecognized fields and operators as contributing nothing.
		r.Field = domain.RuleField(field)
		r.Operator = domain.RuleOperator(operator)
		ruleSet = append(ruleSet, r)
	}
	return ruleSet, rows.Err()
}
