// Package rules implements the smart collection rule engine: compiling
// declarative rules into predicate fragments and evaluating rule sets
// against a user's garment inventory.
package rules

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/wardrobeapp/wardrobe-server/internal/domain"
)

// fieldColumns maps attribute rule fields to their garment columns.
// FieldTags is absent: tag rules compile to an existential sub-query
// instead of a direct column comparison.
var fieldColumns = map[domain.RuleField]string{
	domain.FieldCategory: "garments.category",
	domain.FieldColor:    "garments.color",
	domain.FieldBrand:    "garments.brand",
	domain.FieldMaterial: "garments.material",
	domain.FieldStatus:   "garments.status",
}

// Compile translates one rule into a predicate fragment. A rule whose
// field or operator is not recognized compiles to nil; the caller treats
// nil as "rule contributes nothing" rather than an error, so rows written
// by a future version with new fields degrade instead of failing.
func Compile(r domain.CollectionRule) squirrel.Sqlizer {
	if r.Field == domain.FieldTags {
		return compileTagRule(r)
	}

	col, ok := fieldColumns[r.Field]
	if !ok {
		return nil
	}
	return compileComparison(col, r.Operator, r.Value)
}

// compileTagRule produces a fragment meaning "garment has at least one tag
// whose name satisfies the comparison".
func compileTagRule(r domain.CollectionRule) squirrel.Sqlizer {
	inner := compileComparison("t.name", r.Operator, r.Value)
	if inner == nil {
		return nil
	}

	innerSQL, args, err := inner.ToSql()
	if err != nil {
		return nil
	}

	return squirrel.Expr(
		`EXISTS (SELECT 1 FROM garment_tags gt JOIN tags t ON t.id = gt.tag_id `+
			`WHERE gt.garment_id = garments.id AND `+innerSQL+`)`,
		args...,
	)
}

// compileComparison builds the operator fragment for a single column.
// EQUALS and NOT_EQUALS are exact; every other operator folds case.
func compileComparison(col string, op domain.RuleOperator, value string) squirrel.Sqlizer {
	switch op {
	case domain.OpEquals:
		return squirrel.Eq{col: value}
	case domain.OpNotEquals:
		return squirrel.NotEq{col: value}
	case domain.OpContains:
		return squirrel.Expr("LOWER("+col+") LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(value))+"%")
	case domain.OpNotContains:
		return squirrel.Expr("LOWER("+col+") NOT LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(value))+"%")
	case domain.OpStartsWith:
		return squirrel.Expr("LOWER("+col+") LIKE ? ESCAPE '\\'", escapeLike(strings.ToLower(value))+"%")
	case domain.OpEndsWith:
		return squirrel.Expr("LOWER("+col+") LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(value)))
	case domain.OpIn:
		values := splitList(value)
		if len(values) == 0 {
			return nil
		}
		return squirrel.Eq{"LOWER(" + col + ")": values}
	}
	return nil
}

// escapeLike escapes LIKE metacharacters so a rule value like "100%" is
// matched literally instead of acting as a wildcard pattern.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// splitList parses an IN value: comma-separated, trimmed, lowercased.
// Empty elements are dropped.
func splitList(value string) []any {
	parts := strings.Split(value, ",")
	values := make([]any, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		values = append(values, strings.ToLower(p))
	}
	return values
}
