package rules

import (
	"context"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/wardrobeapp/wardrobe-server/internal/domain"
)

// GarmentFinder is the slice of the garment store the evaluator needs.
type GarmentFinder interface {
	FindGarments(ctx context.Context, userID string, pred squirrel.Sqlizer) ([]*domain.Garment, error)
}

// Evaluator computes the garment set matching a smart collection's rules.
// It is stateless between calls; every invocation is scoped to one user.
type Evaluator struct {
	garments GarmentFinder
	logger   *slog.Logger
}

// NewEvaluator creates an evaluator backed by the given garment store.
func NewEvaluator(garments GarmentFinder, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		garments: garments,
		logger:   logger,
	}
}

// Evaluate returns the garments owned by userID that satisfy every rule
// (pure conjunction). Rules that compile to nil contribute nothing. If no
// rule yields a usable fragment the result is the empty set, never the
// full inventory: an unconfigured smart collection matches nothing.
func (e *Evaluator) Evaluate(ctx context.Context, userID string, ruleSet []domain.CollectionRule) ([]*domain.Garment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fragments := make(squirrel.And, 0, len(ruleSet))
	for _, r := range ruleSet {
		frag := Compile(r)
		if frag == nil {
			e.logger.Debug("rule contributes no predicate, skipping",
				"collection_id", r.CollectionID,
				"field", r.Field,
				"operator", r.Operator,
			)
			continue
		}
		fragments = append(fragments, frag)
	}

	if len(fragments) == 0 {
		return nil, nil
	}

	return e.garments.FindGarments(ctx, userID, fragments)
}
