package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/wardrobeapp/wardrobe-server/internal/rules"
	"github.com/wardrobeapp/wardrobe-server/internal/service"
	"github.com/wardrobeapp/wardrobe-server/internal/validation"
)

// ProvideRuleEvaluator provides the smart collection rule evaluator.
func ProvideRuleEvaluator(i do.Injector) (*rules.Evaluator, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return rules.NewEvaluator(storeHandle.Store, log), nil
}

// ProvideGarmentService provides the garment service.
func ProvideGarmentService(i do.Injector) (*service.GarmentService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewGarmentService(storeHandle.Store, validator, log), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewTagService(storeHandle.Store, validator, log), nil
}

// ProvideCollectionService provides the collection service.
func ProvideCollectionService(i do.Injector) (*service.CollectionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	evaluator := do.MustInvoke[*rules.Evaluator](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewCollectionService(storeHandle.Store, evaluator, validator, log), nil
}
