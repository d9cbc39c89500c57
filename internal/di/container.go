// Package di provides dependency injection configuration for the wardrobe server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/wardrobeapp/wardrobe-server/internal/config"
	"github.com/wardrobeapp/wardrobe-server/internal/di/providers"
	"github.com/wardrobeapp/wardrobe-server/internal/logger"
	"github.com/wardrobeapp/wardrobe-server/internal/rules"
	"github.com/wardrobeapp/wardrobe-server/internal/service"
	"github.com/wardrobeapp/wardrobe-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Rule engine
	do.Provide(injector, providers.ProvideRuleEvaluator)

	// Business services
	do.Provide(injector, providers.ProvideGarmentService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideCollectionService)

	// Server
	do.Provide(injector, providers.ProvideAuthenticator)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*rules.Evaluator](injector)

	// Business services
	_ = do.MustInvoke[*service.GarmentService](injector)
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*service.CollectionService](injector)

	// Server last so every dependency is ready before it starts serving.
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
