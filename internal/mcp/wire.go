//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/vacancy-scanner/internal/config"
	"github.com/honeycarbs/vacancy-scanner/internal/domain/vacancy"
	"github.com/honeycarbs/vacancy-scanner/pkg/headhunter"
	"github.com/honeycarbs/vacancy-scanner/pkg/logging"
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, func(), error) {
	wire.Build(
		// Infrastructure - link checks
		provideURLChecker,

		// Infrastructure - HeadHunter
		provideHeadHunterConfig,
		headhunter.NewClient,

		// Infrastructure - Neo4j
		provideNeo4jClient,

		// Repositories
		provideRepository,

		// Providers
		provideHeadHunterProvider,
		provideSuperJobProvider,
		provideVacancyProviders,

		// Services
		vacancy.NewServiceWithDeps,

		// Tool resources
		provideSheetsExporter,
		newResources,
	)

	return nil, nil, nil
}
