package mcp

import (
	"context"
	"fmt"

	"github.com/honeycarbs/vacancy-scanner/internal/config"
	"github.com/honeycarbs/vacancy-scanner/internal/domain"
	"github.com/honeycarbs/vacancy-scanner/internal/domain/vacancy"
	hhprovider "github.com/honeycarbs/vacancy-scanner/internal/domain/vacancy/providers/headhunter"
	sjprovider "github.com/honeycarbs/vacancy-scanner/internal/domain/vacancy/providers/superjob"
	"github.com/honeycarbs/vacancy-scanner/internal/linkcheck"
	"github.com/honeycarbs/vacancy-scanner/internal/mcp/tools"
	"github.com/honeycarbs/vacancy-scanner/internal/storage/jsonfile"
	storage "github.com/honeycarbs/vacancy-scanner/internal/storage/neo4j"
	"github.com/honeycarbs/vacancy-scanner/pkg/headhunter"
	"github.com/honeycarbs/vacancy-scanner/pkg/logging"
	n4j "github.com/honeycarbs/vacancy-scanner/pkg/neo4j"
	"github.com/honeycarbs/vacancy-scanner/pkg/sheets"
	"github.com/honeycarbs/vacancy-scanner/pkg/superjob"
)

// provideURLChecker returns nil when link checks are disabled
func provideURLChecker(cfg config.Config) domain.URLChecker {
	if !cfg.CheckURLs {
		return nil
	}
	return linkcheck.New(linkcheck.Config{
		Timeout:           cfg.HTTPTimeout,
		RequestsPerSecond: cfg.CheckURLsRPS,
		Burst:             1,
		UserAgent:         cfg.HeadHunter.UserAgent,
	})
}

// provideHeadHunterConfig extracts HeadHunter config from main config
func provideHeadHunterConfig(cfg config.Config) headhunter.Config {
	return headhunter.Config{
		BaseURL:   cfg.HeadHunter.BaseURL,
		UserAgent: cfg.HeadHunter.UserAgent,
		Timeout:   cfg.HTTPTimeout,
	}
}

// provideHeadHunterProvider creates the HeadHunter provider from client
func provideHeadHunterProvider(client *headhunter.Client, checker domain.URLChecker, logger *logging.Logger) (*hhprovider.Provider, error) {
	return hhprovider.NewProvider(client, checker, logger)
}

// provideSuperJobProvider returns nil without an API key
func provideSuperJobProvider(cfg config.Config, checker domain.URLChecker, logger *logging.Logger) (*sjprovider.Provider, error) {
	if cfg.SuperJob.APIKey == "" {
		logger.Warn("SuperJob provider disabled", "reason", "SUPERJOB_API_KEY not set")
		return nil, nil
	}

	client, err := superjob.NewClient(superjob.Config{
		AppID:   cfg.SuperJob.APIKey,
		BaseURL: cfg.SuperJob.BaseURL,
		Timeout: cfg.HTTPTimeout,
	})
	if err != nil {
		return nil, err
	}
	return sjprovider.NewProvider(client, checker, logger)
}

// provideVacancyProviders lists providers in menu order: HeadHunter first
func provideVacancyProviders(hh *hhprovider.Provider, sj *sjprovider.Provider) []vacancy.Provider {
	providers := []vacancy.Provider{hh}
	if sj != nil {
		providers = append(providers, sj)
	}
	return providers
}

// provideNeo4jClient connects only for the neo4j storage backend
func provideNeo4jClient(ctx context.Context, cfg config.Config, logger *logging.Logger) (*n4j.Client, func(), error) {
	if cfg.StorageBackend != config.StorageNeo4j {
		return nil, func() {}, nil
	}

	client, err := n4j.NewClient(ctx, n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
		Database: cfg.Neo4j.Database,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Neo4j client initialized", "uri", cfg.Neo4j.URI)

	cleanup := func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("failed to close Neo4j client", "err", err)
		}
	}
	return client, cleanup, nil
}

// provideRepository picks the storage backend
func provideRepository(cfg config.Config, client *n4j.Client) (vacancy.Repository, error) {
	switch cfg.StorageBackend {
	case config.StorageNeo4j:
		if client == nil {
			return nil, fmt.Errorf("neo4j backend selected but client is not configured")
		}
		return storage.NewVacancyRepository(client), nil
	default:
		return jsonfile.NewRepository(), nil
	}
}

// provideSheetsExporter returns nil without Google credentials
func provideSheetsExporter(ctx context.Context, cfg config.Config, logger *logging.Logger) (tools.SheetsExporter, error) {
	if cfg.SheetsCredentialsPath == "" {
		logger.Info("sheets export disabled", "reason", "GOOGLE_SHEETS_CREDENTIALS_PATH not set")
		return nil, nil
	}

	client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.SheetsCredentialsPath})
	if err != nil {
		return nil, err
	}
	return newSheetsExporter(client), nil
}

// newResources creates Resources struct
func newResources(service vacancy.Service, exporter tools.SheetsExporter, neo4jClient *n4j.Client) *Resources {
	return &Resources{
		VacancyService: service,
		SheetsExporter: exporter,
		Neo4jClient:    neo4jClient,
	}
}
