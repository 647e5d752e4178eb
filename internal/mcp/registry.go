package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/vacancy-scanner/internal/domain/vacancy"
	"github.com/honeycarbs/vacancy-scanner/internal/mcp/tools"
	"github.com/honeycarbs/vacancy-scanner/pkg/logging"
	n4j "github.com/honeycarbs/vacancy-scanner/pkg/neo4j"
)

type ToolRegistry struct {
	logger *logging.Logger
}

// Resources holds what the tools need. SheetsExporter and Neo4jClient are nil
// when their integrations are not configured.
type Resources struct {
	VacancyService vacancy.Service
	SheetsExporter tools.SheetsExporter
	Neo4jClient    *n4j.Client
}

func NewToolRegistry(logger *logging.Logger) *ToolRegistry {
	return &ToolRegistry{logger: logger}
}

func (r *ToolRegistry) RegisterAll(server *sdkmcp.Server, res Resources) {
	tools.Register(server,
		tools.WithVacancyTools(res.VacancyService, r.logger),
		tools.WithSheetsExport(res.SheetsExporter, r.logger),
	)
}
