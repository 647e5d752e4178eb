package neo4j

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/vacancy-scanner/internal/domain"
	"github.com/honeycarbs/vacancy-scanner/internal/domain/vacancy"
	pkgneo4j "github.com/honeycarbs/vacancy-scanner/pkg/neo4j"
)

// Ensure VacancyRepository implements vacancy.Repository
var _ vacancy.Repository = (*VacancyRepository)(nil)

// VacancyRepository stores vacancy lists in Neo4j. The path passed to Save and
// Load names a Collection node; its vacancies hang off CONTAINS edges and keep
// the order they were first saved in.
type VacancyRepository struct {
	client *pkgneo4j.Client
}

// NewVacancyRepository creates a VacancyRepository with a Neo4j client
func NewVacancyRepository(client *pkgneo4j.Client) *VacancyRepository {
	return &VacancyRepository{client: client}
}

const existingQuery = `
	OPTIONAL MATCH (prev:Collection {path: $path})
	WITH prev IS NOT NULL AS existed
	MERGE (c:Collection {path: $path})
	ON CREATE SET c.id = $id, c.createdAt = datetime()
	WITH c, existed
	OPTIONAL MATCH (c)-[:CONTAINS]->(v:Vacancy)
	RETURN existed, v
	ORDER BY v.seq
`

const appendQuery = `
	MATCH (c:Collection {path: $path})
	SET c.updatedAt = datetime()
	WITH c
	UNWIND $vacancies AS vac
	CREATE (c)-[:CONTAINS]->(v:Vacancy)
	SET v = vac
`

const loadQuery = `
	MATCH (c:Collection {path: $path})
	OPTIONAL MATCH (c)-[:CONTAINS]->(v:Vacancy)
	RETURN v
	ORDER BY v.seq
`

// Save appends vacancies not already in the collection, in input order. A new
// collection receives exactly the given vacancies.
func (r *VacancyRepository) Save(ctx context.Context, path string, vacancies []domain.Vacancy) error {
	if path == "" {
		return fmt.Errorf("neo4j: collection path is required")
	}

	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, existingQuery, map[string]any{
			"path": path,
			"id":   uuid.NewString(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read collection %s: %w", path, err)
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}

		existing, err := vacanciesFromRecords(records)
		if err != nil {
			return nil, err
		}

		var fresh []map[string]any
		if collectionExisted(records) {
			fresh = appendRows(existing, vacancies)
		} else {
			fresh = initialRows(vacancies)
		}
		if len(fresh) == 0 {
			return nil, nil
		}

		result, err = tx.Run(ctx, appendQuery, map[string]any{
			"path":      path,
			"vacancies": fresh,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to append vacancies to %s: %w", path, err)
		}
		return result.Consume(ctx)
	})

	return err
}

// Load returns the collection's vacancies in insertion order
func (r *VacancyRepository) Load(ctx context.Context, path string) ([]domain.Vacancy, error) {
	if path == "" {
		return nil, fmt.Errorf("neo4j: collection path is required")
	}

	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, loadQuery, map[string]any{"path": path})
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	records := out.([]*neo4j.Record)
	if len(records) == 0 {
		return nil, &domain.NotFoundError{Resource: "collection " + path}
	}
	return vacanciesFromRecords(records)
}

// appendRows returns node properties for every incoming vacancy that is neither
// stored nor repeated earlier in incoming. Sequence numbers continue after existing.
func appendRows(existing, incoming []domain.Vacancy) []map[string]any {
	seen := make(map[domain.Vacancy]struct{}, len(existing)+len(incoming))
	for _, v := range existing {
		seen[v] = struct{}{}
	}

	seq := int64(len(existing))
	rows := make([]map[string]any, 0, len(incoming))
	for _, v := range incoming {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		rows = append(rows, vacancyProps(v, seq))
		seq++
	}
	return rows
}

// initialRows returns node properties for every vacancy of a new collection,
// duplicates included
func initialRows(vacancies []domain.Vacancy) []map[string]any {
	rows := make([]map[string]any, 0, len(vacancies))
	for i, v := range vacancies {
		rows = append(rows, vacancyProps(v, int64(i)))
	}
	return rows
}

func collectionExisted(records []*neo4j.Record) bool {
	if len(records) == 0 {
		return false
	}
	val, _ := records[0].Get("existed")
	existed, _ := val.(bool)
	return existed
}

// vacancyProps flattens v into node properties. Neo4j drops null properties,
// so an absent salary is stored as an empty currency.
func vacancyProps(v domain.Vacancy, seq int64) map[string]any {
	s := v.Salary()
	return map[string]any{
		"id":           uuid.NewString(),
		"seq":          seq,
		"title":        v.Title(),
		"url":          v.URL(),
		"salaryMin":    int64(s.Min),
		"salaryMax":    int64(s.Max),
		"currency":     s.Currency,
		"pubDate":      v.PubDate(),
		"requirements": v.Requirements(),
	}
}

func vacancyFromProps(props map[string]any) (domain.Vacancy, error) {
	in := domain.VacancyInput{
		Title:        stringProp(props, "title"),
		URL:          stringProp(props, "url"),
		Currency:     stringProp(props, "currency"),
		PubDate:      stringProp(props, "pubDate"),
		Requirements: stringProp(props, "requirements"),
	}
	if in.Currency != "" {
		lo, hi := intProp(props, "salaryMin"), intProp(props, "salaryMax")
		in.SalaryMin, in.SalaryMax = &lo, &hi
	}
	return domain.NewVacancy(context.Background(), in, nil)
}

func vacanciesFromRecords(records []*neo4j.Record) ([]domain.Vacancy, error) {
	out := make([]domain.Vacancy, 0, len(records))
	for i, record := range records {
		val, ok := record.Get("v")
		if !ok || val == nil {
			// collection without vacancies
			continue
		}
		node, ok := val.(neo4j.Node)
		if !ok {
			return nil, fmt.Errorf("neo4j: record %d: unexpected %T", i, val)
		}
		v, err := vacancyFromProps(node.Props)
		if err != nil {
			return nil, fmt.Errorf("neo4j: vacancy node %s: %w", node.ElementId, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func stringProp(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func intProp(props map[string]any, key string) int {
	n, _ := props[key].(int64)
	return int(n)
}
