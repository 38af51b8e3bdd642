package graph

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v6/neo4j"

	"github.com/fleetsight/fleetsight-api/internal/domain/repository"
	"github.com/fleetsight/fleetsight-api/internal/schema"
)

// Neo4jRunner implements Runner using the official Neo4j Go driver.
type Neo4jRunner struct {
	driver   neo4j.Driver
	database string
}

// NewNeo4jRunner creates a runner and verifies connectivity.
func NewNeo4jRunner(ctx context.Context, uri, user, password, database string) (*Neo4jRunner, error) {
	driver, err := neo4j.NewDriver(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver for %s: %w", uri, err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		if closeErr := driver.Close(ctx); closeErr != nil {
			log.Printf("[Neo4j] Warning: failed to close driver after connectivity check: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to verify Neo4j connectivity at %s: %w", uri, err)
	}

	log.Printf("[Neo4j] Connected to %s as %s", uri, user)
	return &Neo4jRunner{driver: driver, database: database}, nil
}

// Run executes one statement eagerly and flattens each record into a plain
// property map. Node and relationship values collapse to their properties
// so callers never touch driver types.
func (r *Neo4jRunner) Run(ctx context.Context, cypher string, params map[string]any) ([]repository.Record, error) {
	result, err := neo4j.ExecuteQuery(ctx, r.driver, cypher, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(r.database),
	)
	if err != nil {
		return nil, fmt.Errorf("neo4j query failed: %w", err)
	}

	records := make([]repository.Record, 0, len(result.Records))
	for _, rec := range result.Records {
		m := rec.AsMap()
		for key, value := range m {
			m[key] = flattenValue(value)
		}
		records = append(records, m)
	}
	return records, nil
}

// Close shuts down the driver.
func (r *Neo4jRunner) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

// ApplySchema creates the uniqueness constraints and indexes the graph
// model relies on. Statements are idempotent.
func (r *Neo4jRunner) ApplySchema(ctx context.Context) error {
	for _, stmt := range schema.Constraints {
		if _, err := neo4j.ExecuteQuery(ctx, r.driver, stmt, nil,
			neo4j.EagerResultTransformer,
			neo4j.ExecuteQueryWithDatabase(r.database),
		); err != nil {
			return fmt.Errorf("failed to apply constraint: %w", err)
		}
	}
	for _, stmt := range schema.Indexes {
		if _, err := neo4j.ExecuteQuery(ctx, r.driver, stmt, nil,
			neo4j.EagerResultTransformer,
			neo4j.ExecuteQueryWithDatabase(r.database),
		); err != nil {
			return fmt.Errorf("failed to apply index: %w", err)
		}
	}
	log.Printf("[Neo4j] Applied %d constraints and %d indexes", len(schema.Constraints), len(schema.Indexes))
	return nil
}

func flattenValue(v any) any {
	switch tv := v.(type) {
	case neo4j.Node:
		return tv.Props
	case neo4j.Relationship:
		return tv.Props
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = flattenValue(item)
		}
		return out
	default:
		return v
	}
}
