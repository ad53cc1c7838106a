// Package questdb adapts the pipeline to a QuestDB time-series store:
// idempotent schema/index provisioning over the postgres wire and row
// ingestion over the influx line protocol.
package questdb

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/lcalzada-xor/aptel/internal/core/ports"
)

//go:embed schema.sql
var schemaDDL string

// Provisioner performs idempotent schema and secondary-index provisioning.
type Provisioner struct {
	store        ports.MetadataStore
	table        string
	indexColumns []string
}

// NewProvisioner creates a provisioner for the given table and configured
// index column set.
func NewProvisioner(store ports.MetadataStore, table string, indexColumns []string) *Provisioner {
	return &Provisioner{store: store, table: table, indexColumns: indexColumns}
}

// EnsureSchema executes the embedded DDL. The statement uses
// create-if-not-exists semantics, so running it repeatedly neither errors
// nor duplicates the table.
func (p *Provisioner) EnsureSchema(ctx context.Context) error {
	if err := p.store.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// EnsureIndexes queries the store's column metadata, computes the configured
// minus already-indexed set and issues one index-creation statement per
// missing column, sequentially. It returns the columns it indexed, which
// makes idempotence observable: a second run returns an empty slice.
func (p *Provisioner) EnsureIndexes(ctx context.Context) ([]string, error) {
	indexed, err := p.store.IndexedColumns(ctx, p.table)
	if err != nil {
		return nil, fmt.Errorf("query index metadata: %w", err)
	}

	var created []string
	for _, col := range p.indexColumns {
		if indexed[col] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s ADD INDEX", p.table, col)
		if err := p.store.Exec(ctx, stmt); err != nil {
			return created, fmt.Errorf("create index on %s.%s: %w", p.table, col, err)
		}
		log.Printf("Created index on %s.%s", p.table, col)
		created = append(created, col)
	}
	return created, nil
}
