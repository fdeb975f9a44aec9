package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/pbi-atlas/pkg/models/export"
	"github.com/de-tools/pbi-atlas/pkg/store/duckdb"
)

// Store persists exported measure and page records and answers keyword
// queries over them. Search is a plain case-insensitive substring match
// across the text columns; semantic search lives elsewhere.
type Store interface {
	AddMeasures(ctx context.Context, records []export.MeasureRecord) error
	AddPages(ctx context.Context, records []export.PageRecord) error
	SearchMeasures(ctx context.Context, query string, limit int) ([]export.MeasureRecord, error)
	SearchPages(ctx context.Context, query string, limit int) ([]export.PageRecord, error)
}

type catalogStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &catalogStore{db: db}, nil
}

func (c *catalogStore) AddMeasures(ctx context.Context, records []export.MeasureRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT OR REPLACE INTO measure_catalog (
			report, entity, name, usage_state, expression,
			referenced_measures, referenced_by, used_in_pages,
			author, description, last_change
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := c.prepare(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err = stmt.ExecContext(ctx,
			record.Report,
			record.Table,
			record.Name,
			record.UsageState,
			record.Expression,
			record.ReferencedMeasures,
			record.ReferencedBy,
			record.UsedInPages,
			record.Author,
			record.Description,
			record.LastChange,
		)
		if err != nil {
			return fmt.Errorf("insert measure record: %w", err)
		}
	}
	return nil
}

func (c *catalogStore) AddPages(ctx context.Context, records []export.PageRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT OR REPLACE INTO page_catalog (
			report, name, visible, visual_count,
			used_measures, used_fields, visual_titles, description
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := c.prepare(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err = stmt.ExecContext(ctx,
			record.Report,
			record.Name,
			record.Visible,
			record.VisualCount,
			record.UsedMeasures,
			record.UsedFields,
			record.VisualTitles,
			record.Description,
		)
		if err != nil {
			return fmt.Errorf("insert page record: %w", err)
		}
	}
	return nil
}

func (c *catalogStore) SearchMeasures(ctx context.Context, query string, limit int) ([]export.MeasureRecord, error) {
	pattern := "%" + query + "%"
	rows, err := c.db.QueryContext(ctx, `
		SELECT report, entity, name, usage_state, expression,
			referenced_measures, referenced_by, used_in_pages,
			author, description, last_change
		FROM measure_catalog
		WHERE name ILIKE ? OR expression ILIKE ? OR description ILIKE ?
		ORDER BY report, entity, name
		LIMIT ?`,
		pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search measures: %w", err)
	}
	defer rows.Close()

	var records []export.MeasureRecord
	for rows.Next() {
		var r export.MeasureRecord
		err := rows.Scan(
			&r.Report, &r.Table, &r.Name, &r.UsageState, &r.Expression,
			&r.ReferencedMeasures, &r.ReferencedBy, &r.UsedInPages,
			&r.Author, &r.Description, &r.LastChange,
		)
		if err != nil {
			return nil, fmt.Errorf("scan measure record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (c *catalogStore) SearchPages(ctx context.Context, query string, limit int) ([]export.PageRecord, error) {
	pattern := "%" + query + "%"
	rows, err := c.db.QueryContext(ctx, `
		SELECT report, name, visible, visual_count,
			used_measures, used_fields, visual_titles, description
		FROM page_catalog
		WHERE name ILIKE ? OR visual_titles ILIKE ? OR description ILIKE ?
		ORDER BY report, name
		LIMIT ?`,
		pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search pages: %w", err)
	}
	defer rows.Close()

	var records []export.PageRecord
	for rows.Next() {
		var r export.PageRecord
		err := rows.Scan(
			&r.Report, &r.Name, &r.Visible, &r.VisualCount,
			&r.UsedMeasures, &r.UsedFields, &r.VisualTitles, &r.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("scan page record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// prepare binds to an ambient transaction when the context carries one.
func (c *catalogStore) prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		return tx.PrepareContext(ctx, query)
	}
	return c.db.PrepareContext(ctx, query)
}
