package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const MeasureCatalogSchema = `
	CREATE TABLE IF NOT EXISTS measure_catalog (
		report VARCHAR NOT NULL,
		entity VARCHAR NOT NULL,
		name VARCHAR NOT NULL,
		usage_state VARCHAR,
		expression VARCHAR,
		referenced_measures VARCHAR,
		referenced_by VARCHAR,
		used_in_pages VARCHAR,
		author VARCHAR,
		description VARCHAR,
		last_change VARCHAR,
		PRIMARY KEY (report, entity, name)
	);
`
const PageCatalogSchema = `
	CREATE TABLE IF NOT EXISTS page_catalog (
		report VARCHAR NOT NULL,
		name VARCHAR NOT NULL,
		visible BOOLEAN,
		visual_count INTEGER,
		used_measures VARCHAR,
		used_fields VARCHAR,
		visual_titles VARCHAR,
		description VARCHAR,
		PRIMARY KEY (report, name)
	);
`

var bootQueries = []string{
	MeasureCatalogSchema,
	PageCatalogSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
