package postgres

import (
	"context"
	"database/sql"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS books (
	id             SERIAL PRIMARY KEY,
	title          TEXT NOT NULL,
	author         TEXT NOT NULL,
	price          INTEGER NOT NULL,
	description    TEXT NOT NULL,
	cover_image    TEXT NOT NULL,
	category       TEXT NOT NULL,
	featured       BOOLEAN NOT NULL DEFAULT FALSE,
	isbn           TEXT,
	pages          INTEGER,
	published_year INTEGER,
	in_stock       BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS portfolio (
	id          SERIAL PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL,
	image       TEXT NOT NULL,
	category    TEXT NOT NULL,
	author      TEXT NOT NULL,
	year        INTEGER
);
`

// EnsureSchema applies the idempotent table definitions. It runs at startup;
// there is no migration history beyond CREATE IF NOT EXISTS.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaDDL)
	return err
}
