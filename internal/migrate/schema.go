package migrate

import (
	"context"
	"database/sql"

	"country-api/internal/logger"
)

var stmts = []string{
	`CREATE TABLE IF NOT EXISTS _countries (
		iso CHAR(2) PRIMARY KEY,
		iso3 TEXT NOT NULL DEFAULT '',
		iso_numeric INT NOT NULL DEFAULT 0,
		fips TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		capital TEXT NOT NULL DEFAULT '',
		area_km2 DOUBLE PRECISION NOT NULL DEFAULT 0,
		population BIGINT NOT NULL DEFAULT 0,
		continent TEXT NOT NULL DEFAULT '',
		tld TEXT NOT NULL DEFAULT '',
		currency_code TEXT NOT NULL DEFAULT '',
		currency_name TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		postal_format TEXT NOT NULL DEFAULT '',
		postal_regex TEXT NOT NULL DEFAULT '',
		languages TEXT NOT NULL DEFAULT '',
		geoname_id BIGINT NOT NULL DEFAULT 0,
		neighbours TEXT NOT NULL DEFAULT '',
		equivalent_fips TEXT NOT NULL DEFAULT '',
		polygons INT NOT NULL DEFAULT 0,
		vertices INT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS _revgeo_stats_total (
		id INT PRIMARY KEY,
		queries BIGINT NOT NULL DEFAULT 0,
		matches BIGINT NOT NULL DEFAULT 0
	)`,
	`INSERT INTO _revgeo_stats_total(id, queries, matches) VALUES(1, 0, 0) ON CONFLICT (id) DO NOTHING`,
	`CREATE TABLE IF NOT EXISTS _revgeo_stats_daily (
		day DATE PRIMARY KEY,
		queries BIGINT NOT NULL DEFAULT 0,
		matches BIGINT NOT NULL DEFAULT 0,
		no_match BIGINT NOT NULL DEFAULT 0,
		out_of_range BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS _revgeo_country_daily (
		day DATE NOT NULL,
		iso CHAR(2) NOT NULL,
		hits BIGINT NOT NULL DEFAULT 0,
		PRIMARY KEY (day, iso)
	)`,
}

// EnsureSchema：首次运行时建表；全部语句幂等，可在每次启动时执行
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, s := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	logger.L().Debug("schema_done", "statements", len(stmts))
	return nil
}
