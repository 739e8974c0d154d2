package db

import (
	"database/sql"
)

// MigrateUp creates the subsidies table and its indexes.
// All statements are idempotent so the migration can run on every startup.
//
// The UNIQUE(source, url) constraint is load-bearing: it enforces the
// natural-key invariant (at most one row per listing per source) even if two
// ingestion runs ever race.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS subsidies (
    id                BIGSERIAL PRIMARY KEY,
    title             TEXT NOT NULL,
    description       TEXT NOT NULL DEFAULT '',
    organization      TEXT NOT NULL,
    target            TEXT NOT NULL DEFAULT '',
    amount            TEXT NOT NULL DEFAULT '',
    application_start DATE,
    application_end   DATE,
    url               TEXT NOT NULL,
    keywords          TEXT NOT NULL DEFAULT '',
    source            VARCHAR(20) NOT NULL,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT subsidies_source_url_key UNIQUE (source, url)
)`); err != nil {
		return err
	}

	indexes := []string{
		// 団体別集計・検索用
		`CREATE INDEX IF NOT EXISTS idx_subsidies_organization ON subsidies(organization)`,
		// 募集中フィルタ用 (application_end IS NULL OR application_end >= today)
		`CREATE INDEX IF NOT EXISTS idx_subsidies_application_end ON subsidies(application_end)`,
		// 一覧の並び順で使用
		`CREATE INDEX IF NOT EXISTS idx_subsidies_updated_at ON subsidies(updated_at DESC)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}
