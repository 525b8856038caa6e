package store

// Schema is the idempotent DDL applied by `skin api` and `skin catalog refresh`
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id               TEXT PRIMARY KEY,
		brand            TEXT NOT NULL DEFAULT '',
		name             TEXT NOT NULL,
		category         TEXT NOT NULL,
		target_features  TEXT[] NOT NULL DEFAULT '{}',
		tags             TEXT[] NOT NULL DEFAULT '{}',
		ingredients      TEXT[] NOT NULL DEFAULT '{}',
		texture          TEXT NOT NULL DEFAULT '',
		sensitivity_safe BOOLEAN NOT NULL DEFAULT FALSE,
		night_only       BOOLEAN NOT NULL DEFAULT FALSE,
		price            BIGINT NOT NULL DEFAULT 0,
		url              TEXT NOT NULL DEFAULT '',
		image_url        TEXT NOT NULL DEFAULT '',
		position         INTEGER NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (brand, name)
	)`,
	`CREATE TABLE IF NOT EXISTS analysis_log (
		id           BIGSERIAL PRIMARY KEY,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		moisture     REAL,
		sebum        REAL,
		acne         REAL,
		wrinkles     REAL,
		pores        REAL,
		redness      REAL,
		pigmentation REAL,
		image_path   TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS recommendation_log (
		id              UUID PRIMARY KEY,
		user_id         VARCHAR(50) NOT NULL,
		analysis_id     BIGINT,
		overall_score   REAL NOT NULL,
		skin_age        REAL NOT NULL,
		top3_products   TEXT[] NOT NULL DEFAULT '{}',
		input           JSONB NOT NULL,
		recommendation  JSONB NOT NULL,
		config_hash     TEXT NOT NULL,
		catalog_version TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendation_log_user ON recommendation_log (user_id, created_at DESC)`,
}
