package db

// SchemaSQL is the complete schema for fresh vaultboard installs.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(). If repository code references a column that
// doesn't exist here, tests fail immediately with "no such column" - drift is
// caught at development time, not in a user's database.
//
// When adding columns or tables: add a migration in migrations.go AND update
// SchemaSQL here so fresh installs and upgraded installs agree.
const SchemaSQL = `
-- Cards (the durable unit of content)
CREATE TABLE IF NOT EXISTS cards (
	id TEXT PRIMARY KEY,
	content TEXT NOT NULL,
	category TEXT NOT NULL CHECK(category IN ('unassimilated', 'program', 'categorized', 'grit', 'tough', 'junk')) DEFAULT 'unassimilated',
	sensitivity TEXT NOT NULL CHECK(sensitivity IN ('private', 'personal', 'business', 'ideas')),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	last_published_at DATETIME,
	last_commit_sha TEXT
);

-- Publish state (one record per publish repository)
CREATE TABLE IF NOT EXISTS publish_state (
	repo_path TEXT PRIMARY KEY,
	publishable_count INTEGER NOT NULL DEFAULT 0,
	published_count INTEGER NOT NULL DEFAULT 0,
	last_published_at DATETIME,
	last_commit_sha TEXT,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Publish history (one record per publish run)
CREATE TABLE IF NOT EXISTS publish_history (
	id TEXT PRIMARY KEY,
	repo_path TEXT NOT NULL,
	commit_sha TEXT,
	cards_published INTEGER NOT NULL DEFAULT 0,
	pushed INTEGER NOT NULL DEFAULT 0,
	message TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_cards_category ON cards(category);
CREATE INDEX IF NOT EXISTS idx_cards_sensitivity ON cards(sensitivity);
CREATE INDEX IF NOT EXISTS idx_publish_history_repo ON publish_history(repo_path, created_at);
`

// InitSchema creates the schema on a fresh database and brings older
// databases up to date via migrations.
func InitSchema() error {
	database, err := GetDB()
	if err != nil {
		return err
	}

	if _, err := database.Exec(SchemaSQL); err != nil {
		return err
	}

	return RunMigrations(database)
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
