// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/vaultboard/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
// Uses db.GetSchemaSQL() to prevent test schemas from drifting.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedCard inserts a test card and returns its ID.
func seedCard(t *testing.T, db *sql.DB, id, content, category, sensitivity string) string {
	t.Helper()
	if id == "" {
		id = "CARD-001"
	}
	if content == "" {
		content = "test card content"
	}
	if category == "" {
		category = "unassimilated"
	}
	if sensitivity == "" {
		sensitivity = "ideas"
	}
	_, err := db.Exec("INSERT INTO cards (id, content, category, sensitivity) VALUES (?, ?, ?, ?)", id, content, category, sensitivity)
	if err != nil {
		t.Fatalf("failed to seed card: %v", err)
	}
	return id
}
