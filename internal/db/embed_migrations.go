package db

import "embed"

// MigrationFS holds the schema for users, sessions, news, bookmarks, devices,
// analysis and scraping. Applied by cmd/migrate through internal/db/migrate.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
