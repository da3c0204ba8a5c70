package auth

import (
	"embed"
)

//go:embed data/sql/migrations
var migrationsFS embed.FS

// GetMigrationsFS exposes the embedded SQL migrations that create the users
// and verifications tables, so the embedding application can run them with
// its own migration tooling.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}
