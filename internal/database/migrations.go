package database

import (
	"embed"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationDialect = "sqlite3"

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}
}

// Migrate applies every pending migration and returns how many ran.
func (s *DB) Migrate() (int, error) {
	return s.migrate(migrate.Up, 0)
}

// Rollback reverts up to steps migrations; zero reverts all of them.
func (s *DB) Rollback(steps int) (int, error) {
	return s.migrate(migrate.Down, steps)
}

func (s *DB) migrate(direction migrate.MigrationDirection, max int) (int, error) {
	log := s.log.Function("migrate")

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return 0, log.Err("failed to get database from GORM", err)
	}

	applied, err := migrate.ExecMax(sqlDB, migrationDialect, migrationSource(), direction, max)
	if err != nil {
		return applied, log.Err("failed to run migrations", err, "direction", direction)
	}

	log.Info("Migrations complete", "applied", applied, "direction", direction)
	return applied, nil
}
