package database

import (
	"context"
	"path/filepath"
	"testing"

	"coutupro/config"
	"coutupro/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db := &DB{log: logger.New("test")}
	testConfig := config.Config{
		DatabaseDbPath: filepath.Join(t.TempDir(), "test.db"),
	}

	require.NoError(t, db.initializeSQLiteDB(&gorm.Config{}, testConfig))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_WithoutCache(t *testing.T) {
	testConfig := config.Config{
		DatabaseDbPath: filepath.Join(t.TempDir(), "coutupro.db"),
	}

	db, err := New(testConfig)
	require.NoError(t, err)
	defer db.Close()

	assert.NotNil(t, db.SQL)
	assert.Nil(t, db.Cache.General)
	assert.Nil(t, db.Cache.Dashboard)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(config.Config{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database path is empty")
}

func TestInitializeSQLiteDB_CreatesFile(t *testing.T) {
	db := &DB{log: logger.New("test")}
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	err := db.initializeSQLiteDB(&gorm.Config{}, config.Config{DatabaseDbPath: dbPath})
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, dbPath)
}

func TestInitializeSQLiteDB_InMemory(t *testing.T) {
	db := &DB{log: logger.New("test")}

	err := db.initializeSQLiteDB(&gorm.Config{}, config.Config{DatabaseDbPath: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	sqlDB, err := db.SQL.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestInitializeCacheDB_MissingConfig(t *testing.T) {
	db := &DB{log: logger.New("test")}

	err := db.initializeCacheDB(config.Config{DatabaseCacheAddress: "", DatabaseCachePort: 6379})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "address or port is empty")

	err = db.initializeCacheDB(config.Config{DatabaseCacheAddress: "localhost", DatabaseCachePort: 0})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "address or port is empty")
}

func TestMigrate_CreatesTables(t *testing.T) {
	db := newTestDB(t)

	applied, err := db.Migrate()
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	for _, table := range []string{
		"users", "access_codes", "clients", "measurements",
		"orders", "payments", "alterations", "alerts", "flags",
	} {
		assert.True(t, db.SQL.Migrator().HasTable(table), table)
	}

	applied, err = db.Migrate()
	require.NoError(t, err)
	assert.Zero(t, applied)
}

func TestRollback_DropsTables(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Migrate()
	require.NoError(t, err)

	reverted, err := db.Rollback(0)
	require.NoError(t, err)
	assert.Equal(t, 1, reverted)
	assert.False(t, db.SQL.Migrator().HasTable("clients"))
}

func TestClose_WithNilSQL(t *testing.T) {
	db := &DB{log: logger.New("test")}
	assert.NoError(t, db.Close())
}

func TestSQLWithContext(t *testing.T) {
	db := newTestDB(t)

	gormDB := db.SQLWithContext(context.Background())
	assert.NotNil(t, gormDB)
	assert.NotSame(t, db.SQL, gormDB)
}

func TestCacheBuilder_NilClient(t *testing.T) {
	builder := NewCacheBuilder(nil, "dashboard")

	assert.NoError(t, builder.WithStruct(map[string]int{"a": 1}).Set())

	var dest map[string]int
	found, err := builder.Get(&dest)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, builder.Delete())
}
