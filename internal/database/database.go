package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"coutupro/config"
	logg "coutupro/internal/logger"

	"github.com/valkey-io/valkey-go"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const memoryPath = ":memory:"

type CacheClient valkey.Client

type Cache struct {
	General   CacheClient
	Dashboard CacheClient
}

type DB struct {
	SQL   *gorm.DB
	Cache Cache
	log   logg.Logger
}

func New(config config.Config) (DB, error) {
	log := logg.New("database").Function("New")

	log.Info("Initializing database")
	db := &DB{log: log}

	err := db.initializeDB(config)
	if err != nil {
		return DB{}, log.Err("failed to initialize database", err)
	}

	if !config.CacheEnabled() {
		log.Info("Cache address not configured, running without cache")
		return *db, nil
	}

	err = db.initializeCacheDB(config)
	if err != nil {
		_ = db.Close()
		return DB{}, log.Err("failed to initialize cache database", err)
	}

	return *db, nil
}

func (s *DB) initializeDB(config config.Config) error {
	logLevel := logger.Warn
	if config.IsDevelopment() {
		logLevel = logger.Info
	}

	gormLogger := logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)

	gormConfig := &gorm.Config{
		Logger:          gormLogger,
		PrepareStmt:     true,
		TranslateError:  true,
		CreateBatchSize: 100,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	return s.initializeSQLiteDB(gormConfig, config)
}

func (s *DB) initializeSQLiteDB(gormConfig *gorm.Config, config config.Config) error {
	log := s.log.Function("initializeSQLiteDB")

	dbPath := config.DatabaseDbPath
	if dbPath == "" {
		return log.Error("database path is empty", "dbPath", dbPath)
	}

	if dbPath != memoryPath {
		dir := filepath.Dir(dbPath)
		log.Info("Creating database directory", "dir", dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return log.Err("failed to create database directory", err, "dir", dir)
		}
	}

	log.Info("Connecting with GORM", "dbPath", dbPath)
	db, err := gorm.Open(sqlite.Open(dbPath), gormConfig)
	if err != nil {
		return log.Err("failed to open database with GORM", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database from GORM", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return log.Err("failed to ping database through GORM", err)
	}

	// One connection: a single writer, and an in-memory database stays
	// the same database across calls.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	log.Info("Successfully connected with GORM")
	s.SQL = db

	return nil
}

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")

	if config.DatabaseCacheAddress == "" || config.DatabaseCachePort == 0 {
		return log.Error(
			"cache address or port is empty",
			"address", config.DatabaseCacheAddress,
			"port", config.DatabaseCachePort,
		)
	}

	address := fmt.Sprintf("%s:%d", config.DatabaseCacheAddress, config.DatabaseCachePort)

	general, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		SelectDB:    0,
	})
	if err != nil {
		return log.Err("failed to create general cache client", err, "address", address)
	}
	s.Cache.General = general

	dashboard, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		SelectDB:    1,
	})
	if err != nil {
		return log.Err("failed to create dashboard cache client", err, "address", address)
	}
	s.Cache.Dashboard = dashboard

	log.Info("Connected to cache", "address", address)
	return nil
}

func (s *DB) Close() (err error) {
	if s.SQL != nil {
		sqlDB, dbErr := s.SQL.DB()
		if dbErr == nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				err = s.log.Err("failed to close database", closeErr)
			}
		}
	}

	if s.Cache.General != nil {
		s.Cache.General.Close()
	}

	if s.Cache.Dashboard != nil {
		s.Cache.Dashboard.Close()
	}

	return err
}

func (s *DB) SQLWithContext(ctx context.Context) *gorm.DB {
	return s.SQL.WithContext(ctx)
}
