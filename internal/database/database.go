// Package database opens the GORM connection and owns schema migration.
package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options tune the pool. Zero values select defaults for the environment.
type Options struct {
	Production bool
	LogLevel   gormlogger.LogLevel
}

// Open connects to PostgreSQL for postgres URLs / key-value DSNs and to SQLite otherwise.
// SQLite DSNs may be prefixed with "sqlite://".
func Open(dsn string, opts Options) (*gorm.DB, error) {
	logLevel := opts.LogLevel
	if logLevel == 0 {
		logLevel = gormlogger.Warn
	}
	gormConfig := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	if IsPostgresDSN(dsn) {
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	} else {
		db, err = gorm.Open(sqlite.Open(sqliteDSN(dsn)), gormConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("could not get database instance: %w", err)
	}
	switch {
	case !IsPostgresDSN(dsn):
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	case opts.Production:
		sqlDB.SetMaxIdleConns(20)
		sqlDB.SetMaxOpenConns(200)
		sqlDB.SetConnMaxLifetime(time.Hour)
	default:
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return db, nil
}

func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

func sqliteDSN(dsn string) string {
	dsn = strings.TrimPrefix(dsn, "sqlite://")
	dsn = strings.TrimPrefix(dsn, "sqlite:")
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Migrate creates or updates every table. The pgvector-backed embeddings table is
// only created on PostgreSQL.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Career{},
		&model.Assessment{},
		&model.SavedCareer{},
		&model.Resume{},
		&model.ChatSession{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Warn("pgvector extension unavailable, semantic search disabled", zap.Error(err))
		return nil
	}
	if err := db.AutoMigrate(&model.CareerEmbedding{}); err != nil {
		return fmt.Errorf("embedding migration failed: %w", err)
	}
	return nil
}

// SupportsVectorSearch reports whether the career_embeddings table exists.
func SupportsVectorSearch(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres" && db.Migrator().HasTable(&model.CareerEmbedding{})
}
