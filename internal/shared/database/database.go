package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/models"
)

// DB wraps both GORM and sql.DB
type DB struct {
	*sql.DB
	GORM   *gorm.DB
	Driver string
}

// NewDB opens the configured database or exits the process.
func NewDB(driver, connStr string) *DB {
	if connStr == "" {
		log.Fatal("❌ DATABASE_URL is empty")
	}

	db, err := Open(driver, connStr, logger.Warn)
	if err != nil {
		log.Fatalf("❌ Failed to open database: %v", err)
	}

	log.Printf("✅ Database connected (%s)!", driver)
	return db
}

// Open connects through GORM. Postgres schemas come from cmd/migrate;
// sqlite databases are auto-migrated since they are only used locally.
func Open(driver, connStr string, level logger.LogLevel) (*DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "":
		driver = "postgres"
		dialector = postgres.Open(connStr)
	case "sqlite":
		dialector = sqlite.Open(connStr)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", driver)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if driver == "sqlite" {
		// Single writer, and in-memory databases live on one connection.
		sqlDB.SetMaxOpenConns(1)
		if err := gormDB.AutoMigrate(models.All()...); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: sqlDB, GORM: gormDB, Driver: driver}, nil
}

// NewMemoryDB returns an isolated, migrated in-memory sqlite database.
func NewMemoryDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := Open("sqlite", dsn, logger.Silent)
	if err != nil {
		return nil, err
	}
	return db.GORM, nil
}

func (db *DB) Close() error {
	log.Println("🔌 Closing database connection...")
	return db.DB.Close()
}
