package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create tables manually with raw SQL
	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS refund_requests (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		order_id TEXT NOT NULL,
		order_name TEXT NOT NULL,
		email TEXT,
		product_title TEXT,
		mode TEXT NOT NULL,
		total_paid DECIMAL(10,2),
		amount_due DECIMAL(10,2),
		tier_index INTEGER DEFAULT -1,
		percentage DECIMAL,
		penalty_percentage DECIMAL,
		explanation TEXT,
		is_fallback BOOLEAN DEFAULT false,
		status TEXT DEFAULT 'PENDING',
		resolved_by TEXT,
		submitted_at TIMESTAMPTZ,
		resolved_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS scheduled_products (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		external_id BIGINT NOT NULL,
		title TEXT NOT NULL,
		sku TEXT,
		price DECIMAL(10,2),
		publish_at TIMESTAMPTZ,
		status TEXT DEFAULT 'SCHEDULED',
		published_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);
	`

	err = db.Exec(createTablesSQL).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
