package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM connection for the postgres store driver without
// pinging; readiness is awaited separately and ApplySchema runs after it.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Single front-desk client: a small pool is plenty.
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)

	return db, nil
}

// ApplySchema creates the collection table when missing. Schema is managed
// with plain DDL rather than AutoMigrate so the jsonb column type is explicit.
// Safe to re-run.
func ApplySchema(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"create colecciones", `
CREATE TABLE IF NOT EXISTS colecciones (
  clave      VARCHAR(64) PRIMARY KEY,
  datos      JSONB       NOT NULL DEFAULT '[]'::jsonb,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
		{"seed renove_patients", `
INSERT INTO colecciones (clave, datos) VALUES ('renove_patients', '[]'::jsonb)
ON CONFLICT (clave) DO NOTHING`},
		{"seed renove_treatments", `
INSERT INTO colecciones (clave, datos) VALUES ('renove_treatments', '[]'::jsonb)
ON CONFLICT (clave) DO NOTHING`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("schema patch %q: %w", p.descr, err)
		}
	}
	return nil
}
