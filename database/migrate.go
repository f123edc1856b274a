package database

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrations embed.FS

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// Migrate applies the embedded schema migrations.
func Migrate(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errs.NewMigrationError(err)
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return errs.NewMigrationError(err)
	}
	if err := gooseUp(ctx, sqlDB, "migrations"); err != nil {
		return errs.NewMigrationError(err)
	}
	return nil
}
