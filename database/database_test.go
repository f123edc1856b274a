package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dryRunDB builds SQL without a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=test dbname=test sslmode=disable",
		PreferSimpleProtocol: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestProjectFilters_SQL(t *testing.T) {
	db := dryRunDB(t)
	q := models.ProjectQuery{Search: "50%_off", Category: "Web App", Limit: 5, Offset: 10}.Normalize()

	stmt := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []models.Project
		return tx.Scopes(projectFilters(q)).Order("created_at DESC").Limit(q.Limit).Offset(q.Offset).Find(&out)
	})

	assert.Contains(t, stmt, `FROM "projects"`)
	assert.Contains(t, stmt, `(title ILIKE '%50\%\_off%' OR description ILIKE '%50\%\_off%')`)
	assert.Contains(t, stmt, `category = 'Web App'`)
	assert.Contains(t, stmt, `ORDER BY created_at DESC LIMIT 5 OFFSET 10`)
}

func TestBlogFilters_SQL(t *testing.T) {
	db := dryRunDB(t)
	tests := []struct {
		status models.BlogStatus
		want   string
		absent string
	}{
		{models.BlogStatusFeatured, `featured = true`, "published"},
		{models.BlogStatusPublished, `published = true`, "featured"},
		{models.BlogStatusDraft, `published = false`, "featured"},
		{models.BlogStatusAny, `FROM "blogs"`, "WHERE"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			stmt := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
				var n int64
				return tx.Model(&models.Blog{}).Scopes(blogFilters(models.BlogQuery{Status: tt.status})).Count(&n)
			})
			assert.Contains(t, stmt, tt.want)
			assert.NotContains(t, stmt, tt.absent)
		})
	}

	stmt := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []models.Blog
		return tx.Scopes(blogFilters(models.BlogQuery{Search: "go"})).Find(&out)
	})
	assert.Contains(t, stmt, `title ILIKE '%go%' OR short_description ILIKE '%go%'`)
}

func TestUpdate_SQL(t *testing.T) {
	db := dryRunDB(t)
	cols := models.ProjectPatch{Featured: models.Some(false)}.Columns()
	cols["updated_at"] = bumpUpdatedAt(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	stmt := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var p models.Project
		return tx.Model(&p).Clauses(clause.Returning{}).Where("id = ?", "abc").Updates(cols)
	})

	assert.Contains(t, stmt, `UPDATE "projects" SET`)
	assert.Contains(t, stmt, `"featured"=false`)
	assert.Contains(t, stmt, `GREATEST('2024-05-01 00:00:00', updated_at + interval '1 microsecond')`)
	assert.Contains(t, stmt, `WHERE id = 'abc'`)
	assert.Contains(t, stmt, `RETURNING *`)
	assert.NotContains(t, stmt, `"title"`)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%react%`, likePattern("react"))
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\dir%`, likePattern(`c:\dir`))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, isUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "projects_slug_key"`)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}

func TestWrapWriteError(t *testing.T) {
	err := wrapWriteError("create", "project", "slug", gorm.ErrDuplicatedKey)
	assert.True(t, errs.IsUniqueConstraintViolationError(err))
	assert.Contains(t, err.Error(), "Failed to create project: slug already exists")

	err = wrapWriteError("update", "blog", "slug", errors.New("connection reset by peer"))
	assert.True(t, errs.IsDatabaseQueryError(err))
	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to update blog", apiErr.PublicMessage())
}

func TestMigrate_UsesEmbeddedMigrations(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var gotDir string
	gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
		gotDir = dir
		return errors.New("boom")
	}

	err = Migrate(context.Background(), dryRunDB(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMigrationFailed)
	assert.Equal(t, "migrations", gotDir)
}

func TestOpen_Unreachable(t *testing.T) {
	_, err := Open(Options{DSN: "host=127.0.0.1 port=1 user=test dbname=test sslmode=disable connect_timeout=1"})
	require.Error(t, err)
	assert.True(t, errs.IsDatabaseConnectionError(err))

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.NotEqual(t, apiErr.Error(), apiErr.GetFullError())
}

// TestDatabase_Contract runs the storage contract against a real Postgres.
// Set TEST_DATABASE_URL to enable it; the tables are truncated between cases.
func TestDatabase_Contract(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := Open(Options{DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db))

	runStorageContract(t, func(t *testing.T, clock func() time.Time) Storage {
		require.NoError(t, db.Exec("TRUNCATE users, projects, blogs").Error)
		store := New(db)
		store.now = clock
		return store
	})
}
