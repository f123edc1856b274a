package models

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

/*
Schema tooling.

GENERATE_MODELS=true writes typed query helpers for the content tables to
./generated using gorm gen, then prints the column report.

GENERATE_COLUMN_REPORT=true only prints the column report: for every content
table, the columns that exist in the database but have no field on the Go
model, and the model fields that have no column yet.

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: projects ---
Found 1 columns not accounted for in model:
  - legacy_images

--- Table: blogs ---
All columns are accounted for in the model.

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// ContentModels lists the models backed by a table, in migration order.
func ContentModels() []any {
	return []any{User{}, Project{}, Blog{}}
}

func GenerateModels(db *gorm.DB) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	verbose := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	db = db.Session(&gorm.Session{
		Logger:                 verbose,
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(ContentModels()...)

	if _, err := GenerateColumnMismatchReport(db); err != nil {
		return err
	}

	g.Execute()
	fmt.Println("Model generation complete!")
	return nil
}

// ColumnMismatch is the report entry for one table.
type ColumnMismatch struct {
	Table         string
	Exists        bool
	UnknownInDB   []string // columns with no model field
	MissingFromDB []string // model fields with no column
}

// GenerateColumnMismatchReport prints and returns the column report.
func GenerateColumnMismatchReport(db *gorm.DB) ([]ColumnMismatch, error) {
	fmt.Println("=== COLUMN MISMATCH REPORT ===")

	var (
		report []ColumnMismatch
		total  int
		cache  sync.Map
	)
	for _, model := range ContentModels() {
		s, err := schema.Parse(model, &cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("parsing model %T: %w", model, err)
		}

		fmt.Printf("\n--- Table: %s ---\n", s.Table)
		entry := ColumnMismatch{Table: s.Table}

		dbColumns, err := getTableColumns(db, s.Table)
		if err != nil {
			return nil, err
		}
		if len(dbColumns) == 0 {
			fmt.Println("Table does not exist yet (run the migrations first)")
			report = append(report, entry)
			continue
		}
		entry.Exists = true
		entry.UnknownInDB, entry.MissingFromDB = diffColumns(dbColumns, s.DBNames)

		if len(entry.UnknownInDB) == 0 && len(entry.MissingFromDB) == 0 {
			fmt.Println("All columns are accounted for in the model.")
		}
		if len(entry.UnknownInDB) > 0 {
			fmt.Printf("Found %d columns not accounted for in model:\n", len(entry.UnknownInDB))
			for _, col := range entry.UnknownInDB {
				fmt.Printf("  - %s\n", col)
			}
		}
		if len(entry.MissingFromDB) > 0 {
			fmt.Printf("Found %d model fields without a column:\n", len(entry.MissingFromDB))
			for _, col := range entry.MissingFromDB {
				fmt.Printf("  - %s\n", col)
			}
		}
		total += len(entry.UnknownInDB) + len(entry.MissingFromDB)
		report = append(report, entry)
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Total mismatched columns across all tables: %d\n", total)
	return report, nil
}

func getTableColumns(db *gorm.DB, tableName string) ([]string, error) {
	var columns []string
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position
	`
	if err := db.Raw(query, tableName).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}
	return columns, nil
}

// diffColumns returns the database columns missing from the model and the
// model columns missing from the database, both sorted.
func diffColumns(dbColumns, modelColumns []string) (unknownInDB, missingFromDB []string) {
	inModel := make(map[string]bool, len(modelColumns))
	for _, c := range modelColumns {
		inModel[strings.ToLower(c)] = true
	}
	inDB := make(map[string]bool, len(dbColumns))
	for _, c := range dbColumns {
		c = strings.ToLower(c)
		inDB[c] = true
		if !inModel[c] {
			unknownInDB = append(unknownInDB, c)
		}
	}
	for _, c := range modelColumns {
		if !inDB[strings.ToLower(c)] {
			missingFromDB = append(missingFromDB, c)
		}
	}
	sort.Strings(unknownInDB)
	sort.Strings(missingFromDB)
	return unknownInDB, missingFromDB
}
