package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	api "github.com/rpupo63/portfolio-cms-backend/api"
	"github.com/rpupo63/portfolio-cms-backend/config"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	ctx := context.Background()
	env := config.New()
	if err := config.LoadSSMParameters(ctx, env); err != nil {
		log.Fatal().Err(err).Msg("Error loading SSM parameters")
	}

	cfg, err := config.Load(env)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	var store database.Storage
	var db *gorm.DB

	fmt.Printf("DB_TYPE: %s\n", cfg.DBType)
	switch cfg.DBType {
	case config.DBTypeSupabase:
		fmt.Println("Connecting to Supabase database...")
		db, err = database.Open(database.Options{
			DSN:             cfg.DSN,
			ReplicaDSN:      cfg.ReplicaDSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			var apiErr *errs.ApiErr
			if errors.As(err, &apiErr) {
				log.Fatal().Str("cause", apiErr.GetFullError()).Msg("Error connecting to database")
			}
			log.Fatal().Err(err).Msg("Error connecting to database")
		}
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("Error running migrations")
		}
		store = database.New(db)
	case config.DBTypeMemory:
		fmt.Println("Using in-memory store with sample content")
		store = database.NewMemoryStorage(database.WithFixtures())
	}

	// If generating models, run generation and exit
	if cfg.GenerateModels {
		if db == nil {
			log.Fatal().Msg("GENERATE_MODELS requires DB_TYPE=supa")
		}
		fmt.Println("Generating models and query helpers...")
		if err := models.GenerateModels(db); err != nil {
			log.Fatal().Err(err).Msg("Error generating models")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if cfg.GenerateColumnReport {
		if db == nil {
			log.Fatal().Msg("GENERATE_COLUMN_REPORT requires DB_TYPE=supa")
		}
		fmt.Println("Generating column mismatch report...")
		if _, err := models.GenerateColumnMismatchReport(db); err != nil {
			log.Fatal().Err(err).Msg("Error generating column report")
		}
		return
	}

	uploader := newUploader(ctx, cfg.Storage)

	if cfg.SeedContent {
		fmt.Println("Seeding content...")
		client := services.NewContentClient(store, uploader)
		report, err := services.SeedContent(ctx, client, database.FixtureProjects(), database.FixtureBlogs())
		if err != nil {
			log.Fatal().Err(err).Msg("Error seeding content")
		}
		fmt.Printf("Projects: %d created, %d skipped\n", report.ProjectsCreated, report.ProjectsSkipped)
		fmt.Printf("Blogs: %d created, %d skipped\n", report.BlogsCreated, report.BlogsSkipped)
		return
	}

	if cfg.AdminUsername != "" {
		if _, _, err := services.EnsureAdminUser(ctx, store, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("Error creating admin user")
		}
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server := api.NewServer(store, uploader, cfg)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// newUploader returns nil when object storage is not configured, so the
// upload route answers 503 instead of failing at startup.
func newUploader(ctx context.Context, s config.Storage) services.FileUploader {
	if !s.Enabled() {
		log.Warn().Msg("Object storage not configured, uploads are disabled")
		return nil
	}
	uploader, err := services.NewS3Uploader(ctx, services.StorageConfig{
		Endpoint:        s.Endpoint,
		Region:          s.Region,
		AccessKeyID:     s.AccessKeyID,
		SecretAccessKey: s.SecretAccessKey,
		PublicURL:       s.PublicURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("Error creating uploader, uploads are disabled")
		return nil
	}
	return uploader
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
