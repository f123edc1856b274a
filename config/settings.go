package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-cms-backend/errs"
)

// Store backends selected by DB_TYPE.
const (
	DBTypeSupabase = "supa"
	DBTypeMemory   = "memory"
)

// Config is the typed view of the environment, built once at startup.
type Config struct {
	DBType     string
	DSN        string
	ReplicaDSN string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	Storage Storage

	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	AcceptedOrigins []string

	AuthJWTSecret string
	AdminUsername string
	AdminPassword string

	GenerateModels       bool
	GenerateColumnReport bool
	SeedContent          bool
}

// Storage holds the S3-compatible object storage settings.
type Storage struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
}

// Enabled reports whether uploads can be served.
func (s Storage) Enabled() bool {
	return s.Endpoint != "" && s.AccessKeyID != "" && s.SecretAccessKey != ""
}

// Load builds a Config from an environment map such as the one New returns.
func Load(env map[string]string) (Config, error) {
	cfg := Config{
		DBType:     strings.ToLower(GetString(env, "DB_TYPE", "")),
		ReplicaDSN: GetString(env, "SUPABASE_DB_REPLICA_URL", ""),

		MaxOpenConns:    GetInt(env, "DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    GetInt(env, "DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(GetInt(env, "DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,

		Port:            GetString(env, "PORT", "8080"),
		ReadTimeout:     time.Duration(GetInt(env, "READ_TIMEOUT_SECONDS", 180)) * time.Second,
		WriteTimeout:    time.Duration(GetInt(env, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second,
		IdleTimeout:     time.Duration(GetInt(env, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second,
		AcceptedOrigins: GetList(env, "ACCEPTED_ORIGINS", []string{"*"}),

		AuthJWTSecret: GetString(env, "AUTH_JWT_SECRET", ""),
		AdminUsername: GetString(env, "ADMIN_USERNAME", ""),
		AdminPassword: GetString(env, "ADMIN_PASSWORD", ""),

		GenerateModels:       GetBool(env, "GENERATE_MODELS", false),
		GenerateColumnReport: GetBool(env, "GENERATE_COLUMN_REPORT", false),
		SeedContent:          GetBool(env, "SEED_CONTENT", false),
	}

	dbURL := GetString(env, "SUPABASE_DB_URL", "")
	dbKey := GetString(env, "SUPABASE_DB_KEY", "")

	if cfg.DBType == "" {
		cfg.DBType = DBTypeMemory
		if dbURL != "" || dbKey != "" {
			cfg.DBType = DBTypeSupabase
		}
	}

	switch cfg.DBType {
	case DBTypeMemory:
	case DBTypeSupabase:
		var missing []string
		if dbURL == "" {
			missing = append(missing, "SUPABASE_DB_URL")
		}
		if dbKey == "" {
			missing = append(missing, "SUPABASE_DB_KEY")
		}
		if len(missing) > 0 {
			return Config{}, errs.NewConfigMissingError(missing...)
		}
		dsn, err := BuildDSN(dbURL, dbKey)
		if err != nil {
			return Config{}, errs.NewConfigInvalidError("SUPABASE_DB_URL", err)
		}
		cfg.DSN = dsn
	default:
		return Config{}, errs.NewConfigInvalidError("DB_TYPE", fmt.Errorf("unsupported value %q", cfg.DBType))
	}

	if cfg.AdminUsername != "" && cfg.AdminPassword == "" {
		return Config{}, errs.NewConfigMissingError("ADMIN_PASSWORD")
	}

	supabaseURL := strings.TrimRight(GetString(env, "SUPABASE_URL", ""), "/")
	cfg.Storage = Storage{
		Endpoint:        GetString(env, "STORAGE_ENDPOINT", ""),
		Region:          GetString(env, "STORAGE_REGION", "us-east-1"),
		AccessKeyID:     GetString(env, "STORAGE_ACCESS_KEY_ID", ""),
		SecretAccessKey: GetString(env, "STORAGE_SECRET_ACCESS_KEY", ""),
		PublicURL:       GetString(env, "STORAGE_PUBLIC_URL", ""),
	}
	if cfg.Storage.Endpoint == "" && supabaseURL != "" {
		cfg.Storage.Endpoint = supabaseURL + "/storage/v1/s3"
	}
	if cfg.Storage.PublicURL == "" && supabaseURL != "" {
		cfg.Storage.PublicURL = supabaseURL + "/storage/v1/object/public"
	}

	return cfg, nil
}

// BuildDSN turns SUPABASE_DB_URL and SUPABASE_DB_KEY into a Postgres DSN.
// The URL may be a postgres:// connection string or a bare host; the key is
// used as the password and TLS is always required.
func BuildDSN(dbURL, key string) (string, error) {
	dbURL = strings.TrimSpace(dbURL)
	if strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://") {
		u, err := url.Parse(dbURL)
		if err != nil {
			return "", err
		}
		if u.Host == "" {
			return "", fmt.Errorf("missing host in %q", u.Redacted())
		}
		user := "postgres"
		if u.User != nil && u.User.Username() != "" {
			user = u.User.Username()
		}
		u.User = url.UserPassword(user, key)
		if u.Path == "" || u.Path == "/" {
			u.Path = "/postgres"
		}
		q := u.Query()
		if q.Get("sslmode") == "" {
			q.Set("sslmode", "require")
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	host, port := dbURL, "5432"
	if h, p, ok := strings.Cut(dbURL, ":"); ok {
		host, port = h, p
	}
	if host == "" || strings.ContainsAny(host, " /") {
		return "", fmt.Errorf("invalid database host %q", dbURL)
	}
	return fmt.Sprintf("host=%s user=postgres password=%s dbname=postgres port=%s sslmode=require",
		host, key, port), nil
}
