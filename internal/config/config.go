package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Auth   AuthConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Import ImportConfig
}

// ImportConfig holds batch import settings.
type ImportConfig struct {
	Source         string        `mapstructure:"source"`
	Dir            string        `mapstructure:"dir"`
	Prefix         string        `mapstructure:"prefix"`
	BatchSize      int           `mapstructure:"batch_size"`
	Concurrency    int           `mapstructure:"concurrency"`
	Limit          int           `mapstructure:"limit"`
	LegacyEncoding string        `mapstructure:"legacy_encoding"`
	DocTimeout     time.Duration `mapstructure:"doc_timeout"`
	UploadOriginal bool          `mapstructure:"upload_original"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig holds bearer token signing settings.
type AuthConfig struct {
	Secret      string        `mapstructure:"secret"`
	Issuer      string        `mapstructure:"issuer"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Prefix        string `mapstructure:"prefix"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// MaxFileSizeBytes returns the upload limit in bytes.
func (s *S3Config) MaxFileSizeBytes() int64 {
	return s.MaxFileSizeMB * 1024 * 1024
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the EXPERTAP_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EXPERTAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "expertap")
	v.SetDefault("db.password", "expertap_secret")
	v.SetDefault("db.name", "expertap_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Auth defaults
	v.SetDefault("auth.secret", "change-me-in-production")
	v.SetDefault("auth.issuer", "expertap")
	v.SetDefault("auth.token_expiry", "720h")

	// S3 defaults
	v.SetDefault("s3.region", "eu-central-1")
	v.SetDefault("s3.bucket", "expertap-decisions")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "decisions/")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Import defaults
	v.SetDefault("import.source", "s3")
	v.SetDefault("import.dir", "./data/decisions")
	v.SetDefault("import.prefix", "")
	v.SetDefault("import.batch_size", 50)
	v.SetDefault("import.concurrency", 4)
	v.SetDefault("import.limit", 0)
	v.SetDefault("import.legacy_encoding", "latin-1")
	v.SetDefault("import.doc_timeout", "30s")
	v.SetDefault("import.upload_original", false)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "EXPERTAP_SERVER_PORT",
		"server.read_timeout":    "EXPERTAP_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "EXPERTAP_SERVER_WRITE_TIMEOUT",
		"server.environment":     "EXPERTAP_SERVER_ENVIRONMENT",
		"db.host":                "EXPERTAP_DB_HOST",
		"db.port":                "EXPERTAP_DB_PORT",
		"db.user":                "EXPERTAP_DB_USER",
		"db.password":            "EXPERTAP_DB_PASSWORD",
		"db.name":                "EXPERTAP_DB_NAME",
		"db.sslmode":             "EXPERTAP_DB_SSLMODE",
		"db.max_open":            "EXPERTAP_DB_MAX_OPEN",
		"db.max_idle":            "EXPERTAP_DB_MAX_IDLE",
		"auth.secret":            "EXPERTAP_AUTH_SECRET",
		"auth.issuer":            "EXPERTAP_AUTH_ISSUER",
		"auth.token_expiry":      "EXPERTAP_AUTH_TOKEN_EXPIRY",
		"s3.region":              "EXPERTAP_S3_REGION",
		"s3.bucket":              "EXPERTAP_S3_BUCKET",
		"s3.endpoint":            "EXPERTAP_S3_ENDPOINT",
		"s3.access_key":          "EXPERTAP_S3_ACCESS_KEY",
		"s3.secret_key":          "EXPERTAP_S3_SECRET_KEY",
		"s3.prefix":              "EXPERTAP_S3_PREFIX",
		"s3.max_file_size_mb":    "EXPERTAP_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":      "EXPERTAP_S3_PRESIGN_EXPIRY",
		"log.level":              "EXPERTAP_LOG_LEVEL",
		"log.format":             "EXPERTAP_LOG_FORMAT",
		"cors.allowed_origins":   "EXPERTAP_CORS_ALLOWED_ORIGINS",
		"import.source":          "EXPERTAP_IMPORT_SOURCE",
		"import.dir":             "EXPERTAP_IMPORT_DIR",
		"import.prefix":          "EXPERTAP_IMPORT_PREFIX",
		"import.batch_size":      "EXPERTAP_IMPORT_BATCH_SIZE",
		"import.concurrency":     "EXPERTAP_IMPORT_CONCURRENCY",
		"import.limit":           "EXPERTAP_IMPORT_LIMIT",
		"import.legacy_encoding": "EXPERTAP_IMPORT_LEGACY_ENCODING",
		"import.doc_timeout":     "EXPERTAP_IMPORT_DOC_TIMEOUT",
		"import.upload_original": "EXPERTAP_IMPORT_UPLOAD_ORIGINAL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if EXPERTAP_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("EXPERTAP_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Auth = AuthConfig{
		Secret:      v.GetString("auth.secret"),
		Issuer:      v.GetString("auth.issuer"),
		TokenExpiry: v.GetDuration("auth.token_expiry"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		Prefix:        v.GetString("s3.prefix"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Import = ImportConfig{
		Source:         strings.ToLower(v.GetString("import.source")),
		Dir:            v.GetString("import.dir"),
		Prefix:         v.GetString("import.prefix"),
		BatchSize:      v.GetInt("import.batch_size"),
		Concurrency:    v.GetInt("import.concurrency"),
		Limit:          v.GetInt("import.limit"),
		LegacyEncoding: v.GetString("import.legacy_encoding"),
		DocTimeout:     v.GetDuration("import.doc_timeout"),
		UploadOriginal: v.GetBool("import.upload_original"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	switch c.Import.Source {
	case "s3", "dir":
	default:
		return fmt.Errorf("config: import.source must be s3 or dir, got %q", c.Import.Source)
	}
	if c.Import.BatchSize <= 0 {
		return fmt.Errorf("config: import.batch_size must be positive, got %d", c.Import.BatchSize)
	}
	if c.Import.Concurrency <= 0 {
		return fmt.Errorf("config: import.concurrency must be positive, got %d", c.Import.Concurrency)
	}
	if c.Import.Limit < 0 {
		return fmt.Errorf("config: import.limit must not be negative, got %d", c.Import.Limit)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("config: log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}
