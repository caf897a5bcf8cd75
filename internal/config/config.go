package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
	} `yaml:"server"`

	// Backend is the external school CRUD API
	Backend struct {
		BaseURL string `yaml:"base_url" env:"BACKEND_URL"`
		Timeout string `yaml:"timeout" env:"BACKEND_TIMEOUT"`
	} `yaml:"backend"`

	// School is printed in the common header of every document
	School struct {
		Name          string `yaml:"name" env:"SCHOOL_NAME"`
		Address       string `yaml:"address" env:"SCHOOL_ADDRESS"`
		ResultDefault string `yaml:"result_default_name" env:"SCHOOL_RESULT_DEFAULT_NAME"`
	} `yaml:"school"`

	Export struct {
		CertificateScale int      `yaml:"certificate_scale" env:"EXPORT_CERTIFICATE_SCALE"`
		MarksheetScale   int      `yaml:"marksheet_scale" env:"EXPORT_MARKSHEET_SCALE"`
		DownloadSettle   string   `yaml:"download_settle" env:"EXPORT_DOWNLOAD_SETTLE"`
		PrintSettle      string   `yaml:"print_settle" env:"EXPORT_PRINT_SETTLE"`
		PageMargin       float64  `yaml:"page_margin_mm" env:"EXPORT_PAGE_MARGIN_MM"`
		Printer          string   `yaml:"printer" env:"EXPORT_PRINTER"`
		PrintCommand     []string `yaml:"print_command" env:"EXPORT_PRINT_COMMAND"`
		SpoolDir         string   `yaml:"spool_dir" env:"EXPORT_SPOOL_DIR"`
	} `yaml:"export"`

	Database struct {
		Enabled         bool   `yaml:"enabled" env:"DB_ENABLED"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// Printer kinds
const (
	PrinterSpool   = "spool"
	PrinterCommand = "command"
)

// LoadConfig loads configuration from a YAML file, a .env file and the process environment,
// in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "storage"

	config.Backend.BaseURL = "http://localhost:5000/api"
	config.Backend.Timeout = "15s"

	config.School.Name = "Shubham English Medium School"
	config.School.Address = "Shiv City Center, Near KFC, Vijaynagar, Sangli | Phone: +91 9209312828"
	config.School.ResultDefault = "Shubham English School"

	config.Export.CertificateScale = 3
	config.Export.MarksheetScale = 2
	config.Export.DownloadSettle = "300ms"
	config.Export.PrintSettle = "100ms"
	config.Export.PageMargin = 0
	config.Export.Printer = PrinterSpool
	config.Export.SpoolDir = "spool"

	config.Database.Enabled = false
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "schooldesk"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

func validateConfig(config *Config) error {
	u, err := url.Parse(config.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend base_url must be an absolute URL, got %q", config.Backend.BaseURL)
	}

	for name, value := range map[string]string{
		"backend.timeout":            config.Backend.Timeout,
		"export.download_settle":     config.Export.DownloadSettle,
		"export.print_settle":        config.Export.PrintSettle,
		"database.conn_max_lifetime": config.Database.ConnMaxLifetime,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration for %s: %w", name, err)
		}
	}

	if config.Export.CertificateScale < 1 || config.Export.MarksheetScale < 1 {
		return fmt.Errorf("export scales must be at least 1")
	}
	if config.Export.PageMargin < 0 || config.Export.PageMargin >= 100 {
		return fmt.Errorf("export.page_margin_mm must be between 0 and 100")
	}

	switch strings.ToLower(config.Export.Printer) {
	case PrinterSpool:
	case PrinterCommand:
		if len(config.Export.PrintCommand) == 0 {
			return fmt.Errorf("export.print_command is required for the command printer")
		}
	default:
		return fmt.Errorf("unknown export.printer %q", config.Export.Printer)
	}

	if config.Database.Enabled && config.Database.Host == "" {
		return fmt.Errorf("database host is required when the database is enabled")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(c.Database.User),
		url.QueryEscape(c.Database.Password),
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
