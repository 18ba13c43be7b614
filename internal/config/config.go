package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Source names accepted by BUDGET_SOURCE.
const (
	SourceFile   = "file"
	SourceSQLite = "sqlite"
	SourceSheets = "sheets"
)

type Config struct {
	// Data source
	Source    string
	InputPath string
	AccountID int64
	Currency  string

	// Database
	SQLiteDBPath string

	// Google Sheets
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// AMQP
	AMQPURL      string
	AMQPExchange string

	// Publisher
	PublishInterval time.Duration

	// Presentation
	AppearanceFile string
	LogLevel       string
}

func Load() *Config {
	cfg := &Config{
		Source:    getEnv("BUDGET_SOURCE", SourceFile),
		InputPath: getEnv("BUDGET_INPUT", ""),
		AccountID: getEnvInt64("BUDGET_ACCOUNT_ID", 1),
		Currency:  getEnv("BUDGET_CURRENCY", ""),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/db.sqlite3"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Operations"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "budget.charts"),

		PublishInterval: getEnvDuration("PUBLISH_INTERVAL", 5*time.Minute),

		AppearanceFile: getEnv("APPEARANCE_FILE", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate data source
	validSources := []string{SourceFile, SourceSQLite, SourceSheets}
	isValidSource := false
	for _, s := range validSources {
		if c.Source == s {
			isValidSource = true
			break
		}
	}
	if !isValidSource {
		errors = append(errors, fmt.Sprintf("invalid data source '%s': must be one of %v", c.Source, validSources))
	}

	if c.AccountID < 1 {
		errors = append(errors, fmt.Sprintf("invalid account id %d: must be positive", c.AccountID))
	}

	switch c.Source {
	case SourceFile:
		// An empty path means stdin
		if c.InputPath != "" && c.InputPath != "-" {
			if _, err := os.Stat(c.InputPath); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("input file does not exist: %s", c.InputPath))
			}
		}
	case SourceSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite source")
		} else if _, err := os.Stat(c.SQLiteDBPath); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("SQLite database does not exist: %s", c.SQLiteDBPath))
		}
	case SourceSheets:
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets source")
		}
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when using sheets source")
		}
		hasJSON := c.GoogleServiceAccountJSON != ""
		hasFile := c.GoogleServiceAccountFile != ""
		if !hasJSON && !hasFile {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE must be provided for sheets source")
		}
		if !hasJSON && hasFile {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if c.PublishInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid publish interval %v: must be at least 1 second", c.PublishInterval))
	} else if c.PublishInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid publish interval %v: must be at most 24 hours", c.PublishInterval))
	}

	if c.AppearanceFile != "" {
		if _, err := os.Stat(c.AppearanceFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("appearance file does not exist: %s", c.AppearanceFile))
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
