package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "COMPONENTS"

// Config is read from COMPONENTS_<NAME>, falling back to the bare <NAME>.
type Config struct {
	DatabaseURL    string        `envconfig:"DATABASE_URL" required:"true"`
	AppHost        string        `envconfig:"APP_HOST" default:":8080"`
	JWTSecret      string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL         time.Duration `envconfig:"JWT_TTL" default:"720h"`
	UploadDir      string        `envconfig:"UPLOAD_DIR" default:"./uploads"`
	MaxUploadBytes int64         `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"debug"`
	MigrationsDir  string        `envconfig:"MIGRATIONS_DIR" default:"./migrations"`
	AutoMigrate    bool          `envconfig:"AUTO_MIGRATE" default:"false"`
	Sheets         SheetsConfig  `ignored:"true"`
}

type SheetsConfig struct {
	CredentialsJSON string `envconfig:"SHEETS_CREDENTIALS_JSON"`
	SpreadsheetID   string `envconfig:"SHEETS_SPREADSHEET_ID"`
	Range           string `envconfig:"SHEETS_RANGE" default:"Inventory!A1"`
}

func (s SheetsConfig) Enabled() bool {
	return s.CredentialsJSON != "" && s.SpreadsheetID != ""
}

// LoadDotEnv reads .env without overriding variables already set in the environment.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, &cfg.Sheets); err != nil {
		return nil, fmt.Errorf("parsing sheets config: %w", err)
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}
	return &cfg, nil
}
