package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
)

// Storage drivers.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env                string   `mapstructure:"env"`                  // current application environment (local, dev, production)
	Timezone           string   `mapstructure:"timezone"`             // IANA zone day boundaries are computed in
	ContentLessonsPath string   `mapstructure:"content_lessons_path"` // path to the lessons JSON file
	Storage            Storage  `mapstructure:"storage"`              // state storage section
	DB                 DB       `mapstructure:"database"`             // postgres configuration section
	Redis              Redis    `mapstructure:"redis"`                // redis configuration section
	Telegram           Telegram `mapstructure:"-"`                    // bot credentials loaded from environment
}

// Storage selects where the state blob lives.
type Storage struct {
	Driver     string `mapstructure:"driver"`      // file, sqlite, postgres, redis or memory
	Key        string `mapstructure:"key"`         // key the state blob is stored under
	DataDir    string `mapstructure:"data_dir"`    // directory of the file driver
	SQLitePath string `mapstructure:"sqlite_path"` // database file of the sqlite driver
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Redis contains redis connection parameters.
type Redis struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"-"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Telegram holds the bot token and the learner's chat.
type Telegram struct {
	APIToken string
	ChatID   int64
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// RequireTelegram reports whether the bot credentials are present.
func (c *Config) RequireTelegram() error {
	if c.Telegram.APIToken == "" || c.Telegram.ChatID == 0 {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN and TELEGRAM_CHAT_ID", ErrMissingEnvironmentVariables)
	}
	return nil
}

// Load reads configuration from .env, config files and environment variables.
// Paths are config directories searched in order; none of them has to exist.
func Load(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("timezone", "Local")
	v.SetDefault("content_lessons_path", "assets/lessons.json")
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.key", "lithuanianLearner")
	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("storage.sqlite_path", "data/mokykis.db")
	v.SetDefault("database.max_connections", 4)
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "mokykis:")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("timezone", "MOKYKIS_TIMEZONE")
	_ = v.BindEnv("content_lessons_path", "CONTENT_LESSONS_PATH")
	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")
	_ = v.BindEnv("storage.key", "STORAGE_KEY")
	_ = v.BindEnv("storage.data_dir", "DATA_DIR")
	_ = v.BindEnv("storage.sqlite_path", "SQLITE_PATH")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("telegram_chat_id", "TELEGRAM_CHAT_ID")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.DB.URL = v.GetString("database_url")
	cfg.Redis.Password = v.GetString("redis_password")
	cfg.Telegram.APIToken = v.GetString("telegram_api_token")
	cfg.Telegram.ChatID = v.GetInt64("telegram_chat_id")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverFile, DriverSQLite, DriverRedis, DriverMemory:
	case DriverPostgres:
		if _, err := c.DB.DSN(); err != nil {
			return fmt.Errorf("%w: DATABASE_URL", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.Storage.Driver)
	}
	return nil
}
