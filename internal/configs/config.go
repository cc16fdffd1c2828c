package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"property-list-service/internal/constants"

	"github.com/joho/godotenv"
)

type HTTPConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

// ListingConfig - источник объектов
type ListingConfig struct {
	BaseURL     string
	Parallelism int
}

// ScreensConfig - пределы реестра экранов
type ScreensConfig struct {
	MaxScreens int
	IdleTTL    time.Duration
}

type TelegramConfig struct {
	Enabled bool
	Token   string
	Debug   bool
}

type RabbitMQConfig struct {
	Enabled bool
	URL     string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	HTTP         HTTPConfig
	Listing      ListingConfig
	Screens      ScreensConfig
	Telegram     TelegramConfig
	RabbitMQ     RabbitMQConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Явно указанный .env обязан существовать; .env по умолчанию необязателен.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("could not load .env file (path: %s): %w", envPath[0], err)
		}
	} else if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load .env file: %w", err)
		}
		log.Println("Info: no .env file found, using environment variables")
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "property-list-service")

	cfg.HTTP.Port = getEnvAsString("HTTP_PORT", "8080")
	cfg.HTTP.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"})

	cfg.Listing.BaseURL = getEnvAsString("LISTING_BASE_URL", constants.DefaultListingURL)
	if u, err := url.Parse(cfg.Listing.BaseURL); err != nil || u.Hostname() == "" {
		return nil, fmt.Errorf("LISTING_BASE_URL must be an absolute URL, got %q", cfg.Listing.BaseURL)
	}
	cfg.Listing.Parallelism = getEnvAsInt("LISTING_PARALLELISM", 4)

	cfg.Screens.MaxScreens = getEnvAsInt("SCREENS_MAX", constants.DefaultMaxScreens)
	cfg.Screens.IdleTTL = getEnvAsDuration("SCREEN_IDLE_TTL", 30*time.Minute)

	cfg.Telegram.Enabled = getEnvAsBool("TELEGRAM_ENABLED", false)
	if cfg.Telegram.Enabled {
		cfg.Telegram.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
		if cfg.Telegram.Token == "" {
			return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is required when TELEGRAM_ENABLED is true")
		}
		cfg.Telegram.Debug = getEnvAsBool("TELEGRAM_DEBUG", false)
	}

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
		}
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

// getEnvAsString читает переменную окружения как строку или возвращает значение по умолчанию
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int.
// Если значение не парсится, пишет предупреждение и возвращает значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsDuration читает переменную окружения как time.Duration ("30m", "1h")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valDuration, err := time.ParseDuration(strings.TrimSpace(valStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valDuration
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(strings.TrimSpace(valStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsList читает список через запятую; пустые элементы отбрасываются
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(valStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
