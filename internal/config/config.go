package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/attendify/attendify-backend-go/internal/pkg/validator"
	"github.com/joho/godotenv"
)

type Config struct {
	Database    DatabaseConfig
	JWT         JWTConfig
	App         AppConfig
	Storage     StorageConfig
	Office      OfficeConfig
	ClockWindow ClockWindowConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

// OfficeConfig is the single office whose geofence gates clock events.
type OfficeConfig struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// ClockWindowConfig is the daily window in which clock actions are offered,
// as "HH:MM:SS" wall-clock bounds in Timezone.
type ClockWindowConfig struct {
	Start    string
	End      string
	Timezone string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendify"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Storage configuration
	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", fmt.Sprintf("http://localhost:%d/uploads", appPort)),
	}

	// Office geofence configuration
	officeLat, err := strconv.ParseFloat(getEnv("OFFICE_LATITUDE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LATITUDE: %w", err)
	}
	officeLon, err := strconv.ParseFloat(getEnv("OFFICE_LONGITUDE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LONGITUDE: %w", err)
	}
	officeRadius, err := strconv.ParseFloat(getEnv("OFFICE_RADIUS_METERS", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_RADIUS_METERS: %w", err)
	}

	config.Office = OfficeConfig{
		Latitude:     officeLat,
		Longitude:    officeLon,
		RadiusMeters: officeRadius,
	}

	// Clock window configuration
	config.ClockWindow = ClockWindowConfig{
		Start:    getEnv("CLOCK_WINDOW_START", "09:00:00"),
		End:      getEnv("CLOCK_WINDOW_END", "21:00:00"),
		Timezone: getEnv("CLOCK_WINDOW_TIMEZONE", "Asia/Jakarta"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if !validator.IsValidLatitude(c.Office.Latitude) {
		return fmt.Errorf("OFFICE_LATITUDE out of range")
	}
	if !validator.IsValidLongitude(c.Office.Longitude) {
		return fmt.Errorf("OFFICE_LONGITUDE out of range")
	}
	if c.Office.RadiusMeters <= 0 {
		return fmt.Errorf("OFFICE_RADIUS_METERS must be positive")
	}
	if !validator.IsValidClockTime(c.ClockWindow.Start) {
		return fmt.Errorf("CLOCK_WINDOW_START must be HH:MM:SS")
	}
	if !validator.IsValidClockTime(c.ClockWindow.End) {
		return fmt.Errorf("CLOCK_WINDOW_END must be HH:MM:SS")
	}
	if c.ClockWindow.Start > c.ClockWindow.End {
		return fmt.Errorf("CLOCK_WINDOW_START must not be after CLOCK_WINDOW_END")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
