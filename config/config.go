package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Redis     RedisConfig
	S3        S3Config
	Company   CompanyConfig
	Retention RetentionConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// ProgressTTL bounds how long an abandoned wizard survives server-side.
	ProgressTTL time.Duration
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// Enabled turns on archival of generated PDFs; downloads work without it.
	Enabled bool
}

// CompanyConfig identifies the contractor party printed on every contract.
type CompanyConfig struct {
	Name           string
	TaxID          string
	Address        string
	Representative string
	RepTaxID       string
}

type RetentionConfig struct {
	// PurgeSchedule is a cron expression; soft-deleted customers older than
	// PurgeAfter are removed permanently.
	PurgeSchedule string
	PurgeAfter    time.Duration
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "contratosolar"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-secret-key"),
			AccessTokenExpiry:  parseDuration(getEnv("JWT_ACCESS_TOKEN_EXPIRY", "15m"), 15*time.Minute),
			RefreshTokenExpiry: parseDuration(getEnv("JWT_REFRESH_TOKEN_EXPIRY", "168h"), 168*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", "localhost:6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          0,
			ProgressTTL: parseDuration(getEnv("WIZARD_PROGRESS_TTL", "72h"), 72*time.Hour),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "sa-east-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", "contrato-solar-documents"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Enabled:         getEnv("DOCUMENT_ARCHIVE_ENABLED", "false") == "true",
		},
		Company: CompanyConfig{
			Name:           getEnv("COMPANY_NAME", "ECOENERGI SOLAR"),
			TaxID:          getEnv("COMPANY_TAX_ID", "12.276.329.0001-69"),
			Address:        getEnv("COMPANY_ADDRESS", "RUA DEPUTADO JÚLIO CÉSAR PAULINO MAIA - N°1410S- CENTRO, NA CIDADE DE SANTA RITA DO PARDO - MS, COM CEP: 79690-000"),
			Representative: getEnv("COMPANY_REPRESENTATIVE", "DIOGO CASTRO ALVES RODRIGUES"),
			RepTaxID:       getEnv("COMPANY_REPRESENTATIVE_TAX_ID", "058.281.431-21"),
		},
		Retention: RetentionConfig{
			PurgeSchedule: getEnv("PURGE_SCHEDULE", "0 4 * * *"),
			PurgeAfter:    parseDuration(getEnv("PURGE_AFTER", "2160h"), 2160*time.Hour),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for i := 0; i < len(s); {
		end := i
		for end < len(s) && s[end] != ',' {
			end++
		}
		result = append(result, s[i:end])
		i = end + 1
	}
	return result
}
