package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresURL string
	MongoURL    string
	DBType      string
	Port        string

	// UpstreamBaseURL is the root of the remote docket API,
	// e.g. https://namami-infotech.com/vinworld/src
	UpstreamBaseURL string

	// OCRURL is the text-recognition endpoint. Empty disables OCR autofill.
	OCRURL string

	UpstreamTimeout time.Duration

	// ArchiveImages keeps a copy of uploaded docket images in R2. Needs
	// the R2_* variables set.
	ArchiveImages bool
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		PostgresURL:     os.Getenv("POSTGRES_URL"),
		MongoURL:        os.Getenv("MONGO_URL"),
		DBType:          os.Getenv("DB_TYPE"),
		Port:            os.Getenv("PORT"),
		UpstreamBaseURL: os.Getenv("UPSTREAM_BASE_URL"),
		OCRURL:          os.Getenv("OCR_URL"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBType == "" {
		cfg.DBType = "memory"
	}

	cfg.UpstreamTimeout = 30 * time.Second
	if v := os.Getenv("UPSTREAM_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.UpstreamTimeout = time.Duration(secs) * time.Second
		}
	}
	cfg.ArchiveImages = os.Getenv("R2_BUCKET") != ""
	return cfg
}
