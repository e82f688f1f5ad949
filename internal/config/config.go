package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI    string
	MongoDBName string

	ServerPort string

	// Environment is "development" or "production". It controls cookie
	// cross-site policy and how much error detail leaves the server.
	Environment string

	AccessTokenSecret  string
	RefreshTokenSecret string

	AccessTokenMaxAge  int // seconds
	RefreshTokenMaxAge int // seconds

	RedisURL string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string

	ReconcilerEnabled  bool
	ReconcilerInterval time.Duration
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	accessTokenMaxAge, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_MAX_AGE"))
	if err != nil || accessTokenMaxAge <= 0 {
		accessTokenMaxAge = 3600 // 1 hour
	}

	refreshTokenMaxAge, err := strconv.Atoi(os.Getenv("REFRESH_TOKEN_MAX_AGE"))
	if err != nil || refreshTokenMaxAge <= 0 {
		refreshTokenMaxAge = 604800 // 7 days
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "5000"
	}

	environment := os.Getenv("APP_ENV")
	if environment == "" {
		environment = "development"
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://127.0.0.1:27017"
	}

	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "social-media"
	}

	reconcilerEnabled, _ := strconv.ParseBool(os.Getenv("RECONCILER_ENABLED"))

	reconcilerInterval := 10 * time.Minute
	if raw := os.Getenv("RECONCILER_INTERVAL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			reconcilerInterval = time.Duration(secs) * time.Second
		}
	}

	return &Config{
		MongoURI:    mongoURI,
		MongoDBName: mongoDBName,

		ServerPort: serverPort,

		Environment: environment,

		AccessTokenSecret:  os.Getenv("SECRET_WEB_TOKEN"),
		RefreshTokenSecret: os.Getenv("REFRESH_SECRET_WEB_TOKEN"),

		AccessTokenMaxAge:  accessTokenMaxAge,
		RefreshTokenMaxAge: refreshTokenMaxAge,

		RedisURL: os.Getenv("REDIS_URL"),

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),

		ReconcilerEnabled:  reconcilerEnabled,
		ReconcilerInterval: reconcilerInterval,
	}, nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
