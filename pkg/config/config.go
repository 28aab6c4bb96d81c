package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Catalog is the catalog service configuration.
type Catalog struct {
	Port        string
	StoreDriver string
	LogLevel    string

	PostgresDSN   string
	MongoURI      string
	MongoDatabase string

	MetricsEnabled  bool
	MetricsToken    string
	RateLimitPerMin int
	StaticDir       string
}

// Shop is the terminal client configuration. Flags override these.
type Shop struct {
	APIURL   string
	DataDir  string
	LogLevel string
}

// LoadDotEnv reads .env from the working directory when present.
// Variables already set in the environment win.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

func LoadCatalog() Catalog {
	return Catalog{
		Port:            getEnv("PORT", "3000"),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", DriverMemory)),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		PostgresDSN:     os.Getenv("DATABASE_URL"),
		MongoURI:        os.Getenv("MONGODB_URI"),
		MongoDatabase:   getEnv("MONGODB_DB", "shop"),
		MetricsEnabled:  getEnvBool("METRICS_ENABLED", true),
		MetricsToken:    os.Getenv("METRICS_TOKEN"),
		RateLimitPerMin: getEnvInt("RATE_LIMIT_PER_MIN", 0),
		StaticDir:       os.Getenv("STATIC_DIR"),
	}
}

func LoadShop() Shop {
	return Shop{
		APIURL:   getEnv("SHOP_API_URL", "http://localhost:3000"),
		DataDir:  os.Getenv("SHOP_DATA_DIR"),
		LogLevel: getEnv("LOG_LEVEL", "warn"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
