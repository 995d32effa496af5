package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"

	"github.com/kevinwu/room-reservation/internal/utils"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Defaults are chosen so the service boots against
// a local MySQL with no .env at all; only the JWT secret is special-cased:
// when unset a random per-process secret is generated, which keeps dev
// setups working but invalidates outstanding tokens on restart.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign JWTs
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing
	SeedDemo     bool   // insert demo locations/rooms/user on first boot
}

// Load reads configuration values from environment variables and returns a
// Config.
func Load() Config {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		s, err := utils.RandomHex(32)
		if err != nil {
			log.Fatalf("generate fallback jwt secret: %v", err)
		}
		secret = s
		log.Print("JWT_SECRET not set; using a random per-process secret")
	}
	return Config{
		Env:          getenv("APP_ENV", "dev"),
		Port:         getenv("APP_PORT", "8080"),
		DBUser:       getenv("DB_USER", "root"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       getenv("DB_HOST", "localhost"),
		DBPort:       getenv("DB_PORT", "3306"),
		DBName:       getenv("DB_NAME", "room_reservation"),
		JWTSecret:    secret,
		AccessTTLMin: atoiDefault(getenv("ACCESS_TOKEN_TTL_MIN", "10"), 10),
		BcryptCost:   atoiDefault(getenv("BCRYPT_COST", "10"), 10),
		SeedDemo:     getenv("SEED_DEMO_DATA", "true") == "true",
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
