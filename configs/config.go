package config

import (
	"log"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

var loadEnv sync.Once

func Config(key string) string {
	loadEnv.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})

	return os.Getenv(key)
}

// ConfigBool treats "true", "1" and "yes" (any case) as true. Used for
// opt-in switches like WS_ALLOW_INSECURE that must default to off.
func ConfigBool(key string) bool {
	switch strings.ToLower(Config(key)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
