package middleware

import "os"

// GetEnv reads a configuration value from the environment. The .env file is
// loaded once at startup (see auth.go init and main.go).
func GetEnv(key string) string {
	return os.Getenv(key)
}
