package config

import "os"

// Config holds environment-provided values only; no behavior lives here
type Config struct {
	Port                    string
	Env                     string
	PostgresURL             string
	MongoURI                string
	RedisAddr               string
	CloudinaryURL           string
	CloudinaryFolder        string
	JWTSecret               string
	FirebaseCredentialsPath string
}

// Load reads configuration from the environment with development defaults
func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		PostgresURL:             getEnv("POSTGRES_URL", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		RedisAddr:               getEnv("REDIS_ADDR", "localhost:6379"),
		CloudinaryURL:           getEnv("CLOUDINARY_URL", ""),
		CloudinaryFolder:        getEnv("CLOUDINARY_FOLDER", "finch"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
