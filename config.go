package main

import "os"

type Config struct {
	Port           string
	DatabaseURL    string
	WhatsappNumber string
	AdminPassword  string
	OIDCIssuer     string
	OIDCClientID   string
}

func LoadConfig() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", "host=postgres user=postgres password=postgres dbname=queijos port=5432 sslmode=disable"),
		WhatsappNumber: getEnv("WHATSAPP_NUMBER", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		OIDCIssuer:     getEnv("OIDC_ISSUER", ""),
		OIDCClientID:   getEnv("OIDC_CLIENT_ID", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
