package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/nderose7/shiptrack-app/models"
)

// Config holds all configuration for the shiptrack CLI.
type Config struct {
	BaseURL          string
	CredentialFile   string
	CredentialSecret string
	// Origin (ship-from) address defaults; fixed, not user-editable.
	OriginName    string
	OriginStreet1 string
	OriginStreet2 string
	OriginCity    string
	OriginState   string
	OriginZip     string
	OriginCountry string
	OriginEmail   string
	OriginPhone   string
}

// OriginAddress builds an Address struct from origin config values.
func (c *Config) OriginAddress() models.Address {
	return models.Address{
		Name:    c.OriginName,
		Street1: c.OriginStreet1,
		Street2: c.OriginStreet2,
		City:    c.OriginCity,
		State:   c.OriginState,
		Zip:     c.OriginZip,
		Country: c.OriginCountry,
		Email:   c.OriginEmail,
		Phone:   c.OriginPhone,
	}
}

// LoadConfig reads configuration from the environment, with .env support.
func LoadConfig() *Config {
	_ = godotenv.Load()

	home, _ := os.UserHomeDir()
	defaultCredFile := filepath.Join(home, ".shiptrack", "credentials")

	return &Config{
		BaseURL:          getEnv("SHIPTRACK_BASE_URL", "http://localhost:1337"),
		CredentialFile:   getEnv("SHIPTRACK_CREDENTIAL_FILE", defaultCredFile),
		CredentialSecret: getEnv("SHIPTRACK_CREDENTIAL_SECRET", "shiptrack-local-secret"),
		OriginName:       getEnv("ORIGIN_NAME", "Nick's Company"),
		OriginStreet1:    getEnv("ORIGIN_STREET1", "18019 MOHAWK DR"),
		OriginStreet2:    getEnv("ORIGIN_STREET2", ""),
		OriginCity:       getEnv("ORIGIN_CITY", "SPRING LAKE"),
		OriginState:      getEnv("ORIGIN_STATE", "MI"),
		OriginZip:        getEnv("ORIGIN_ZIP", "49456"),
		OriginCountry:    getEnv("ORIGIN_COUNTRY", "US"),
		OriginEmail:      getEnv("ORIGIN_EMAIL", "example@example.com"),
		OriginPhone:      getEnv("ORIGIN_PHONE", "555-555-5555"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
