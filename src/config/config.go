package config

import (
	"fmt"
	"os"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func GeminiBaseURL() string {
	if v := os.Getenv("GEMINI_BASE_URL"); v != "" {
		return v
	}
	return "https://generativelanguage.googleapis.com/v1beta"
}

func NominatimBaseURL() string {
	if v := os.Getenv("NOMINATIM_BASE_URL"); v != "" {
		return v
	}
	return "https://nominatim.openstreetmap.org"
}

func APIEnv() string {
	return os.Getenv("API_ENV")
}

const (
	// GEMINI_MODEL is the model every AI gateway operation targets.
	GEMINI_MODEL = "gemini-2.5-flash"

	// NOMINATIM_USER_AGENT identifies the service per the Nominatim usage policy.
	NOMINATIM_USER_AGENT = "MediFinder/1.0"

	// TOKEN_TTL_HOURS is the lifetime of an issued owner token.
	TOKEN_TTL_HOURS = 24

	// RESERVATION_TTL_HOURS is how long a customer hold stays valid.
	RESERVATION_TTL_HOURS = 2
)
