// Package config loads settings from the process environment with layered
// .env fallbacks.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

var (
	// ErrBucketMissing means GCS_BUCKET_NAME is not set anywhere.
	ErrBucketMissing = errors.New("GCS_BUCKET_NAME not found in environment or .env file")
	// ErrCredentialsMissing means GOOGLE_APPLICATION_CREDENTIALS is unset.
	ErrCredentialsMissing = errors.New("GOOGLE_APPLICATION_CREDENTIALS environment variable not set")
)

// Settings holds everything the pipeline reads from the environment.
type Settings struct {
	// Bucket is the GCS bucket audio gets uploaded to.
	Bucket string
	// CredentialsFile is the service-account key path the Google SDKs use.
	CredentialsFile string
	// LogLevel is a logrus level name; empty means info.
	LogLevel string
}

// LoadEnvFiles loads $TRANSCRIBE_ENV, ~/.transcribe.env and ./.env, in that
// order. Already-set process variables always win; missing files are fine.
func LoadEnvFiles() {
	if p := strings.TrimSpace(os.Getenv("TRANSCRIBE_ENV")); p != "" {
		_ = godotenv.Load(p)
	}
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".transcribe.env"))
	}
	_ = godotenv.Load()
}

// FromEnv reads Settings from the (already layered) environment.
func FromEnv() Settings {
	return Settings{
		Bucket:          os.Getenv("GCS_BUCKET_NAME"),
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		LogLevel:        os.Getenv("TRANSCRIBE_LOG_LEVEL"),
	}
}

// Validate checks the settings needed before any network call.
func (s Settings) Validate() error {
	if s.Bucket == "" {
		return ErrBucketMissing
	}
	if s.CredentialsFile == "" {
		return ErrCredentialsMissing
	}
	return nil
}
