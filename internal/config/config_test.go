package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		s    Settings
		want error
	}{
		{"complete", Settings{Bucket: "b", CredentialsFile: "/k.json"}, nil},
		{"no bucket", Settings{CredentialsFile: "/k.json"}, ErrBucketMissing},
		{"no credentials", Settings{Bucket: "b"}, ErrCredentialsMissing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLoadEnvFilesDoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	content := "GCS_BUCKET_NAME=from-file\nTRANSCRIBE_LOG_LEVEL=debug\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TRANSCRIBE_ENV", envFile)
	t.Setenv("GCS_BUCKET_NAME", "from-process")
	t.Setenv("TRANSCRIBE_LOG_LEVEL", "")
	os.Unsetenv("TRANSCRIBE_LOG_LEVEL")

	LoadEnvFiles()
	s := FromEnv()
	if s.Bucket != "from-process" {
		t.Errorf("Bucket = %q, process env must win over .env files", s.Bucket)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want value from the env file", s.LogLevel)
	}
}
