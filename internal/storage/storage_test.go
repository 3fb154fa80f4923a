package storage

import (
	"testing"

	"github.com/sevora/ramble/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		S3Endpoint:  "http://localhost:9000",
		S3AccessKey: "key",
		S3SecretKey: "secret",
		S3Bucket:    "ramble",
	}
}

func TestNewUnconfigured(t *testing.T) {
	client, err := New(config.Config{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if client != nil {
		t.Fatalf("expected nil client without configuration")
	}
}

func TestFileURL(t *testing.T) {
	cfg := config.Config{
		S3Endpoint:  "http://localhost:9000/",
		S3AccessKey: "key",
		S3SecretKey: "secret",
		S3Bucket:    "ramble",
	}
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := client.FileURL("avatars/user-1"); got != "http://localhost:9000/ramble/avatars/user-1" {
		t.Fatalf("unexpected url: %s", got)
	}

	cfg.S3PublicURL = "https://cdn.example.com"
	client, err = New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := client.FileURL("avatars/user-1"); got != "https://cdn.example.com/avatars/user-1" {
		t.Fatalf("unexpected cdn url: %s", got)
	}
}
