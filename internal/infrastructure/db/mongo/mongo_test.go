package mongo

import (
	"context"
	"testing"
	"time"
)

func TestConfig_ClientOptions(t *testing.T) {
	opts := Config{
		URI:     "mongodb://db:27017",
		Timeout: 3 * time.Second,
		AppName: "auth-api",
	}.clientOptions()

	if opts.ServerSelectionTimeout == nil || *opts.ServerSelectionTimeout != 3*time.Second {
		t.Fatalf("unexpected server selection timeout: %v", opts.ServerSelectionTimeout)
	}
	if opts.ConnectTimeout == nil || *opts.ConnectTimeout != 3*time.Second {
		t.Fatalf("unexpected connect timeout: %v", opts.ConnectTimeout)
	}
	if opts.AppName == nil || *opts.AppName != "auth-api" {
		t.Fatalf("unexpected app name: %v", opts.AppName)
	}
}

func TestConnect_RequiresDatabase(t *testing.T) {
	if _, _, err := Connect(context.Background(), Config{URI: "mongodb://localhost:27017"}); err == nil {
		t.Fatal("expected error for empty database name")
	}
}
