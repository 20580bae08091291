package stripe

import (
	"context"
	"strings"
	"testing"

	"github.com/geoshop/geoshop-backend/pkg/config"
)

func TestNewClientValidatesKeyAgainstEnv(t *testing.T) {
	ctx := context.Background()

	if _, err := NewClient(ctx, config.StripeConfig{APIKey: "sk_live_abc", Env: "test"}, nil); err == nil {
		t.Fatal("expected live key in test env to fail")
	}
	if _, err := NewClient(ctx, config.StripeConfig{APIKey: "sk_test_abc", Env: "live"}, nil); err == nil {
		t.Fatal("expected test key in live env to fail")
	}

	client, err := NewClient(ctx, config.StripeConfig{APIKey: "sk_test_abc", Env: "test"}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.Environment() != "test" {
		t.Fatalf("expected test environment, got %q", client.Environment())
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(context.Background(), config.StripeConfig{Env: "test"}, nil); err == nil {
		t.Fatal("expected missing key to fail")
	}
}

func TestNewClientRejectsUnknownEnv(t *testing.T) {
	_, err := NewClient(context.Background(), config.StripeConfig{APIKey: "sk_test_abc", Env: "staging"}, nil)
	if err == nil || !strings.Contains(err.Error(), "stripe environment") {
		t.Fatalf("expected env validation error, got %v", err)
	}
}

func TestCurrencyDefaultsToBRL(t *testing.T) {
	client, err := NewClient(context.Background(), config.StripeConfig{APIKey: "sk_test_abc"}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.Currency() != "brl" {
		t.Fatalf("expected brl, got %q", client.Currency())
	}
}
