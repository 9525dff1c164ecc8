package gemini

import (
	"context"
	"testing"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(context.Background(), "  ", "", ""); err == nil {
		t.Fatal("expected an error for a missing api key")
	}
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(context.Background(), "test-key", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.Model() != defaultModel {
		t.Errorf("model = %q, want %q", client.Model(), defaultModel)
	}
	if client.embedModel != defaultEmbedModel {
		t.Errorf("embed model = %q, want %q", client.embedModel, defaultEmbedModel)
	}
}

func TestNewClientOverridesModels(t *testing.T) {
	client, err := NewClient(context.Background(), "test-key", "gemini-2.5-pro", "text-embedding-005")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != "gemini-2.5-pro" {
		t.Errorf("model = %q", client.Model())
	}
}

func TestUninitializedClient(t *testing.T) {
	var client *Client
	if client.Model() != "" {
		t.Error("nil client should report an empty model")
	}
	if _, err := client.GenerateContent(context.Background(), "hi"); err == nil {
		t.Error("expected an error from a nil client")
	}
	if _, err := client.Embed(context.Background(), "hi"); err == nil {
		t.Error("expected an error from a nil client")
	}
}
