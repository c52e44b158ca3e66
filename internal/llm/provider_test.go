package llm

import (
	"testing"

	"go.uber.org/zap"
)

func TestNewClient_EmptyProviderDisablesLLM(t *testing.T) {
	client, err := NewClient(Config{}, nil)
	if err != nil {
		t.Fatalf("empty provider must not error: %v", err)
	}
	if client != nil {
		t.Errorf("expected nil client, got %T", client)
	}
}

func TestNewClient_UnknownProvider(t *testing.T) {
	_, err := NewClient(Config{Provider: "carrier-pigeon"}, nil)
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewClient_OpenAI(t *testing.T) {
	client, err := NewClient(Config{Provider: "openai", APIKey: "sk-test"}, zap.NewNop())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if client.Name() != "openai" {
		t.Errorf("expected openai, got %s", client.Name())
	}

	oc, ok := client.(*OpenAIClient)
	if !ok {
		t.Fatalf("expected *OpenAIClient, got %T", client)
	}
	if oc.logger == nil {
		t.Error("constructor must install the logger")
	}
}

func TestNewClient_OpenAIRequiresKey(t *testing.T) {
	_, err := NewClient(Config{Provider: "openai"}, nil)
	if err == nil {
		t.Error("expected error without API key")
	}
}

func TestNewClient_Ollama(t *testing.T) {
	client, err := NewClient(Config{Provider: "ollama"}, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if client.Name() != "ollama" {
		t.Errorf("expected ollama, got %s", client.Name())
	}
}
