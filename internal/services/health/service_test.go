package health

import (
	"testing"
	"time"
)

func TestStatusKeysPresent(t *testing.T) {
	svc := NewService("dev", "gm-key", "")
	svc.now = func() time.Time {
		return time.Date(2026, time.September, 1, 10, 30, 0, 0, time.UTC)
	}

	got := svc.Status()

	if got["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", got["status"])
	}
	if got["environment"] != "dev" {
		t.Fatalf("expected environment dev, got %v", got["environment"])
	}
	if got["timestamp"] != "2026-09-01T10:30:00Z" {
		t.Fatalf("unexpected timestamp %v", got["timestamp"])
	}
	if got["geminiKey"] != "Active" {
		t.Fatalf("expected geminiKey Active, got %v", got["geminiKey"])
	}
	if got["openaiKey"] != "Not set" {
		t.Fatalf("expected openaiKey Not set, got %v", got["openaiKey"])
	}
}

func TestStatusNeverLeaksKeyMaterial(t *testing.T) {
	secret := "sk-super-secret"
	svc := NewService("production", secret, secret)

	for field, value := range svc.Status() {
		if s, ok := value.(string); ok && s == secret {
			t.Fatalf("field %s leaked key material", field)
		}
	}
}

func TestKeyStateWhitespaceOnly(t *testing.T) {
	if keyState("   ") != "Not set" {
		t.Fatalf("expected whitespace-only key to read Not set")
	}
}
