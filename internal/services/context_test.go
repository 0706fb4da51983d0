package services_test

import (
	"context"
	"testing"

	"numport/internal/services"
)

func TestContextAnnotations(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithIdentifier(ctx, "+15551230001")
	ctx = services.WithPhoneID(ctx, "pn_1")
	ctx = services.WithAccount(ctx, "source")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.IdentifierFromContext(ctx); !ok || id != "+15551230001" {
		t.Fatalf("expected identifier +15551230001, got %q (ok=%v)", id, ok)
	}
	if id, ok := services.PhoneIDFromContext(ctx); !ok || id != "pn_1" {
		t.Fatalf("expected phone id pn_1, got %q (ok=%v)", id, ok)
	}
	if account, ok := services.AccountFromContext(ctx); !ok || account != "source" {
		t.Fatalf("expected account source, got %q (ok=%v)", account, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("expected request id req-123, got %q (ok=%v)", rid, ok)
	}
}

func TestContextEmptyValuesIgnored(t *testing.T) {
	ctx := services.WithIdentifier(context.Background(), "")
	if _, ok := services.IdentifierFromContext(ctx); ok {
		t.Fatal("expected empty identifier to be ignored")
	}
	if _, ok := services.AccountFromContext(context.Background()); ok {
		t.Fatal("expected missing account to report absent")
	}
}
