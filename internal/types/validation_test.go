package types

import "testing"

func TestValidateIDPresent(t *testing.T) {
	t.Parallel()
	if err := ValidateIDPresent("u1", "userId"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateIDPresent("  ", "userId"); err == nil {
		t.Fatal("expected error for whitespace id")
	}
}

func TestValidateContent(t *testing.T) {
	t.Parallel()
	if err := ValidateContent("hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateContent("\t\n"); err == nil {
		t.Fatal("expected error for whitespace content")
	}
}

func TestValidateCredentials(t *testing.T) {
	t.Parallel()
	if err := ValidateCredentials(LoginRequest{Email: "a@b.c", Password: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateCredentials(LoginRequest{Password: "x"}); err == nil {
		t.Fatal("expected error for missing email")
	}
	if err := ValidateCredentials(LoginRequest{Email: "a@b.c"}); err == nil {
		t.Fatal("expected error for missing password")
	}
}
