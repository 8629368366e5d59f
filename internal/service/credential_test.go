package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/questforge/grimoire/api/internal/model"
	"github.com/questforge/grimoire/api/pkg/jwt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	svc := newTestCredentialService(t)

	hash, err := svc.HashPassword("guidetomonsters")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "guidetomonsters" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}

	if !svc.VerifyPassword("guidetomonsters", hash) {
		t.Error("correct password should verify")
	}
	if svc.VerifyPassword("wrongpassword", hash) {
		t.Error("wrong password should not verify")
	}
}

func TestHashPasswordSalts(t *testing.T) {
	svc := newTestCredentialService(t)

	a, err := svc.HashPassword("guidetomonsters")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	b, err := svc.HashPassword("guidetomonsters")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same plaintext should differ")
	}
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := newTestCredentialService(t)

	user := &model.User{
		ID:       "user:volo",
		Username: "volo",
		Email:    "volo@candlekeep.example",
	}

	token, err := svc.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != "user:volo" {
		t.Errorf("expected user id in claims, got %q", claims.UserID)
	}
	if claims.Username != "volo" {
		t.Errorf("expected username in claims, got %q", claims.Username)
	}
	if claims.Email != "volo@candlekeep.example" {
		t.Errorf("expected email in claims, got %q", claims.Email)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestCredentialService(t)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := svc.ValidateToken(token); err == nil {
			t.Errorf("expected token %q to be rejected", token)
		}
	}
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	issuing := newTestCredentialService(t)
	validating := newTestCredentialService(t)

	token, err := issuing.IssueToken(&model.User{ID: "user:volo", Username: "volo"})
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	_, err = validating.ValidateToken(token)
	if err == nil {
		t.Fatal("token signed by a different key must be rejected")
	}
	if !errors.Is(err, jwt.ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestIsWellFormedEmail(t *testing.T) {
	valid := []string{
		"volo@candlekeep.example",
		"a@b.co",
		"first.last@sub.domain.example",
	}
	for _, email := range valid {
		if !IsWellFormedEmail(email) {
			t.Errorf("expected %q to be well-formed", email)
		}
	}

	invalid := []string{
		"",
		"plainstring",
		"@candlekeep.example",
		"volo@candlekeep",
		"volo@candlekeep.",
		"volo@.x",
		strings.Repeat("a", 250) + "@b.co",
	}
	for _, email := range invalid {
		if IsWellFormedEmail(email) {
			t.Errorf("expected %q to be rejected", email)
		}
	}
}
