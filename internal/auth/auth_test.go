package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("secret")
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	token, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	userID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("subject: got %q, want user-1", userID)
	}
}

func TestTokenIssuer_RejectsBadTokens(t *testing.T) {
	issuer, err := NewTokenIssuer("secret")
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	if _, err := issuer.Verify("garbage"); err == nil {
		t.Error("garbage token verified")
	}

	// A token signed under a different secret must not verify.
	other, _ := NewTokenIssuer("other-secret")
	foreign, _ := other.Issue("user-1")
	if _, err := issuer.Verify(foreign); err == nil {
		t.Error("foreign-signed token verified")
	}

	// An expired token must not verify.
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * TokenTTL)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-TokenTTL)),
	}
	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if _, err := issuer.Verify(expired); err == nil {
		t.Error("expired token verified")
	}
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	if _, err := NewTokenIssuer(""); err == nil {
		t.Error("empty secret accepted")
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("password stored in the clear")
	}
	if !CheckPassword(hash, "hunter22") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("wrong password accepted")
	}
}

func TestOTPStore(t *testing.T) {
	store := NewOTPStore()

	code, err := store.Generate("a@b.com", 6)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(code) != 6 || strings.Trim(code, "0123456789") != "" {
		t.Fatalf("code: got %q, want 6 digits", code)
	}

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	if store.Verify("a@b.com", wrong) {
		t.Error("wrong code verified")
	}
	if !store.Verify("a@b.com", code) {
		t.Error("correct code rejected")
	}
	// Single-use: a consumed code never verifies again.
	if store.Verify("a@b.com", code) {
		t.Error("consumed code verified again")
	}
}

func TestOTPStore_ReplacesPreviousCode(t *testing.T) {
	store := NewOTPStore()

	first, _ := store.Generate("a@b.com", 6)
	second, _ := store.Generate("a@b.com", 6)

	if first != second && store.Verify("a@b.com", first) {
		t.Error("superseded code verified")
	}
	if !store.Verify("a@b.com", second) {
		t.Error("latest code rejected")
	}
}

func TestOTPStore_Expiry(t *testing.T) {
	store := NewOTPStore()

	code, _ := store.Generate("a@b.com", 6)
	store.entries["a@b.com"] = otpEntry{code: code, expiresAt: time.Now().Add(-time.Second)}

	if store.Verify("a@b.com", code) {
		t.Error("expired code verified")
	}
}
