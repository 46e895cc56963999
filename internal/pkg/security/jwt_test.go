package security

import (
	"strings"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, []string{"ADMIN"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "ADMIN" {
		t.Errorf("Roles = %v, want [ADMIN]", claims.Roles)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken(1, nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + ".AAAA"
	if _, err := ValidateToken(tampered); err == nil {
		t.Error("tampered token should fail validation")
	}
}

func TestExtractSignature(t *testing.T) {
	token, err := GenerateToken(1, nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	sig, err := ExtractSignature(token)
	if err != nil {
		t.Fatalf("ExtractSignature: %v", err)
	}
	if !strings.HasSuffix(token, "."+sig) {
		t.Error("signature should be the last token segment")
	}

	if _, err := ExtractSignature("not-a-token"); err == nil {
		t.Error("malformed token should fail")
	}
}
