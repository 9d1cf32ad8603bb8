package auth

import "testing"

func TestPairAndValidate(t *testing.T) {
	svc := NewService("secret", "4242")

	resp, err := svc.Pair(PairRequest{Code: "4242"})
	if err != nil {
		t.Fatalf("pair: %v", err)
	}
	if resp.AccessToken == "" || resp.TokenType != "Bearer" {
		t.Fatalf("unexpected token response")
	}

	deviceID, err := svc.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if deviceID != "local-ui" {
		t.Fatalf("unexpected device id: %s", deviceID)
	}
}

func TestPairWrongCode(t *testing.T) {
	svc := NewService("secret", "4242")
	if _, err := svc.Pair(PairRequest{Code: "0000"}); err == nil {
		t.Fatalf("expected error for wrong code")
	}
}

func TestPairEmptyCode(t *testing.T) {
	svc := NewService("secret", "4242")
	if _, err := svc.Pair(PairRequest{}); err == nil {
		t.Fatalf("expected error for empty code")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	svc := NewService("secret", "4242")
	if _, err := svc.ValidateAccessToken("not-a-token"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidateWrongSecret(t *testing.T) {
	svc := NewService("secret", "4242")
	resp, err := svc.Pair(PairRequest{Code: "4242"})
	if err != nil {
		t.Fatalf("pair: %v", err)
	}

	other := NewService("other-secret", "4242")
	if _, err := other.ValidateAccessToken(resp.AccessToken); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}
