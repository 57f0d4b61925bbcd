package auth

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRefreshTokenRequiresToken(t *testing.T) {
	// No Authorization header: the route is reachable with nothing but the
	// refresh token, since the access token may already be expired.
	req := httptest.NewRequest("POST", "/api/auth/token/refresh", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	RefreshToken(rec, req, nil)

	if rec.Code != 400 {
		t.Fatalf("expected 400 for missing refresh token, got %d", rec.Code)
	}
}

func TestRefreshTokenRejectsBadBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/auth/token/refresh", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	RefreshToken(rec, req, nil)

	if rec.Code != 400 {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestHashTokenIsDeterministic(t *testing.T) {
	a := hashToken("abc")
	if a != hashToken("abc") {
		t.Fatal("hash must be stable for the same input")
	}
	if a == hashToken("abd") {
		t.Fatal("distinct tokens must not collide")
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256, got %d chars", len(a))
	}
}
