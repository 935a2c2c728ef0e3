package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssuePairAndParse(t *testing.T) {
	iss := NewIssuer("test-secret", time.Minute, time.Hour)
	userID := uuid.New()

	pair, err := iss.IssuePair(userID, "alice")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	claims, err := iss.Parse(pair.Access, TokenTypeAccess)
	if err != nil {
		t.Fatalf("Parse access: %v", err)
	}
	if claims.UserID != userID || claims.Username != "alice" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	if _, err := iss.Parse(pair.Refresh, TokenTypeRefresh); err != nil {
		t.Fatalf("Parse refresh: %v", err)
	}
}

func TestParseRejectsWrongTokenType(t *testing.T) {
	iss := NewIssuer("test-secret", time.Minute, time.Hour)
	pair, err := iss.IssuePair(uuid.New(), "bob")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	if _, err := iss.Parse(pair.Refresh, TokenTypeAccess); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("refresh token accepted as access: err=%v", err)
	}
	if _, err := iss.Refresh(pair.Access); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("access token accepted as refresh: err=%v", err)
	}
}

func TestParseRejectsForeignSecret(t *testing.T) {
	pair, err := NewIssuer("secret-a", time.Minute, time.Hour).IssuePair(uuid.New(), "carol")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	if _, err := NewIssuer("secret-b", time.Minute, time.Hour).Parse(pair.Access, TokenTypeAccess); err == nil {
		t.Error("expected signature error")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	iss := NewIssuer("test-secret", time.Minute, time.Hour)
	issuedAt := time.Now().Add(-2 * time.Hour)
	iss.now = func() time.Time { return issuedAt }

	pair, err := iss.IssuePair(uuid.New(), "dave")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	iss.now = time.Now
	if _, err := iss.Parse(pair.Access, TokenTypeAccess); err == nil {
		t.Error("expected expired access token to fail")
	}
	if _, err := iss.Refresh(pair.Refresh); err == nil {
		t.Error("expected expired refresh token to fail")
	}
}

func TestRefreshIssuesAccessToken(t *testing.T) {
	iss := NewIssuer("test-secret", time.Minute, time.Hour)
	userID := uuid.New()
	pair, err := iss.IssuePair(userID, "erin")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	access, err := iss.Refresh(pair.Refresh)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	claims, err := iss.Parse(access, TokenTypeAccess)
	if err != nil {
		t.Fatalf("Parse refreshed access: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("CheckPassword rejected the right password")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("CheckPassword accepted a wrong password")
	}
}
