package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"clearing_ops_backend/internal/auth/repository"
)

type testConfig struct{}

func (testConfig) GetJWTAccessSecret() string          { return "access-secret" }
func (testConfig) GetJWTRefreshSecret() string         { return "refresh-secret" }
func (testConfig) GetAccessTokenTTL() time.Duration    { return 15 * time.Minute }
func (testConfig) GetRefreshTokenTTL() time.Duration   { return 720 * time.Hour }
func (testConfig) GetBootstrapAdminEmail() string      { return "" }
func (testConfig) GetBootstrapAdminPassword() string   { return "" }

func newTestService() *Service {
	return &Service{cfg: testConfig{}, now: time.Now}
}

func TestIssueTokenPair(t *testing.T) {
	svc := newTestService()
	user := repository.User{ID: uuid.New(), Role: repository.RoleOffice}

	pair, err := svc.issueTokenPair(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.ExpiresIn != 900 {
		t.Errorf("expected expiresIn 900, got %d", pair.ExpiresIn)
	}

	claims := parseClaims(t, pair.AccessToken, "access-secret")
	if claims["type"] != "access" {
		t.Errorf("expected access token type, got %v", claims["type"])
	}
	if claims["sub"] != user.ID.String() {
		t.Errorf("expected sub %s, got %v", user.ID, claims["sub"])
	}

	roles, ok := claims["roles"].([]interface{})
	if !ok || len(roles) != 1 || roles[0] != repository.RoleOffice {
		t.Errorf("unexpected roles claim: %v", claims["roles"])
	}
}

func TestParseRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	user := repository.User{ID: uuid.New(), Role: repository.RoleCrew}

	pair, err := svc.issueTokenPair(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.parseRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != user.ID {
		t.Errorf("expected user ID %s, got %s", user.ID, got)
	}
}

func TestParseRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := newTestService()
	user := repository.User{ID: uuid.New(), Role: repository.RoleAdmin}

	pair, err := svc.issueTokenPair(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.parseRefreshToken(pair.AccessToken); !errors.Is(err, errInvalidRefreshToken) {
		t.Errorf("expected invalid refresh token error, got %v", err)
	}
}

func TestParseRefreshTokenRejectsGarbage(t *testing.T) {
	svc := newTestService()

	if _, err := svc.parseRefreshToken("not-a-token"); !errors.Is(err, errInvalidRefreshToken) {
		t.Errorf("expected invalid refresh token error, got %v", err)
	}
}

func parseClaims(t *testing.T, rawToken, secret string) jwt.MapClaims {
	t.Helper()

	parsed, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("failed to parse token: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("unexpected claims type")
	}
	return claims
}
