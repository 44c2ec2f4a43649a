package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"clearing_ops_backend/internal/auth/repository"
	"clearing_ops_backend/internal/auth/transport"
)

// Token type claims. The middleware rejects anything but "access" on
// protected routes.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

func (s *Service) issueTokenPair(user repository.User) (transport.TokenPair, error) {
	now := s.now().UTC()

	access, err := s.signToken(jwt.MapClaims{
		"sub":   user.ID.String(),
		"roles": []string{user.Role},
		"type":  tokenTypeAccess,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
	}, s.cfg.GetJWTAccessSecret())
	if err != nil {
		return transport.TokenPair{}, err
	}

	refresh, err := s.signToken(jwt.MapClaims{
		"sub":  user.ID.String(),
		"type": tokenTypeRefresh,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.GetRefreshTokenTTL()).Unix(),
	}, s.cfg.GetJWTRefreshSecret())
	if err != nil {
		return transport.TokenPair{}, err
	}

	return transport.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.cfg.GetAccessTokenTTL().Seconds()),
	}, nil
}

func (s *Service) signToken(claims jwt.MapClaims, secret string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// parseRefreshToken validates a refresh token and returns the subject.
func (s *Service) parseRefreshToken(rawToken string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.cfg.GetJWTRefreshSecret()), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return uuid.Nil, errInvalidRefreshToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errInvalidRefreshToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != tokenTypeRefresh {
		return uuid.Nil, errInvalidRefreshToken
	}

	subject, _ := claims["sub"].(string)
	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, errInvalidRefreshToken
	}

	return userID, nil
}
