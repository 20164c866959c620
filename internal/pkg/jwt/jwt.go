package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
)

var ErrInvalidClaims = errors.New("token claims are missing user_id or role")

type Service interface {
	GenerateAccessToken(userID string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(userID string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    string(role),
		"type":    "access",
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

// RequesterFromClaims builds the authenticated caller from access token claims.
func RequesterFromClaims(claims map[string]interface{}) (user.Requester, error) {
	if tokenType, ok := claims["type"].(string); ok && tokenType != "access" {
		return user.Requester{}, fmt.Errorf("%w: unexpected token type %q", ErrInvalidClaims, tokenType)
	}

	userID, _ := claims["user_id"].(string)
	roleStr, _ := claims["role"].(string)
	role := user.Role(roleStr)

	if userID == "" || !role.IsValid() {
		return user.Requester{}, ErrInvalidClaims
	}
	return user.Requester{ID: userID, Role: role}, nil
}
