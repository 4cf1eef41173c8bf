package jwt

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// Token purposes. A verification token must never pass as a session token.
const (
	PurposeSession     = "session"
	PurposeVerifyEmail = "verify_email"
)

// Claims represents the JWT claims structure
type Claims struct {
	UserID        uuid.UUID `json:"user_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	Purpose       string    `json:"purpose"`
	jwt.RegisteredClaims
}

// GetSecretKey returns the JWT secret from environment or a default
func GetSecretKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your-super-secret-key-change-in-production"
	}
	return []byte(secret)
}

// GenerateToken creates a session token for an authenticated user
func GenerateToken(userID uuid.UUID, email, name, role string, emailVerified bool) (string, error) {
	return sign(&Claims{
		UserID:        userID,
		Email:         email,
		Name:          name,
		Role:          role,
		EmailVerified: emailVerified,
		Purpose:       PurposeSession,
	}, 24*time.Hour)
}

// GenerateVerificationToken creates a short-lived token used in the
// email-verification link
func GenerateVerificationToken(userID uuid.UUID, email string) (string, error) {
	return sign(&Claims{
		UserID:  userID,
		Email:   email,
		Purpose: PurposeVerifyEmail,
	}, time.Hour)
}

func sign(claims *Claims, ttl time.Duration) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    "go-medistore",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(GetSecretKey())
}

// ValidateToken parses a token and checks it against the expected purpose
func ValidateToken(tokenString, purpose string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return GetSecretKey(), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Purpose != purpose {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
