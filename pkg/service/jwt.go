package service

import (
	"errors"
	"time"

	apperrors "equipment-tracker/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

type JwtCustomClaim struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTService выпускает и проверяет токен сессии устройства.
type JWTService interface {
	GenerateSessionToken(userID, email string) (string, time.Time, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetSessionTTL() time.Duration
}

type jwtService struct {
	SecretKey  string
	Issuer     string
	SessionExp time.Duration
	now        func() time.Time
}

func NewJWTService(secretKey, issuer string, sessionExp time.Duration) JWTService {
	return &jwtService{
		SecretKey:  secretKey,
		Issuer:     issuer,
		SessionExp: sessionExp,
		now:        time.Now,
	}
}

func (service *jwtService) GenerateSessionToken(userID, email string) (string, time.Time, error) {
	issuedAt := service.now()
	expiresAt := issuedAt.Add(service.SessionExp)

	claims := &JwtCustomClaim{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    service.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (service *jwtService) GetSessionTTL() time.Duration {
	return service.SessionExp
}

func (service *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(service.SecretKey), nil
		default:
			return nil, apperrors.ErrInvalidSigningMethod
		}
	}, jwt.WithIssuer(service.Issuer), jwt.WithTimeFunc(service.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
