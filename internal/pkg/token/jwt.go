package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService define el contrato para la manipulación de JWTs.
type TokenService interface {
	GenerateToken(userID string, userRol string) (string, error)
	ValidateToken(tokenString string) (*CustomClaims, error)
}

// CustomClaims define la información específica que guardamos en el JWT.
// Es obligatorio incorporar jwt.RegisteredClaims.
type CustomClaims struct {
	UserID string `json:"user_id"`
	Rol    string `json:"rol"`
	jwt.RegisteredClaims
}

// Service implementa la interfaz TokenService.
type Service struct {
	secretKey []byte
	expiry    time.Duration
}

// NewService crea una nueva instancia del servicio de tokens.
func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
	}
}

// GenerateToken crea un nuevo JWT firmado con el ID y el rol del usuario.
func (s *Service) GenerateToken(userID string, userRol string) (string, error) {
	claims := CustomClaims{
		UserID: userID,
		Rol:    userRol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "MACS-API",
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("falla al firmar el token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken valida el token y devuelve las claims si es válido.
func (s *Service) ValidateToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verifica que el método de firma sea el esperado (HS256)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("el token no es válido")
	}

	return claims, nil
}
