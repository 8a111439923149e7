package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se incluyen TenantID/TenantSlug para el aislamiento multi-tenant y Email para
// la verificación de operadores de facturación.
//
// Nota: los claims de entitlement (módulos activos) NO viajan en el token; el
// gate de módulos siempre re-lee la base de datos por petición para evitar
// ventanas de claims obsoletos tras una renovación o concesión manual.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string `json:"user_id"`
	TenantID   string `json:"tenant_id"`
	TenantSlug string `json:"tenant_slug"`
	Role       string `json:"role"` // "admin" | "staff"
	Email      string `json:"email"`
}

// TokenInput campos propios a incluir en un token nuevo.
type TokenInput struct {
	UserID     string
	TenantID   string
	TenantSlug string
	Role       string
	Email      string
}

// Generate genera un token JWT firmado con los claims de sesión del usuario.
func Generate(secret string, in TokenInput, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   in.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:     in.UserID,
		TenantID:   in.TenantID,
		TenantSlug: in.TenantSlug,
		Role:       in.Role,
		Email:      in.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve los claims de sesión.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
