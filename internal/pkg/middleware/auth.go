package middleware

import (
	"context"
	"net/http"

	"macstock/internal/domain"
	apperror "macstock/internal/errors"
	"macstock/internal/pkg/token"
)

// ContextKey es el tipo de las claves que este paquete anexa al contexto.
// Un tipo propio evita colisiones con claves string de otros paquetes.
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
)

// UserClaims son los datos del usuario extraídos del JWT que viajan en el
// contexto de la request.
type UserClaims struct {
	UserID string
	Rol    domain.Rol
}

// TokenService define el contrato de validación que necesita el middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware crea un middleware que valida un JWT del header
// Authorization y anexa las claims (UserID y Rol) al contexto.
func NewAuthMiddleware(tokenSvc TokenService) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Extraer el token del header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || len(authHeader) < 7 || authHeader[:7] != "Bearer " {
				http.Error(w, apperror.NewUnauthorizedError("Token de autorización ausente o malformado.").Error(), http.StatusUnauthorized)
				return
			}

			tokenString := authHeader[7:]

			// 2. Validar el token
			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, apperror.NewUnauthorizedError("Token inválido o expirado.").Error(), http.StatusUnauthorized)
				return
			}

			// 3. Anexar las claims al contexto
			userClaims := UserClaims{
				UserID: claims.UserID,
				Rol:    domain.Rol(claims.Rol),
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, userClaims)

			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetUserClaimsFromContext extrae las claims del contexto en el handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// PermissionMiddleware restringe el acceso a los roles indicados.
// Debe ejecutarse después del AuthMiddleware.
func PermissionMiddleware(requiredRoles ...domain.Rol) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			claims, ok := GetUserClaimsFromContext(r.Context())
			if !ok {
				http.Error(w, apperror.NewUnauthorizedError("Autorización requerida. Token no procesado.").Error(), http.StatusUnauthorized)
				return
			}

			isAuthorized := false
			for _, requiredRol := range requiredRoles {
				if claims.Rol == requiredRol {
					isAuthorized = true
					break
				}
			}

			if !isAuthorized {
				http.Error(w, apperror.NewUnauthorizedError("Acceso denegado. No tiene el permiso necesario.").Error(), http.StatusForbidden) // 403
				return
			}

			next.ServeHTTP(w, r)
		}
	}
}
