package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"gopantry/internal/domain"
	apperror "gopantry/internal/errors"
	"gopantry/internal/pkg/token"
)

// ContextKey é o tipo das chaves que este pacote grava no contexto.
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
)

// UserClaims representa os dados do usuário extraídos do token JWT.
type UserClaims struct {
	UserID string
	Role   domain.UserRole
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware valida o JWT do header Authorization e anexa as claims
// (UserID e Role) ao contexto da requisição.
func NewAuthMiddleware(tokenSvc TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || tokenString == "" {
				writeAppError(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				writeAppError(w, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			role := domain.UserRole(claims.Role)
			if !role.Valid() {
				writeAppError(w, apperror.NewUnauthorizedError("Token com papel desconhecido."))
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, UserClaims{UserID: claims.UserID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// PermissionMiddleware só deixa passar os papéis listados. Deve rodar depois
// de NewAuthMiddleware.
func PermissionMiddleware(requiredRoles ...domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetUserClaimsFromContext(r.Context())
			if !ok {
				writeAppError(w, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
				return
			}

			for _, requiredRole := range requiredRoles {
				if claims.Role == requiredRole {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeAppError(w, apperror.NewForbiddenError("Acesso negado. Você não tem a permissão necessária."))
		})
	}
}

func writeAppError(w http.ResponseWriter, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)
	writeError(w, status, category, message)
}

func writeError(w http.ResponseWriter, status int, category, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}
