package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/yemsy26/comercio-fenix-v1/internal/auth"
	"github.com/yemsy26/comercio-fenix-v1/internal/authctx"
)

const bearerPrefix = "Bearer "

// Authenticate возвращает HTTP middleware: извлекает Bearer токен из заголовка
// Authorization, проверяет его через verifier и сверяет роль с allowedRoles.
// Любая ошибка аутентификации/авторизации терминальна и возвращает 403,
// до store запрос не доходит. Claims успешного запроса кладутся в context.
func Authenticate(verifier auth.TokenVerifier, logger *zap.Logger, allowedRoles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, bearerPrefix) {
				http.Error(w, "Unauthorized: No token provided", http.StatusForbidden)
				return
			}

			idToken := strings.TrimPrefix(header, bearerPrefix)

			claims, err := verifier.VerifyToken(r.Context(), idToken)
			if err != nil {
				logger.Warn("token verification failed",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)
				// Текст ошибки verifier уходит клиенту, как в исходном endpoint
				http.Error(w, "Unauthorized: "+err.Error(), http.StatusForbidden)
				return
			}

			if _, ok := allowed[claims.Role]; !ok {
				logger.Warn("role not allowed",
					zap.String("uid", claims.UID),
					zap.String("role", claims.Role),
					zap.String("path", r.URL.Path),
				)
				http.Error(w, "Insufficient permissions", http.StatusForbidden)
				return
			}

			ctx := authctx.WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
