package authctx

import (
	"context"

	"github.com/yemsy26/comercio-fenix-v1/internal/auth"
)

type ctxKeyClaims struct{}

var claimsKey = ctxKeyClaims{}

// WithClaims сохраняет claims аутентифицированного пользователя в контексте
// (используется auth middleware)
func WithClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext возвращает claims из контекста, если они были установлены
func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(auth.Claims)
	return claims, ok
}
