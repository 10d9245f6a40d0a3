package firebase

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/yemsy26/comercio-fenix-v1/internal/auth"
)

// Verifier реализует auth.TokenVerifier через Firebase Admin SDK
type Verifier struct {
	client *fbauth.Client
}

// NewVerifier создаёт новый Firebase verifier
func NewVerifier(client *fbauth.Client) *Verifier {
	return &Verifier{
		client: client,
	}
}

// VerifyToken проверяет ID-токен через Firebase Auth
// Роль берётся из custom claim "role"; отсутствующий claim отдаём как пустую строку,
// решение о доступе принимает middleware
func (v *Verifier) VerifyToken(ctx context.Context, idToken string) (auth.Claims, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return auth.Claims{}, err
	}

	role, _ := token.Claims["role"].(string)

	return auth.Claims{
		UID:  token.UID,
		Role: role,
	}, nil
}
