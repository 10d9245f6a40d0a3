package firebase

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/yemsy26/comercio-fenix-v1/internal/claims"
)

// Manager реализует claims.UserManager через Firebase Admin SDK
type Manager struct {
	client *fbauth.Client
}

// NewManager создаёт новый Firebase manager
func NewManager(client *fbauth.Client) *Manager {
	return &Manager{
		client: client,
	}
}

// GetUIDByEmail резолвит пользователя по email через Firebase Auth
func (m *Manager) GetUIDByEmail(ctx context.Context, email string) (string, error) {
	user, err := m.client.GetUserByEmail(ctx, email)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return "", claims.ErrUserNotFound
		}
		return "", err
	}
	return user.UID, nil
}

// SetRoleClaim перезаписывает custom claims пользователя
// SetCustomUserClaims заменяет весь набор claims, других custom claims
// в этом приложении нет
func (m *Manager) SetRoleClaim(ctx context.Context, uid, role string) error {
	return m.client.SetCustomUserClaims(ctx, uid, map[string]interface{}{
		"role": role,
	})
}
