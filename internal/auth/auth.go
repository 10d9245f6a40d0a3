package auth

import "context"

// Роли, которым разрешено изменять склад
// Роль приходит как custom claim в ID-токене; set выбран открытым - в токене
// может встретиться любая строка, но право на запись дают только эти две
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// Claims содержит атрибуты аутентифицированного пользователя,
// извлечённые из проверенного ID-токена
type Claims struct {
	// UID - идентификатор пользователя у identity провайдера
	UID string
	// Role - роль из custom claims; пустая строка, если claim не назначен
	Role string
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=TokenVerifier --dir=. --output=./mocks --outpkg=mocks

// TokenVerifier определяет интерфейс проверки ID-токена
// Middleware зависит от этого интерфейса, а не от Firebase SDK напрямую
type TokenVerifier interface {
	// VerifyToken проверяет подпись и срок действия токена
	// Возвращает claims или ошибку верификации (текст ошибки уходит клиенту в 403)
	VerifyToken(ctx context.Context, idToken string) (Claims, error)
}
