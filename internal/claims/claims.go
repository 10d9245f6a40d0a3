package claims

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Assignment - пара (email, роль) для назначения
type Assignment struct {
	Email string
	Role  string
}

// ErrUserNotFound возвращается, когда email не резолвится в существующего пользователя
var ErrUserNotFound = errors.New("user not found")

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=UserManager --dir=. --output=./mocks --outpkg=mocks

// UserManager определяет интерфейс работы с identity провайдером
// Service зависит от этого интерфейса, а не от Firebase SDK напрямую
type UserManager interface {
	// GetUIDByEmail резолвит пользователя по email
	// Возвращает ErrUserNotFound, если пользователь не существует
	GetUIDByEmail(ctx context.Context, email string) (string, error)

	// SetRoleClaim перезаписывает custom claim "role" пользователя
	// Last write wins; повторная запись той же роли - безвредный no-op
	SetRoleClaim(ctx context.Context, uid, role string) error
}

// Service назначает роли пользователям identity провайдера
type Service struct {
	logger *zap.Logger
	users  UserManager
}

// NewService создаёт новый экземпляр Service
func NewService(logger *zap.Logger, users UserManager) *Service {
	return &Service{
		logger: logger,
		users:  users,
	}
}

// Result содержит итог прогона по списку назначений
type Result struct {
	Applied int
	Failed  int
}

// Apply последовательно применяет назначения ролей
// Пары независимы: ошибка одной пары логируется, прогон продолжается
// Откатывать нечего - до ошибки состояние пары не менялось
func (s *Service) Apply(ctx context.Context, assignments []Assignment) Result {
	var result Result

	for _, a := range assignments {
		if err := s.apply(ctx, a); err != nil {
			s.logger.Error("failed to assign role",
				zap.String("email", a.Email),
				zap.String("role", a.Role),
				zap.Error(err),
			)
			result.Failed++
			continue
		}

		s.logger.Info("role assigned",
			zap.String("email", a.Email),
			zap.String("role", a.Role),
		)
		// Уже выданные токены новую роль не увидят
		s.logger.Info("user must sign in again before the new role appears in issued tokens",
			zap.String("email", a.Email),
		)
		result.Applied++
	}

	return result
}

// apply выполняет одно назначение: резолвит UID по email и перезаписывает claim
func (s *Service) apply(ctx context.Context, a Assignment) error {
	if a.Email == "" {
		return fmt.Errorf("email is required")
	}
	if a.Role == "" {
		return fmt.Errorf("role is required")
	}

	uid, err := s.users.GetUIDByEmail(ctx, a.Email)
	if err != nil {
		return fmt.Errorf("resolve user by email: %w", err)
	}

	if err := s.users.SetRoleClaim(ctx, uid, a.Role); err != nil {
		return fmt.Errorf("set role claim: %w", err)
	}

	return nil
}
