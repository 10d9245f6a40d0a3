package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yemsy26/comercio-fenix-v1/internal/repository"
)

// MockProductRepository реализует ProductRepository для тестов
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetStock(ctx context.Context, productID string) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ReduceStock(ctx context.Context, productID string, quantity int64) (int64, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Get(0).(int64), args.Error(1)
}

func TestStockService_ReduceStock(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		productID     string
		quantity      int64
		repoRemaining int64
		repoError     error
		callsRepo     bool
		expectedError error
		errorContains string
	}{
		{
			name:          "success: stock reduced",
			productID:     "p1",
			quantity:      5,
			repoRemaining: 15,
			callsRepo:     true,
		},
		{
			name:          "product not found passes sentinel through",
			productID:     "missing",
			quantity:      5,
			repoError:     repository.ErrNotFound,
			callsRepo:     true,
			expectedError: repository.ErrNotFound,
		},
		{
			name:          "insufficient stock passes sentinel through",
			productID:     "p1",
			quantity:      100,
			repoError:     repository.ErrInsufficientStock,
			callsRepo:     true,
			expectedError: repository.ErrInsufficientStock,
		},
		{
			name:          "arbitrary store error is returned",
			productID:     "p1",
			quantity:      5,
			repoError:     errors.New("firestore unavailable"),
			callsRepo:     true,
			errorContains: "firestore unavailable",
		},
		{
			name:          "empty productId rejected without touching the store",
			productID:     "",
			quantity:      5,
			callsRepo:     false,
			errorContains: "productId is required",
		},
		{
			name:          "non-positive quantity rejected without touching the store",
			productID:     "p1",
			quantity:      0,
			callsRepo:     false,
			errorContains: "quantity must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mockRepo := new(MockProductRepository)
			svc := NewStockService(zap.NewNop(), mockRepo)

			if tt.callsRepo {
				mockRepo.On("ReduceStock", ctx, tt.productID, tt.quantity).
					Return(tt.repoRemaining, tt.repoError).Once()
			}

			// Act
			result, err := svc.ReduceStock(ctx, ReduceStockInput{
				ProductID: tt.productID,
				Quantity:  tt.quantity,
			})

			// Assert
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				require.Nil(t, result)
			} else if tt.errorContains != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.errorContains)
				require.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.productID, result.ProductID)
				require.Equal(t, tt.repoRemaining, result.Remaining)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestStockService_GetStock(t *testing.T) {
	ctx := context.Background()

	t.Run("success: returns current stock", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewStockService(zap.NewNop(), mockRepo)

		mockRepo.On("GetStock", ctx, "p1").Return(int64(20), nil).Once()

		stock, err := svc.GetStock(ctx, "p1")
		require.NoError(t, err)
		require.Equal(t, int64(20), stock)

		mockRepo.AssertExpectations(t)
	})

	t.Run("product not found passes sentinel through", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewStockService(zap.NewNop(), mockRepo)

		mockRepo.On("GetStock", ctx, "missing").Return(int64(0), repository.ErrNotFound).Once()

		_, err := svc.GetStock(ctx, "missing")
		require.ErrorIs(t, err, repository.ErrNotFound)

		mockRepo.AssertExpectations(t)
	})

	t.Run("empty productId rejected without touching the store", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewStockService(zap.NewNop(), mockRepo)

		_, err := svc.GetStock(ctx, "")
		require.Error(t, err)

		mockRepo.AssertExpectations(t)
	})
}
