package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/yemsy26/comercio-fenix-v1/internal/repository"
	"github.com/yemsy26/comercio-fenix-v1/pkg/observability"
)

// StockService содержит бизнес-логику работы со складом
// Зависит от интерфейса ProductRepository, а не от конкретной реализации
type StockService struct {
	logger *zap.Logger
	repo   repository.ProductRepository
}

// NewStockService создаёт новый экземпляр StockService
func NewStockService(logger *zap.Logger, repo repository.ProductRepository) *StockService {
	return &StockService{
		logger: logger,
		repo:   repo,
	}
}

// ReduceStockInput содержит входные данные для списания со склада
type ReduceStockInput struct {
	ProductID string
	Quantity  int64
}

// ReduceStockOutput содержит результат списания
type ReduceStockOutput struct {
	ProductID string
	Remaining int64
}

// ReduceStock списывает quantity единиц товара со склада
// Атомарность и изоляция обеспечиваются репозиторием; здесь нет ни retry,
// ни компенсаций - ошибка терминальна для запроса
// Возвращает repository.ErrNotFound / repository.ErrInsufficientStock
// без упаковки, чтобы handler мог отобразить их в свои статусы
func (s *StockService) ReduceStock(ctx context.Context, input ReduceStockInput) (*ReduceStockOutput, error) {
	log := observability.L(ctx, s.logger)

	if input.ProductID == "" {
		return nil, fmt.Errorf("productId is required")
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	remaining, err := s.repo.ReduceStock(ctx, input.ProductID, input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			log.Warn("reduce stock: product not found",
				zap.String("product_id", input.ProductID),
			)
		case errors.Is(err, repository.ErrInsufficientStock):
			log.Info("reduce stock: insufficient stock",
				zap.String("product_id", input.ProductID),
				zap.Int64("quantity", input.Quantity),
			)
		default:
			log.Error("reduce stock failed",
				zap.Error(err),
				zap.String("product_id", input.ProductID),
			)
		}
		return nil, err
	}

	log.Info("stock reduced",
		zap.String("product_id", input.ProductID),
		zap.Int64("quantity", input.Quantity),
		zap.Int64("remaining", remaining),
	)

	return &ReduceStockOutput{
		ProductID: input.ProductID,
		Remaining: remaining,
	}, nil
}

// GetStock возвращает текущий остаток товара
func (s *StockService) GetStock(ctx context.Context, productID string) (int64, error) {
	log := observability.L(ctx, s.logger)

	if productID == "" {
		return 0, fmt.Errorf("productId is required")
	}

	stock, err := s.repo.GetStock(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("get stock: product not found", zap.String("product_id", productID))
		} else {
			log.Error("get stock failed", zap.Error(err), zap.String("product_id", productID))
		}
		return 0, err
	}

	return stock, nil
}
